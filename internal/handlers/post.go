package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/services"
)

type PostHandler struct {
	log         *logger.Logger
	postService services.PostService
}

func NewPostHandler(log *logger.Logger, postService services.PostService) *PostHandler {
	handlerLog := log.With("handler", "PostHandler")
	return &PostHandler{log: handlerLog, postService: postService}
}

func (ph *PostHandler) Create(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "groupId")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	post, err := ph.postService.CreatePost(c.Request.Context(), rd.UserID, groupID, req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"post": post})
}

func (ph *PostHandler) ListByGroup(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "groupId")
	if !ok {
		return
	}
	posts, err := ph.postService.ListGroupPosts(c.Request.Context(), rd.UserID, groupID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"posts": posts})
}

func (ph *PostHandler) Vote(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	var req struct {
		Value int `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	view, err := ph.postService.VotePost(c.Request.Context(), rd.UserID, postID, req.Value)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"post": view})
}

func (ph *PostHandler) Comment(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	view, err := ph.postService.CommentPost(c.Request.Context(), rd.UserID, postID, req.Text)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"post": view})
}

func (ph *PostHandler) Delete(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	if err := ph.postService.DeletePost(c.Request.Context(), rd.UserID, postID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Post deleted"})
}
