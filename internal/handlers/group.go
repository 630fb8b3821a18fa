package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/services"
)

type GroupHandler struct {
	log          *logger.Logger
	groupService services.GroupService
	chatService  services.ChatService
}

func NewGroupHandler(log *logger.Logger, groupService services.GroupService, chatService services.ChatService) *GroupHandler {
	handlerLog := log.With("handler", "GroupHandler")
	return &GroupHandler{log: handlerLog, groupService: groupService, chatService: chatService}
}

func (gh *GroupHandler) Create(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	var req struct {
		Name           string `json:"name"`
		Specialization string `json:"specialization"`
		Description    string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	group, err := gh.groupService.CreateGroup(c.Request.Context(), rd.UserID, req.Name, req.Specialization, req.Description)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"group": group})
}

func (gh *GroupHandler) List(c *gin.Context) {
	groups, err := gh.groupService.ListGroups(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"groups": groups})
}

func (gh *GroupHandler) ListMine(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	groups, err := gh.groupService.ListMyGroups(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"groups": groups})
}

func (gh *GroupHandler) Get(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := gh.groupService.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"group": detail})
}

func (gh *GroupHandler) Join(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	group, err := gh.groupService.JoinGroup(c.Request.Context(), rd.UserID, groupID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Joined " + group.Name, "group": group})
}

func (gh *GroupHandler) Leave(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := gh.groupService.LeaveGroup(c.Request.Context(), rd.UserID, groupID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Left group"})
}

func (gh *GroupHandler) ChatHistory(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	messages, err := gh.chatService.History(c.Request.Context(), rd.UserID, groupID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"messages": messages})
}
