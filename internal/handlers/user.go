package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/services"
	"github.com/quizmize/backend/internal/types"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	handlerLog := log.With("handler", "UserHandler")
	return &UserHandler{log: handlerLog, userService: userService}
}

func (uh *UserHandler) UserData(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	user, err := uh.userService.GetUserData(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	var req struct {
		FullName string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	user, err := uh.userService.UpdateProfile(c.Request.Context(), rd.UserID, req.FullName)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) SaveQuizHistory(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	var req types.QuizHistoryEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	user, award, err := uh.userService.SaveQuizHistory(c.Request.Context(), rd.UserID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user, "award": award})
}
