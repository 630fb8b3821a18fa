package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/services"
)

type MissionHandler struct {
	log            *logger.Logger
	missionService services.MissionService
}

func NewMissionHandler(log *logger.Logger, missionService services.MissionService) *MissionHandler {
	handlerLog := log.With("handler", "MissionHandler")
	return &MissionHandler{log: handlerLog, missionService: missionService}
}

func (mh *MissionHandler) Create(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.CreateMissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	mission, err := mh.missionService.CreateMission(c.Request.Context(), rd.UserID, groupID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"mission": mission})
}

func (mh *MissionHandler) ListByGroup(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	missions, err := mh.missionService.ListGroupMissions(c.Request.Context(), rd.UserID, groupID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"missions": missions})
}

func (mh *MissionHandler) Get(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	missionID, ok := parseIDParam(c, "missionId")
	if !ok {
		return
	}
	mission, err := mh.missionService.GetMission(c.Request.Context(), rd.UserID, missionID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"mission": mission})
}

func (mh *MissionHandler) Join(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	missionID, ok := parseIDParam(c, "missionId")
	if !ok {
		return
	}
	mission, err := mh.missionService.JoinMission(c.Request.Context(), rd.UserID, missionID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"mission": mission})
}

func (mh *MissionHandler) Answer(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	missionID, ok := parseIDParam(c, "missionId")
	if !ok {
		return
	}
	var req struct {
		QuestionIndex  int `json:"questionIndex"`
		SelectedAnswer int `json:"selectedAnswer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	result, err := mh.missionService.AnswerQuestion(c.Request.Context(), rd.UserID, missionID, req.QuestionIndex, req.SelectedAnswer)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"result": result})
}

func (mh *MissionHandler) Progress(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	missionID, ok := parseIDParam(c, "missionId")
	if !ok {
		return
	}
	progress, err := mh.missionService.GetProgress(c.Request.Context(), rd.UserID, missionID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"progress": progress})
}

func (mh *MissionHandler) Delete(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	missionID, ok := parseIDParam(c, "missionId")
	if !ok {
		return
	}
	if err := mh.missionService.DeleteMission(c.Request.Context(), rd.UserID, missionID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Mission deleted"})
}
