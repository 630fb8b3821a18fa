package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/services"
	"github.com/quizmize/backend/internal/types"
)

type QuizHandler struct {
	log         *logger.Logger
	quizService services.QuizCatalogService
}

func NewQuizHandler(log *logger.Logger, quizService services.QuizCatalogService) *QuizHandler {
	handlerLog := log.With("handler", "QuizHandler")
	return &QuizHandler{log: handlerLog, quizService: quizService}
}

func (qh *QuizHandler) ListSubjects(c *gin.Context) {
	subjects, err := qh.quizService.ListSubjects(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"subjects": subjects})
}

func (qh *QuizHandler) GetTopics(c *gin.Context) {
	topics, err := qh.quizService.GetTopics(c.Request.Context(), c.Param("subject"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"topics": topics})
}

func (qh *QuizHandler) GetQuizList(c *gin.Context) {
	list, err := qh.quizService.GetQuizList(c.Request.Context(), c.Param("quizTopic"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"quizList": list})
}

func (qh *QuizHandler) GetQuizPage(c *gin.Context) {
	page, err := qh.quizService.GetQuizPage(c.Request.Context(), c.Param("topic"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"quizPage": page})
}

func (qh *QuizHandler) UpsertSubject(c *gin.Context) {
	var subject types.Subject
	if err := c.ShouldBindJSON(&subject); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	saved, err := qh.quizService.UpsertSubject(c.Request.Context(), &subject)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"subject": saved})
}

func (qh *QuizHandler) UpsertTopic(c *gin.Context) {
	var topic types.QuizTopic
	if err := c.ShouldBindJSON(&topic); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	saved, err := qh.quizService.UpsertTopic(c.Request.Context(), &topic)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"topics": saved})
}

func (qh *QuizHandler) UpsertQuizList(c *gin.Context) {
	var list types.QuizList
	if err := c.ShouldBindJSON(&list); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	saved, err := qh.quizService.UpsertQuizList(c.Request.Context(), &list)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"quizList": saved})
}

func (qh *QuizHandler) AddQuizQuestion(c *gin.Context) {
	var input services.QuizQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	page, err := qh.quizService.AddQuizQuestion(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"quizPage": page})
}

func (qh *QuizHandler) UpdateQuizQuestion(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, apierr.Validation("Invalid question index"))
		return
	}
	var input services.QuizQuestionInput
	if bErr := c.ShouldBindJSON(&input); bErr != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	page, sErr := qh.quizService.UpdateQuizQuestion(c.Request.Context(), input, index)
	if sErr != nil {
		RespondError(c, sErr)
		return
	}
	RespondOK(c, gin.H{"quizPage": page})
}

func (qh *QuizHandler) DeleteQuizQuestion(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, apierr.Validation("Invalid question index"))
		return
	}
	if sErr := qh.quizService.DeleteQuizQuestion(c.Request.Context(), c.Param("topic"), c.Param("quizList"), index); sErr != nil {
		RespondError(c, sErr)
		return
	}
	RespondOK(c, gin.H{"message": "Question deleted"})
}
