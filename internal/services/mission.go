package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/gamification"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/normalization"
	"github.com/quizmize/backend/internal/realtime"
	"github.com/quizmize/backend/internal/repos"
	"github.com/quizmize/backend/internal/types"
)

type CreateMissionInput struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Type        types.MissionType       `json:"type"`
	Duration    int                     `json:"duration"`
	Points      int                     `json:"points"`
	Questions   []types.MissionQuestion `json:"questions"`
}

type AnswerResult struct {
	IsCorrect        bool   `json:"isCorrect"`
	CorrectAnswer    int    `json:"correctAnswer"`
	Explanation      string `json:"explanation"`
	Score            int    `json:"score"`
	CurrentQuestion  int    `json:"currentQuestion"`
	Completed        bool   `json:"completed"`
	QuestionsTotal   int    `json:"questionsTotal"`
	GroupXPAwarded   int    `json:"groupXpAwarded"`
	PersonalXPEarned int    `json:"personalXpEarned"`
}

type MissionProgress struct {
	MissionID       uuid.UUID           `json:"missionId"`
	Status          types.MissionStatus `json:"status"`
	Deadline        time.Time           `json:"deadline"`
	QuestionsTotal  int                 `json:"questionsTotal"`
	Joined          bool                `json:"joined"`
	CurrentQuestion int                 `json:"currentQuestion"`
	Score           int                 `json:"score"`
	Completed       bool                `json:"completed"`
}

type MissionService interface {
	CreateMission(ctx context.Context, actorID, groupID uuid.UUID, input CreateMissionInput) (*types.Mission, error)
	ListGroupMissions(ctx context.Context, actorID, groupID uuid.UUID) ([]*types.Mission, error)
	GetMission(ctx context.Context, actorID, missionID uuid.UUID) (*types.Mission, error)
	JoinMission(ctx context.Context, actorID, missionID uuid.UUID) (*types.Mission, error)
	AnswerQuestion(ctx context.Context, actorID, missionID uuid.UUID, questionIndex, selectedAnswer int) (*AnswerResult, error)
	GetProgress(ctx context.Context, actorID, missionID uuid.UUID) (*MissionProgress, error)
	DeleteMission(ctx context.Context, actorID, missionID uuid.UUID) error
	ExpireOverdue(ctx context.Context) (int, error)
}

type missionService struct {
	db           *gorm.DB
	log          *logger.Logger
	missionRepo  repos.MissionRepo
	groupRepo    repos.GroupRepo
	userRepo     repos.UserRepo
	groupService GroupService
	notifier     *realtime.Notifier
}

func NewMissionService(db *gorm.DB, log *logger.Logger, missionRepo repos.MissionRepo, groupRepo repos.GroupRepo, userRepo repos.UserRepo, groupService GroupService, notifier *realtime.Notifier) MissionService {
	serviceLog := log.With("service", "MissionService")
	return &missionService{
		db:           db,
		log:          serviceLog,
		missionRepo:  missionRepo,
		groupRepo:    groupRepo,
		userRepo:     userRepo,
		groupService: groupService,
		notifier:     notifier,
	}
}

func (ms *missionService) CreateMission(ctx context.Context, actorID, groupID uuid.UUID, input CreateMissionInput) (*types.Mission, error) {
	input.Title = normalization.TrimInputString(input.Title)
	input.Description = normalization.TrimInputString(input.Description)

	if input.Title == "" {
		return nil, apierr.Validation("Mission title is required")
	}
	if input.Type != types.MissionTypeSystem && input.Type != types.MissionTypeCustom {
		return nil, apierr.Validation("Mission type must be system or custom")
	}
	if input.Duration < types.MissionMinDuration || input.Duration > types.MissionMaxDuration {
		return nil, apierr.Validation("Mission duration must be between %d and %d days", types.MissionMinDuration, types.MissionMaxDuration)
	}
	if input.Points <= 0 {
		input.Points = 100
	}

	var questions []types.MissionQuestion
	switch input.Type {
	case types.MissionTypeSystem:
		questions = drawSystemQuestions(input.Duration)
	case types.MissionTypeCustom:
		if len(input.Questions) == 0 {
			return nil, apierr.Validation("Custom missions need at least one question")
		}
		for i, q := range input.Questions {
			if normalization.TrimInputString(q.Text) == "" {
				return nil, apierr.Validation("Question %d is missing text", i+1)
			}
			if len(q.Choices) < 2 {
				return nil, apierr.Validation("Question %d needs at least two choices", i+1)
			}
			if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Choices) {
				return nil, apierr.Validation("Question %d has an out of range answer", i+1)
			}
		}
		questions = input.Questions
	}

	var mission *types.Mission
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, gErr := ms.groupRepo.GetByID(ctx, tx, groupID)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("group")
			}
			return fmt.Errorf("Failed to load group: %w", gErr)
		}
		role, ok := group.RoleOf(actorID)
		if !ok || role != types.GroupRoleAdmin {
			return apierr.Forbidden("Only group admins can create missions")
		}

		m := &types.Mission{
			GroupID:     groupID,
			CreatedBy:   actorID,
			Title:       input.Title,
			Description: input.Description,
			Type:        input.Type,
			Questions:   questions,
			Points:      input.Points,
			Duration:    input.Duration,
			Status:      types.MissionStatusActive,
			Deadline:    time.Now().AddDate(0, 0, input.Duration),
		}
		if _, cErr := ms.missionRepo.Create(ctx, tx, m); cErr != nil {
			return fmt.Errorf("Failed to create mission: %w", cErr)
		}
		mission = m
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}

	ms.log.Info("mission created", "mission_id", mission.ID, "group_id", groupID, "type", mission.Type, "questions", len(mission.Questions))
	return mission, nil
}

func (ms *missionService) ListGroupMissions(ctx context.Context, actorID, groupID uuid.UUID) ([]*types.Mission, error) {
	group, err := ms.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("group")
		}
		return nil, apierr.Internal(fmt.Errorf("Failed to load group: %w", err))
	}
	if !group.IsMember(actorID) {
		return nil, apierr.Forbidden("Only group members can view missions")
	}
	missions, err := ms.missionRepo.ListByGroup(ctx, nil, groupID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to list missions: %w", err))
	}
	return missions, nil
}

func (ms *missionService) GetMission(ctx context.Context, actorID, missionID uuid.UUID) (*types.Mission, error) {
	mission, group, err := ms.loadMissionForMember(ctx, nil, actorID, missionID)
	if err != nil {
		return nil, apierr.From(err)
	}
	_ = group
	return mission, nil
}

func (ms *missionService) JoinMission(ctx context.Context, actorID, missionID uuid.UUID) (*types.Mission, error) {
	var joined *types.Mission
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mission, _, mErr := ms.loadMissionForMember(ctx, tx, actorID, missionID)
		if mErr != nil {
			return mErr
		}
		if mission.Status != types.MissionStatusActive {
			return apierr.Validation("Mission is no longer active")
		}
		if time.Now().After(mission.Deadline) {
			return apierr.Validation("Mission deadline has passed")
		}
		if mission.Participant(actorID) != nil {
			return apierr.Conflict("mission", "Already joined this mission")
		}

		mission.Participants = append(mission.Participants, types.MissionParticipant{
			UserID:   actorID,
			JoinedAt: time.Now(),
		})
		if sErr := ms.missionRepo.Save(ctx, tx, mission); sErr != nil {
			return fmt.Errorf("Failed to save mission: %w", sErr)
		}
		joined = mission
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	ms.log.Info("mission joined", "mission_id", missionID, "user_id", actorID)
	return joined, nil
}

// AnswerQuestion records one answer. Questions must be answered in order;
// finishing the last one completes the run, grants the group half the
// mission's points and writes the result into the user's history.
func (ms *missionService) AnswerQuestion(ctx context.Context, actorID, missionID uuid.UUID, questionIndex, selectedAnswer int) (*AnswerResult, error) {
	var (
		result     *AnswerResult
		group      *types.Group
		groupAward int
	)
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mission, g, mErr := ms.loadMissionForMember(ctx, tx, actorID, missionID)
		if mErr != nil {
			return mErr
		}
		if mission.Status != types.MissionStatusActive {
			return apierr.Validation("Mission is no longer active")
		}
		if time.Now().After(mission.Deadline) {
			return apierr.Validation("Mission deadline has passed")
		}

		participant := mission.Participant(actorID)
		if participant == nil {
			return apierr.Forbidden("Join the mission before answering")
		}
		if participant.Completed {
			return apierr.Validation("Mission already completed")
		}
		if questionIndex != participant.CurrentQuestion {
			return apierr.Validation("Answer question %d next", participant.CurrentQuestion)
		}
		if questionIndex < 0 || questionIndex >= len(mission.Questions) {
			return apierr.Validation("Question index out of range")
		}
		question := mission.Questions[questionIndex]
		if selectedAnswer < 0 || selectedAnswer >= len(question.Choices) {
			return apierr.Validation("Selected answer out of range")
		}

		isCorrect := selectedAnswer == question.CorrectAnswer
		participant.Answers = append(participant.Answers, types.MissionAnswer{
			QuestionIndex:  questionIndex,
			SelectedAnswer: selectedAnswer,
			IsCorrect:      isCorrect,
			AnsweredAt:     time.Now(),
		})
		if isCorrect {
			participant.Score += mission.PointsPerQuestion()
		}
		participant.CurrentQuestion++

		res := &AnswerResult{
			IsCorrect:       isCorrect,
			CorrectAnswer:   question.CorrectAnswer,
			Explanation:     question.Explanation,
			Score:           participant.Score,
			CurrentQuestion: participant.CurrentQuestion,
			QuestionsTotal:  len(mission.Questions),
		}

		if participant.CurrentQuestion >= len(mission.Questions) {
			participant.Completed = true
			res.Completed = true

			groupAward = mission.Points / 2
			res.GroupXPAwarded = groupAward

			if hErr := ms.recordUserCompletion(ctx, tx, actorID, mission, participant, res); hErr != nil {
				return hErr
			}
		}

		if sErr := ms.missionRepo.Save(ctx, tx, mission); sErr != nil {
			return fmt.Errorf("Failed to save mission: %w", sErr)
		}
		result = res
		group = g
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}

	if groupAward > 0 {
		ms.groupService.AwardXP(ctx, group.ID, groupAward, "mission-completed")
	}
	return result, nil
}

func (ms *missionService) GetProgress(ctx context.Context, actorID, missionID uuid.UUID) (*MissionProgress, error) {
	mission, _, err := ms.loadMissionForMember(ctx, nil, actorID, missionID)
	if err != nil {
		return nil, apierr.From(err)
	}
	progress := &MissionProgress{
		MissionID:      mission.ID,
		Status:         mission.Status,
		Deadline:       mission.Deadline,
		QuestionsTotal: len(mission.Questions),
	}
	if participant := mission.Participant(actorID); participant != nil {
		progress.Joined = true
		progress.CurrentQuestion = participant.CurrentQuestion
		progress.Score = participant.Score
		progress.Completed = participant.Completed
	}
	return progress, nil
}

func (ms *missionService) DeleteMission(ctx context.Context, actorID, missionID uuid.UUID) error {
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mission, group, mErr := ms.loadMissionForMember(ctx, tx, actorID, missionID)
		if mErr != nil {
			return mErr
		}
		role, ok := group.RoleOf(actorID)
		if !ok || role != types.GroupRoleAdmin {
			return apierr.Forbidden("Only group admins can delete missions")
		}
		if dErr := ms.missionRepo.Delete(ctx, tx, mission.ID); dErr != nil {
			return fmt.Errorf("Failed to delete mission: %w", dErr)
		}
		return nil
	})
	if err != nil {
		return apierr.From(err)
	}
	return nil
}

// ExpireOverdue flips past-deadline active missions to completed. Run from
// a periodic sweep.
func (ms *missionService) ExpireOverdue(ctx context.Context) (int, error) {
	expired, err := ms.missionRepo.ListExpired(ctx, nil, time.Now())
	if err != nil {
		return 0, fmt.Errorf("Failed to list overdue missions: %w", err)
	}
	flipped := 0
	for _, m := range expired {
		m.Status = types.MissionStatusCompleted
		if sErr := ms.missionRepo.Save(ctx, nil, m); sErr != nil {
			ms.log.Warn("failed to expire mission", "mission_id", m.ID, "error", sErr)
			continue
		}
		flipped++
	}
	if flipped > 0 {
		ms.log.Info("missions expired", "count", flipped)
	}
	return flipped, nil
}

func (ms *missionService) loadMissionForMember(ctx context.Context, tx *gorm.DB, actorID, missionID uuid.UUID) (*types.Mission, *types.Group, error) {
	mission, err := ms.missionRepo.GetByID(ctx, tx, missionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierr.NotFound("mission")
		}
		return nil, nil, fmt.Errorf("Failed to load mission: %w", err)
	}
	group, err := ms.groupRepo.GetByID(ctx, tx, mission.GroupID)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to load group: %w", err)
	}
	if !group.IsMember(actorID) {
		return nil, nil, apierr.Forbidden("Only group members can access missions")
	}
	return mission, group, nil
}

func (ms *missionService) recordUserCompletion(ctx context.Context, tx *gorm.DB, actorID uuid.UUID, mission *types.Mission, participant *types.MissionParticipant, res *AnswerResult) error {
	user, err := ms.userRepo.GetByID(ctx, tx, actorID)
	if err != nil {
		return fmt.Errorf("Failed to load user: %w", err)
	}
	user.MissionHistory = append(user.MissionHistory, types.MissionHistoryEntry{
		MissionID:   mission.ID,
		GroupID:     mission.GroupID,
		Title:       mission.Title,
		Score:       participant.Score,
		CompletedAt: time.Now(),
	})
	if participant.Score > 0 {
		award, aErr := gamification.Award(gamification.UserPolicy, user.Level, user.XP, participant.Score)
		if aErr != nil {
			return aErr
		}
		user.Level = award.NewLevel
		user.XP = award.XP
		user.TotalXP += participant.Score
		res.PersonalXPEarned = participant.Score
	}
	if sErr := ms.userRepo.Save(ctx, tx, user); sErr != nil {
		return fmt.Errorf("Failed to save user: %w", sErr)
	}
	return nil
}
