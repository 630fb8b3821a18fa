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
	"github.com/quizmize/backend/internal/repos"
	"github.com/quizmize/backend/internal/types"
)

type UserService interface {
	GetUserData(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string) (*types.User, error)
	SaveQuizHistory(ctx context.Context, userID uuid.UUID, entry types.QuizHistoryEntry) (*types.User, *gamification.AwardResult, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		avatarService: avatarService,
	}
}

func (us *userService) GetUserData(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user")
		}
		return nil, apierr.Internal(fmt.Errorf("Failed to load user: %w", err))
	}
	return user, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string) (*types.User, error) {
	fullName = normalization.TrimInputString(fullName)
	if fullName == "" {
		return nil, apierr.Validation("Full name is required")
	}

	var updated *types.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, gErr := us.userRepo.GetByID(ctx, tx, userID)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("user")
			}
			return fmt.Errorf("Failed to load user: %w", gErr)
		}

		renamed := user.FullName != fullName
		user.FullName = fullName

		if renamed {
			if aErr := us.avatarService.CreateUserAvatar(ctx, tx, user); aErr != nil {
				return fmt.Errorf("Failed to regenerate avatar: %w", aErr)
			}
		}

		if sErr := us.userRepo.Save(ctx, tx, user); sErr != nil {
			return fmt.Errorf("Failed to save user: %w", sErr)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return updated, nil
}

// SaveQuizHistory appends a finished quiz to the user's history and grants
// the earned xp under the account curve.
func (us *userService) SaveQuizHistory(ctx context.Context, userID uuid.UUID, entry types.QuizHistoryEntry) (*types.User, *gamification.AwardResult, error) {
	if entry.QuizTopic == "" || entry.Subject == "" {
		return nil, nil, apierr.Validation("quizTopic and subject are required")
	}
	if entry.TotalQuestions <= 0 {
		return nil, nil, apierr.Validation("totalQuestions must be positive")
	}
	if entry.Score < 0 || entry.Score > entry.TotalQuestions {
		return nil, nil, apierr.Validation("score out of range")
	}
	if entry.Date == "" {
		entry.Date = time.Now().Format(time.RFC3339)
	}

	var (
		updated *types.User
		result  gamification.AwardResult
	)
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, gErr := us.userRepo.GetByID(ctx, tx, userID)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("user")
			}
			return fmt.Errorf("Failed to load user: %w", gErr)
		}

		user.QuizHistory = append(user.QuizHistory, entry)

		if entry.XP > 0 {
			res, aErr := gamification.Award(gamification.UserPolicy, user.Level, user.XP, entry.XP)
			if aErr != nil {
				return aErr
			}
			user.Level = res.NewLevel
			user.XP = res.XP
			user.TotalXP += entry.XP
			result = res
		}

		if sErr := us.userRepo.Save(ctx, tx, user); sErr != nil {
			return fmt.Errorf("Failed to save user: %w", sErr)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, nil, apierr.From(err)
	}

	us.log.Info("quiz history saved", "user_id", userID, "xp", entry.XP, "leveled_up", result.LeveledUp)
	return updated, &result, nil
}
