package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/normalization"
	"github.com/quizmize/backend/internal/realtime"
	"github.com/quizmize/backend/internal/repos"
	"github.com/quizmize/backend/internal/types"
)

// Late joiners load at most this many lines.
const chatHistoryLimit = 100

type ChatService interface {
	SendMessage(ctx context.Context, actorID, groupID uuid.UUID, content string) (*types.ChatMessage, error)
	History(ctx context.Context, actorID, groupID uuid.UUID) ([]*types.ChatMessage, error)
}

type chatService struct {
	db        *gorm.DB
	log       *logger.Logger
	chatRepo  repos.ChatMessageRepo
	groupRepo repos.GroupRepo
	userRepo  repos.UserRepo
	notifier  *realtime.Notifier
}

func NewChatService(db *gorm.DB, log *logger.Logger, chatRepo repos.ChatMessageRepo, groupRepo repos.GroupRepo, userRepo repos.UserRepo, notifier *realtime.Notifier) ChatService {
	serviceLog := log.With("service", "ChatService")
	return &chatService{
		db:        db,
		log:       serviceLog,
		chatRepo:  chatRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// SendMessage persists the line first, then pushes it to the channel, so
// history never misses a delivered message.
func (cs *chatService) SendMessage(ctx context.Context, actorID, groupID uuid.UUID, content string) (*types.ChatMessage, error) {
	content = normalization.TrimInputString(content)
	if content == "" {
		return nil, apierr.Validation("Message cannot be empty")
	}
	if len(content) > types.ChatMessageMaxLen {
		return nil, apierr.Validation("Message cannot exceed %d characters", types.ChatMessageMaxLen)
	}

	group, err := cs.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("group")
		}
		return nil, apierr.Internal(fmt.Errorf("Failed to load group: %w", err))
	}
	if !group.IsMember(actorID) {
		return nil, apierr.Forbidden("Only group members can chat")
	}

	user, err := cs.userRepo.GetByID(ctx, nil, actorID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to load user: %w", err))
	}

	msg := &types.ChatMessage{
		GroupID:  groupID,
		UserID:   actorID,
		UserName: user.FullName,
		Content:  content,
	}
	if _, err := cs.chatRepo.Create(ctx, nil, msg); err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to save chat message: %w", err))
	}

	cs.notifier.Notify(ctx, realtime.EventChatMessage, groupID, msg)
	return msg, nil
}

func (cs *chatService) History(ctx context.Context, actorID, groupID uuid.UUID) ([]*types.ChatMessage, error) {
	group, err := cs.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("group")
		}
		return nil, apierr.Internal(fmt.Errorf("Failed to load group: %w", err))
	}
	if !group.IsMember(actorID) {
		return nil, apierr.Forbidden("Only group members can read chat history")
	}

	messages, err := cs.chatRepo.RecentByGroup(ctx, nil, groupID, chatHistoryLimit)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to load chat history: %w", err))
	}
	return messages, nil
}
