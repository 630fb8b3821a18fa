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

// XP grants for group activity. Mission rewards are derived from the
// mission's own point value instead.
const (
	XPAwardPost       = 15
	XPAwardComment    = 10
	XPAwardUpvote     = 5
	XPAwardMemberJoin = 25
)

type GroupMemberView struct {
	UserID    uuid.UUID       `json:"userId"`
	FullName  string          `json:"fullName"`
	AvatarURL string          `json:"avatarUrl"`
	Level     int             `json:"level"`
	Role      types.GroupRole `json:"role"`
	JoinedAt  time.Time       `json:"joinedAt"`
}

type GroupDetail struct {
	*types.Group
	MemberViews []GroupMemberView `json:"memberDetails"`
}

type GroupService interface {
	CreateGroup(ctx context.Context, actorID uuid.UUID, name, specialization, description string) (*types.Group, error)
	ListGroups(ctx context.Context) ([]*types.Group, error)
	ListMyGroups(ctx context.Context, userID uuid.UUID) ([]*types.Group, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (*GroupDetail, error)
	JoinGroup(ctx context.Context, actorID uuid.UUID, groupID uuid.UUID) (*types.Group, error)
	LeaveGroup(ctx context.Context, actorID uuid.UUID, groupID uuid.UUID) error

	// AwardXP grants group xp in its own transaction, after the caller has
	// committed its content write. A failed award is logged and dropped so
	// the content that earned it always stands.
	AwardXP(ctx context.Context, groupID uuid.UUID, amount int, reason string)
}

type groupService struct {
	db        *gorm.DB
	log       *logger.Logger
	groupRepo repos.GroupRepo
	userRepo  repos.UserRepo
	notifier  *realtime.Notifier
}

func NewGroupService(db *gorm.DB, log *logger.Logger, groupRepo repos.GroupRepo, userRepo repos.UserRepo, notifier *realtime.Notifier) GroupService {
	serviceLog := log.With("service", "GroupService")
	return &groupService{
		db:        db,
		log:       serviceLog,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

func (gs *groupService) CreateGroup(ctx context.Context, actorID uuid.UUID, name, specialization, description string) (*types.Group, error) {
	name = normalization.TrimInputString(name)
	specialization = normalization.TrimInputString(specialization)
	description = normalization.TrimInputString(description)
	if name == "" {
		return nil, apierr.Validation("Group name is required")
	}
	if specialization == "" {
		return nil, apierr.Validation("Specialization is required")
	}

	group := &types.Group{
		Name:           name,
		Specialization: specialization,
		Description:    description,
		Level:          1,
		RequiredXP:     gamification.GroupPolicy(1),
		Members: []types.GroupMember{{
			UserID:   actorID,
			Role:     types.GroupRoleAdmin,
			JoinedAt: time.Now(),
		}},
	}

	if err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := gs.groupRepo.Create(ctx, tx, group); cErr != nil {
			if apierr.IsDuplicateKey(cErr) {
				return apierr.Conflict("name", "A group with that name already exists")
			}
			return fmt.Errorf("Failed to create group: %w", cErr)
		}
		return nil
	}); err != nil {
		return nil, apierr.From(err)
	}

	gs.log.Info("group created", "group_id", group.ID, "name", group.Name, "created_by", actorID)
	return group, nil
}

func (gs *groupService) ListGroups(ctx context.Context) ([]*types.Group, error) {
	groups, err := gs.groupRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to list groups: %w", err))
	}
	return groups, nil
}

func (gs *groupService) ListMyGroups(ctx context.Context, userID uuid.UUID) ([]*types.Group, error) {
	groups, err := gs.groupRepo.ListByMember(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to list groups: %w", err))
	}
	return groups, nil
}

func (gs *groupService) GetGroup(ctx context.Context, groupID uuid.UUID) (*GroupDetail, error) {
	group, err := gs.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("group")
		}
		return nil, apierr.Internal(fmt.Errorf("Failed to load group: %w", err))
	}

	detail := &GroupDetail{Group: group}
	for _, m := range group.Members {
		view := GroupMemberView{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
		user, uErr := gs.userRepo.GetByID(ctx, nil, m.UserID)
		if uErr == nil {
			view.FullName = user.FullName
			view.AvatarURL = user.AvatarURL
			view.Level = user.Level
		}
		detail.MemberViews = append(detail.MemberViews, view)
	}
	return detail, nil
}

func (gs *groupService) JoinGroup(ctx context.Context, actorID uuid.UUID, groupID uuid.UUID) (*types.Group, error) {
	var joined *types.Group
	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, gErr := gs.groupRepo.GetByID(ctx, tx, groupID)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("group")
			}
			return fmt.Errorf("Failed to load group: %w", gErr)
		}

		if !group.AddMember(actorID, types.GroupRoleMember) {
			return apierr.Conflict("group", "Already a member of this group")
		}

		if sErr := gs.groupRepo.Save(ctx, tx, group); sErr != nil {
			return fmt.Errorf("Failed to save group: %w", sErr)
		}
		joined = group
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}

	// Membership is committed; the join bonus rides separately and the
	// response reflects whatever the award managed to write.
	gs.AwardXP(ctx, joined.ID, XPAwardMemberJoin, "member-joined")
	if fresh, fErr := gs.groupRepo.GetByID(ctx, nil, joined.ID); fErr == nil {
		joined = fresh
	}

	user, uErr := gs.userRepo.GetByID(ctx, nil, actorID)
	memberName := ""
	if uErr == nil {
		memberName = user.FullName
	}
	gs.notifier.Notify(ctx, realtime.EventMemberJoined, joined.ID, map[string]any{
		"userId":   actorID,
		"userName": memberName,
	})

	gs.log.Info("member joined group", "group_id", joined.ID, "user_id", actorID)
	return joined, nil
}

func (gs *groupService) LeaveGroup(ctx context.Context, actorID uuid.UUID, groupID uuid.UUID) error {
	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, gErr := gs.groupRepo.GetByID(ctx, tx, groupID)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("group")
			}
			return fmt.Errorf("Failed to load group: %w", gErr)
		}
		if !group.IsMember(actorID) {
			return apierr.Forbidden("Not a member of this group")
		}
		group.RemoveMember(actorID)
		if sErr := gs.groupRepo.Save(ctx, tx, group); sErr != nil {
			return fmt.Errorf("Failed to save group: %w", sErr)
		}
		return nil
	})
	if err != nil {
		return apierr.From(err)
	}
	return nil
}

func (gs *groupService) AwardXP(ctx context.Context, groupID uuid.UUID, amount int, reason string) {
	var (
		group  *types.Group
		result gamification.AwardResult
	)
	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, gErr := gs.groupRepo.GetByID(ctx, tx, groupID)
		if gErr != nil {
			return fmt.Errorf("Failed to load group: %w", gErr)
		}
		res, aErr := gs.grantXP(ctx, tx, g, amount, reason)
		if aErr != nil {
			return aErr
		}
		group, result = g, res
		return nil
	})
	if err != nil {
		gs.log.Error("group xp award failed", "group_id", groupID, "amount", amount, "reason", reason, "error", err)
		return
	}
	gs.publishXPEvents(ctx, group, result, reason)
}

func (gs *groupService) grantXP(ctx context.Context, tx *gorm.DB, group *types.Group, amount int, reason string) (gamification.AwardResult, error) {
	result, err := gamification.Award(gamification.GroupPolicy, group.Level, group.XP, amount)
	if err != nil {
		return gamification.AwardResult{}, err
	}
	group.Level = result.NewLevel
	group.XP = result.XP
	group.RequiredXP = result.RequiredXP
	group.TotalXP += amount

	if sErr := gs.groupRepo.Save(ctx, tx, group); sErr != nil {
		return gamification.AwardResult{}, fmt.Errorf("Failed to save group xp: %w", sErr)
	}

	gs.log.Debug("group xp granted", "group_id", group.ID, "amount", amount, "reason", reason, "level", group.Level)
	return result, nil
}

func (gs *groupService) publishXPEvents(ctx context.Context, group *types.Group, result gamification.AwardResult, reason string) {
	gs.notifier.Notify(ctx, realtime.EventGroupXPUpdated, group.ID, map[string]any{
		"xp":         group.XP,
		"totalXP":    group.TotalXP,
		"level":      group.Level,
		"requiredXp": group.RequiredXP,
		"reason":     reason,
	})
	if result.LeveledUp {
		gs.notifier.Notify(ctx, realtime.EventGroupLevelUp, group.ID, map[string]any{
			"level":        group.Level,
			"levelsGained": result.LevelsGained,
		})
	}
}
