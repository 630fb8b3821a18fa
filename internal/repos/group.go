package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/types"
)

type GroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, group *types.Group) (*types.Group, error)
	GetByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.Group, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Group, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Group, error)
	ListByMember(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Group, error)
	Save(ctx context.Context, tx *gorm.DB, group *types.Group) error
	Delete(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error
}

type groupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGroupRepo(db *gorm.DB, baseLog *logger.Logger) GroupRepo {
	repoLog := baseLog.With("repo", "GroupRepo")
	return &groupRepo{db: db, log: repoLog}
}

func (gr *groupRepo) Create(ctx context.Context, tx *gorm.DB, group *types.Group) (*types.Group, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	if err := transaction.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (gr *groupRepo) GetByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.Group, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	var result types.Group
	if err := transaction.WithContext(ctx).
		Where("id = ?", groupID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (gr *groupRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Group, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	var result types.Group
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (gr *groupRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Group, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	var results []*types.Group
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListByMember filters in memory because membership lives inside the
// serialized members column.
func (gr *groupRepo) ListByMember(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Group, error) {
	all, err := gr.List(ctx, tx)
	if err != nil {
		return nil, err
	}
	var results []*types.Group
	for _, g := range all {
		if g.IsMember(userID) {
			results = append(results, g)
		}
	}
	return results, nil
}

func (gr *groupRepo) Save(ctx context.Context, tx *gorm.DB, group *types.Group) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	return transaction.WithContext(ctx).Save(group).Error
}

func (gr *groupRepo) Delete(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", groupID).
		Delete(&types.Group{}).Error
}
