package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/types"
)

type MissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, mission *types.Mission) (*types.Mission, error)
	GetByID(ctx context.Context, tx *gorm.DB, missionID uuid.UUID) (*types.Mission, error)
	ListByGroup(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.Mission, error)
	ListExpired(ctx context.Context, tx *gorm.DB, now time.Time) ([]*types.Mission, error)
	Save(ctx context.Context, tx *gorm.DB, mission *types.Mission) error
	Delete(ctx context.Context, tx *gorm.DB, missionID uuid.UUID) error
	DeleteByGroup(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error
}

type missionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMissionRepo(db *gorm.DB, baseLog *logger.Logger) MissionRepo {
	repoLog := baseLog.With("repo", "MissionRepo")
	return &missionRepo{db: db, log: repoLog}
}

func (mr *missionRepo) Create(ctx context.Context, tx *gorm.DB, mission *types.Mission) (*types.Mission, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if err := transaction.WithContext(ctx).Create(mission).Error; err != nil {
		return nil, err
	}
	return mission, nil
}

func (mr *missionRepo) GetByID(ctx context.Context, tx *gorm.DB, missionID uuid.UUID) (*types.Mission, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var result types.Mission
	if err := transaction.WithContext(ctx).
		Where("id = ?", missionID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *missionRepo) ListByGroup(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.Mission, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Mission
	if err := transaction.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *missionRepo) ListExpired(ctx context.Context, tx *gorm.DB, now time.Time) ([]*types.Mission, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Mission
	if err := transaction.WithContext(ctx).
		Where("status = ? AND deadline < ?", types.MissionStatusActive, now).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *missionRepo) Save(ctx context.Context, tx *gorm.DB, mission *types.Mission) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Save(mission).Error
}

func (mr *missionRepo) Delete(ctx context.Context, tx *gorm.DB, missionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", missionID).
		Delete(&types.Mission{}).Error
}

func (mr *missionRepo) DeleteByGroup(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Where("group_id = ?", groupID).
		Delete(&types.Mission{}).Error
}
