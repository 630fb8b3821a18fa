package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/types"
)

type UniversityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, university *types.University) (*types.University, error)
	GetByID(ctx context.Context, tx *gorm.DB, universityID uuid.UUID) (*types.University, error)
	GetByJoinCode(ctx context.Context, tx *gorm.DB, code string) (*types.University, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.University, error)
	ListByMember(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.University, error)
	Save(ctx context.Context, tx *gorm.DB, university *types.University) error
	Delete(ctx context.Context, tx *gorm.DB, universityID uuid.UUID) error
}

type universityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUniversityRepo(db *gorm.DB, baseLog *logger.Logger) UniversityRepo {
	repoLog := baseLog.With("repo", "UniversityRepo")
	return &universityRepo{db: db, log: repoLog}
}

func (ur *universityRepo) Create(ctx context.Context, tx *gorm.DB, university *types.University) (*types.University, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if err := transaction.WithContext(ctx).Create(university).Error; err != nil {
		return nil, err
	}
	return university, nil
}

func (ur *universityRepo) GetByID(ctx context.Context, tx *gorm.DB, universityID uuid.UUID) (*types.University, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.University
	if err := transaction.WithContext(ctx).
		Where("id = ?", universityID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByJoinCode matches on the code stored inside the serialized settings
// column, scanning in memory so the lookup works on every backend.
func (ur *universityRepo) GetByJoinCode(ctx context.Context, tx *gorm.DB, code string) (*types.University, error) {
	all, err := ur.List(ctx, tx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if u.Settings.JoinCode == code {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (ur *universityRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.University, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.University
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *universityRepo) ListByMember(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.University, error) {
	all, err := ur.List(ctx, tx)
	if err != nil {
		return nil, err
	}
	var results []*types.University
	for _, u := range all {
		if u.IsMember(userID) {
			results = append(results, u)
		}
	}
	return results, nil
}

func (ur *universityRepo) Save(ctx context.Context, tx *gorm.DB, university *types.University) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).Save(university).Error
}

func (ur *universityRepo) Delete(ctx context.Context, tx *gorm.DB, universityID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", universityID).
		Delete(&types.University{}).Error
}
