package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/types"
)

// QuizCatalogRepo reads the static quiz catalog: subjects, topics, quiz
// lists and the question pages behind them.
type QuizCatalogRepo interface {
	ListSubjects(ctx context.Context, tx *gorm.DB) ([]*types.Subject, error)
	GetTopicsBySubject(ctx context.Context, tx *gorm.DB, subject string) (*types.QuizTopic, error)
	GetQuizListByTopic(ctx context.Context, tx *gorm.DB, quizTopic string) (*types.QuizList, error)
	GetQuizPageByTopic(ctx context.Context, tx *gorm.DB, topic string) (*types.QuizPage, error)
	SaveSubject(ctx context.Context, tx *gorm.DB, subject *types.Subject) error
	SaveTopic(ctx context.Context, tx *gorm.DB, topic *types.QuizTopic) error
	SaveQuizList(ctx context.Context, tx *gorm.DB, list *types.QuizList) error
	SaveQuizPage(ctx context.Context, tx *gorm.DB, page *types.QuizPage) error
}

type quizCatalogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizCatalogRepo(db *gorm.DB, baseLog *logger.Logger) QuizCatalogRepo {
	repoLog := baseLog.With("repo", "QuizCatalogRepo")
	return &quizCatalogRepo{db: db, log: repoLog}
}

func (qr *quizCatalogRepo) ListSubjects(ctx context.Context, tx *gorm.DB) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*types.Subject
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *quizCatalogRepo) GetTopicsBySubject(ctx context.Context, tx *gorm.DB, subject string) (*types.QuizTopic, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var result types.QuizTopic
	if err := transaction.WithContext(ctx).
		Where("subject = ?", subject).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (qr *quizCatalogRepo) GetQuizListByTopic(ctx context.Context, tx *gorm.DB, quizTopic string) (*types.QuizList, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var result types.QuizList
	if err := transaction.WithContext(ctx).
		Where("quiz_topic = ?", quizTopic).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (qr *quizCatalogRepo) GetQuizPageByTopic(ctx context.Context, tx *gorm.DB, topic string) (*types.QuizPage, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var result types.QuizPage
	if err := transaction.WithContext(ctx).
		Where("topic = ?", topic).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (qr *quizCatalogRepo) SaveSubject(ctx context.Context, tx *gorm.DB, subject *types.Subject) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Save(subject).Error
}

func (qr *quizCatalogRepo) SaveTopic(ctx context.Context, tx *gorm.DB, topic *types.QuizTopic) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Save(topic).Error
}

func (qr *quizCatalogRepo) SaveQuizList(ctx context.Context, tx *gorm.DB, list *types.QuizList) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Save(list).Error
}

func (qr *quizCatalogRepo) SaveQuizPage(ctx context.Context, tx *gorm.DB, page *types.QuizPage) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Save(page).Error
}
