package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/normalization"
	"github.com/quizmize/backend/internal/repos"
	"github.com/quizmize/backend/internal/types"
)

type QuizQuestionInput struct {
	Topic     string             `json:"topic"`
	Subject   string             `json:"subject"`
	QuizTopic string             `json:"quizTopic"`
	QuizList  string             `json:"quizList"`
	Question  types.QuizQuestion `json:"question"`
}

// QuizCatalogService serves the browse tree: subject -> topic -> quiz
// list -> question pages. The mutating half is the admin-only editor
// surface that maintains the catalog.
type QuizCatalogService interface {
	ListSubjects(ctx context.Context) ([]*types.Subject, error)
	GetTopics(ctx context.Context, subject string) (*types.QuizTopic, error)
	GetQuizList(ctx context.Context, quizTopic string) (*types.QuizList, error)
	GetQuizPage(ctx context.Context, topic string) (*types.QuizPage, error)

	UpsertSubject(ctx context.Context, subject *types.Subject) (*types.Subject, error)
	UpsertTopic(ctx context.Context, topic *types.QuizTopic) (*types.QuizTopic, error)
	UpsertQuizList(ctx context.Context, list *types.QuizList) (*types.QuizList, error)
	AddQuizQuestion(ctx context.Context, input QuizQuestionInput) (*types.QuizPage, error)
	UpdateQuizQuestion(ctx context.Context, input QuizQuestionInput, index int) (*types.QuizPage, error)
	DeleteQuizQuestion(ctx context.Context, topic, quizList string, index int) error
}

type quizCatalogService struct {
	db       *gorm.DB
	log      *logger.Logger
	quizRepo repos.QuizCatalogRepo
}

func NewQuizCatalogService(db *gorm.DB, log *logger.Logger, quizRepo repos.QuizCatalogRepo) QuizCatalogService {
	serviceLog := log.With("service", "QuizCatalogService")
	return &quizCatalogService{
		db:       db,
		log:      serviceLog,
		quizRepo: quizRepo,
	}
}

func (qs *quizCatalogService) ListSubjects(ctx context.Context) ([]*types.Subject, error) {
	subjects, err := qs.quizRepo.ListSubjects(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to list subjects: %w", err))
	}
	return subjects, nil
}

func (qs *quizCatalogService) GetTopics(ctx context.Context, subject string) (*types.QuizTopic, error) {
	subject = normalization.TrimInputString(subject)
	if subject == "" {
		return nil, apierr.Validation("Subject is required")
	}
	topic, err := qs.quizRepo.GetTopicsBySubject(ctx, nil, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("subject")
		}
		return nil, apierr.Internal(fmt.Errorf("Failed to load topics: %w", err))
	}
	return topic, nil
}

func (qs *quizCatalogService) GetQuizList(ctx context.Context, quizTopic string) (*types.QuizList, error) {
	quizTopic = normalization.TrimInputString(quizTopic)
	if quizTopic == "" {
		return nil, apierr.Validation("Quiz topic is required")
	}
	list, err := qs.quizRepo.GetQuizListByTopic(ctx, nil, quizTopic)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("quiz list")
		}
		return nil, apierr.Internal(fmt.Errorf("Failed to load quiz list: %w", err))
	}
	return list, nil
}

func (qs *quizCatalogService) GetQuizPage(ctx context.Context, topic string) (*types.QuizPage, error) {
	topic = normalization.TrimInputString(topic)
	if topic == "" {
		return nil, apierr.Validation("Topic is required")
	}
	page, err := qs.quizRepo.GetQuizPageByTopic(ctx, nil, topic)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("quiz page")
		}
		return nil, apierr.Internal(fmt.Errorf("Failed to load quiz page: %w", err))
	}
	return page, nil
}

func (qs *quizCatalogService) UpsertSubject(ctx context.Context, subject *types.Subject) (*types.Subject, error) {
	subject.Name = normalization.TrimInputString(subject.Name)
	if subject.Name == "" {
		return nil, apierr.Validation("Subject name is required")
	}
	if err := qs.quizRepo.SaveSubject(ctx, nil, subject); err != nil {
		if apierr.IsDuplicateKey(err) {
			return nil, apierr.Conflict("name", "Subject with this name already exists")
		}
		return nil, apierr.Internal(fmt.Errorf("Failed to save subject: %w", err))
	}
	return subject, nil
}

func (qs *quizCatalogService) UpsertTopic(ctx context.Context, topic *types.QuizTopic) (*types.QuizTopic, error) {
	topic.Subject = normalization.TrimInputString(topic.Subject)
	topic.Name = normalization.TrimInputString(topic.Name)
	if topic.Subject == "" {
		return nil, apierr.Validation("Subject is required")
	}
	if topic.Name == "" {
		return nil, apierr.Validation("Topic name is required")
	}
	if err := qs.quizRepo.SaveTopic(ctx, nil, topic); err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to save topic: %w", err))
	}
	return topic, nil
}

func (qs *quizCatalogService) UpsertQuizList(ctx context.Context, list *types.QuizList) (*types.QuizList, error) {
	list.QuizTopic = normalization.TrimInputString(list.QuizTopic)
	list.Name = normalization.TrimInputString(list.Name)
	if list.QuizTopic == "" {
		return nil, apierr.Validation("Quiz topic is required")
	}
	if list.Name == "" {
		return nil, apierr.Validation("Quiz list name is required")
	}
	if err := qs.quizRepo.SaveQuizList(ctx, nil, list); err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to save quiz list: %w", err))
	}
	return list, nil
}

func validateQuizQuestion(q types.QuizQuestion) error {
	if normalization.TrimInputString(q.Question) == "" {
		return apierr.Validation("Question text is required")
	}
	if len(q.Choices) < 2 {
		return apierr.Validation("A question needs at least two choices")
	}
	if q.Answer < 0 || q.Answer >= len(q.Choices) {
		return apierr.Validation("Answer index is out of range")
	}
	return nil
}

// AddQuizQuestion appends a question to the named quiz list on the page
// keyed by topic, creating the page or the list entry when absent.
func (qs *quizCatalogService) AddQuizQuestion(ctx context.Context, input QuizQuestionInput) (*types.QuizPage, error) {
	input.Topic = normalization.TrimInputString(input.Topic)
	input.QuizList = normalization.TrimInputString(input.QuizList)
	if input.Topic == "" || input.QuizList == "" {
		return nil, apierr.Validation("Topic and quiz list are required")
	}
	if err := validateQuizQuestion(input.Question); err != nil {
		return nil, err
	}

	var page *types.QuizPage
	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := qs.quizRepo.GetQuizPageByTopic(ctx, tx, input.Topic)
		if gErr != nil {
			if !errors.Is(gErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("Failed to load quiz page: %w", gErr)
			}
			existing = &types.QuizPage{
				Topic:     input.Topic,
				Subject:   normalization.TrimInputString(input.Subject),
				QuizTopic: normalization.TrimInputString(input.QuizTopic),
			}
		}

		if entry := existing.Entry(input.QuizList); entry != nil {
			entry.Quiz = append(entry.Quiz, input.Question)
		} else {
			existing.Pages = append(existing.Pages, types.QuizPageEntry{
				QuizList: input.QuizList,
				Quiz:     []types.QuizQuestion{input.Question},
			})
		}

		if sErr := qs.quizRepo.SaveQuizPage(ctx, tx, existing); sErr != nil {
			return fmt.Errorf("Failed to save quiz page: %w", sErr)
		}
		page = existing
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return page, nil
}

func (qs *quizCatalogService) UpdateQuizQuestion(ctx context.Context, input QuizQuestionInput, index int) (*types.QuizPage, error) {
	input.Topic = normalization.TrimInputString(input.Topic)
	input.QuizList = normalization.TrimInputString(input.QuizList)
	if input.Topic == "" || input.QuizList == "" {
		return nil, apierr.Validation("Topic and quiz list are required")
	}
	if err := validateQuizQuestion(input.Question); err != nil {
		return nil, err
	}

	var page *types.QuizPage
	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := qs.quizRepo.GetQuizPageByTopic(ctx, tx, input.Topic)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("quiz page")
			}
			return fmt.Errorf("Failed to load quiz page: %w", gErr)
		}
		entry := existing.Entry(input.QuizList)
		if entry == nil {
			return apierr.NotFound("quiz list")
		}
		if index < 0 || index >= len(entry.Quiz) {
			return apierr.Validation("Question index is out of range")
		}
		entry.Quiz[index] = input.Question

		if sErr := qs.quizRepo.SaveQuizPage(ctx, tx, existing); sErr != nil {
			return fmt.Errorf("Failed to save quiz page: %w", sErr)
		}
		page = existing
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return page, nil
}

func (qs *quizCatalogService) DeleteQuizQuestion(ctx context.Context, topic, quizList string, index int) error {
	topic = normalization.TrimInputString(topic)
	quizList = normalization.TrimInputString(quizList)
	if topic == "" || quizList == "" {
		return apierr.Validation("Topic and quiz list are required")
	}

	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := qs.quizRepo.GetQuizPageByTopic(ctx, tx, topic)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("quiz page")
			}
			return fmt.Errorf("Failed to load quiz page: %w", gErr)
		}
		entry := existing.Entry(quizList)
		if entry == nil {
			return apierr.NotFound("quiz list")
		}
		if index < 0 || index >= len(entry.Quiz) {
			return apierr.Validation("Question index is out of range")
		}
		entry.Quiz = append(entry.Quiz[:index], entry.Quiz[index+1:]...)

		if sErr := qs.quizRepo.SaveQuizPage(ctx, tx, existing); sErr != nil {
			return fmt.Errorf("Failed to save quiz page: %w", sErr)
		}
		return nil
	})
	if err != nil {
		return apierr.From(err)
	}
	return nil
}
