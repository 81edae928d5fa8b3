package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"qna-platform/backend/internal/answer/domain"
	answerrepo "qna-platform/backend/internal/answer/repository"
	questiondomain "qna-platform/backend/internal/question/domain"
	questionservice "qna-platform/backend/internal/question/service"
)

// QuestionRepo is the minimal question repository needed by the answer
// service.
type QuestionRepo interface {
	GetByID(ctx context.Context, id string) (*questiondomain.Question, error)
}

// AnswerService implements answer creation against existing questions.
type AnswerService struct {
	repo      answerrepo.Repository
	questions QuestionRepo
}

// NewAnswerService returns an AnswerService with the given dependencies.
func NewAnswerService(repo answerrepo.Repository, questions QuestionRepo) *AnswerService {
	return &AnswerService{repo: repo, questions: questions}
}

// Create persists a new answer by userID against questionID. The question
// must exist.
func (s *AnswerService) Create(ctx context.Context, questionID, userID, content string) (*domain.Answer, error) {
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, &questionservice.InvalidQuestionError{
			Code:    questionservice.CodeInvalidQuestion,
			Message: "The question entered is invalid",
		}
	}
	a := &domain.Answer{
		ID:         uuid.New().String(),
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListByQuestion returns the answers for the given question, oldest first.
// The question must exist.
func (s *AnswerService) ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, &questionservice.InvalidQuestionError{
			Code:    questionservice.CodeInvalidQuestion,
			Message: "The question entered is invalid",
		}
	}
	return s.repo.ListByQuestion(ctx, questionID)
}
