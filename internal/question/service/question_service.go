package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"qna-platform/backend/internal/question/domain"
	questionrepo "qna-platform/backend/internal/question/repository"
	userdomain "qna-platform/backend/internal/user/domain"
)

// QuestionService implements question creation, listing, lookup, and
// owner-or-admin deletion. Content itself carries no business rules.
type QuestionService struct {
	repo questionrepo.Repository
}

// NewQuestionService returns a QuestionService using repo for persistence.
func NewQuestionService(repo questionrepo.Repository) *QuestionService {
	return &QuestionService{repo: repo}
}

// Create persists a new question owned by userID.
func (s *QuestionService) Create(ctx context.Context, userID, content string) (*domain.Question, error) {
	q := &domain.Question{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListAll returns every question, newest first.
func (s *QuestionService) ListAll(ctx context.Context) ([]*domain.Question, error) {
	return s.repo.ListAll(ctx)
}

// GetByID returns the question for id.
func (s *QuestionService) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, &InvalidQuestionError{CodeInvalidQuestion, "The question entered is invalid"}
	}
	return q, nil
}

// Delete removes the question for id. Only the owner or an admin may delete.
func (s *QuestionService) Delete(ctx context.Context, caller *userdomain.User, id string) (*domain.Question, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller == nil || (caller.ID != q.UserID && caller.Role != userdomain.RoleAdmin) {
		return nil, &OwnershipError{CodeNotOwner, "Only the question owner or admin can delete the question"}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return q, nil
}
