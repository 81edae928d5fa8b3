package repository

import (
	"context"

	"qna-platform/backend/internal/answer/domain"
)

// Repository defines persistence for answers.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error)
	Create(ctx context.Context, a *domain.Answer) error
}
