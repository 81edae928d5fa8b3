package repository

import (
	"context"

	"qna-platform/backend/internal/question/domain"
)

// Repository defines persistence for questions.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Question, error)
	ListAll(ctx context.Context) ([]*domain.Question, error)
	Create(ctx context.Context, q *domain.Question) error
	Delete(ctx context.Context, id string) error
}
