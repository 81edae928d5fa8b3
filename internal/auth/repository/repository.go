package repository

import (
	"context"

	"qna-platform/backend/internal/auth/domain"
)

// Repository defines persistence for sessions. Sessions are created and
// updated but never deleted; rows remain as an audit trail of logins.
type Repository interface {
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	Update(ctx context.Context, s *domain.Session) error
}
