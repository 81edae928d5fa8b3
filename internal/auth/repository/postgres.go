package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"qna-platform/backend/internal/auth/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a session repository that uses the given db
// for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByToken returns the session for the given access token, or nil if not
// found. Tokens are the unique lookup key; at most one row matches.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, access_token, login_at, expires_at, logout_at, created_at
		FROM user_sessions WHERE access_token = $1`, token)
	var s domain.Session
	var logoutAt sql.NullTime
	err := row.Scan(&s.ID, &s.UserID, &s.AccessToken, &s.LoginAt, &s.ExpiresAt, &logoutAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.LogoutAt = nullTimeToPtr(logoutAt)
	return &s, nil
}

// Create persists the session to the database. The session must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_sessions (id, user_id, access_token, login_at, expires_at, logout_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.UserID, s.AccessToken, s.LoginAt, s.ExpiresAt, timeToNullTime(s.LogoutAt), s.CreatedAt,
	)
	return err
}

// Update writes the session's expiry and logout timestamps. A single-row
// update; no other session rows are touched.
func (r *PostgresRepository) Update(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_sessions SET expires_at = $2, logout_at = $3 WHERE id = $1`,
		s.ID, s.ExpiresAt, timeToNullTime(s.LogoutAt),
	)
	return err
}

func timeToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullTimeToPtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	return &n.Time
}
