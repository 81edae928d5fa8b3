package repository

import (
	"context"
	"database/sql"
	"errors"

	"qna-platform/backend/internal/answer/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an answer repository that uses the given db
// for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the answer for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Answer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, question_id, user_id, content, created_at FROM answers WHERE id = $1`, id)
	var a domain.Answer
	err := row.Scan(&a.ID, &a.QuestionID, &a.UserID, &a.Content, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ListByQuestion returns the answers for the given question, oldest first.
func (r *PostgresRepository) ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question_id, user_id, content, created_at
		FROM answers WHERE question_id = $1 ORDER BY created_at`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Answer
	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.UserID, &a.Content, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Create persists the answer to the database. The answer must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Answer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO answers (id, question_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.QuestionID, a.UserID, a.Content, a.CreatedAt,
	)
	return err
}
