package repository

import (
	"context"
	"database/sql"
	"errors"

	"qna-platform/backend/internal/question/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a question repository that uses the given db
// for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the question for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, content, created_at FROM questions WHERE id = $1`, id)
	var q domain.Question
	err := row.Scan(&q.ID, &q.UserID, &q.Content, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// ListAll returns every question, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, content, created_at FROM questions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.UserID, &q.Content, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &q)
	}
	return out, rows.Err()
}

// Create persists the question to the database. The question must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, q *domain.Question) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO questions (id, user_id, content, created_at) VALUES ($1, $2, $3, $4)`,
		q.ID, q.UserID, q.Content, q.CreatedAt,
	)
	return err
}

// Delete removes the question row. Answers cascade at the schema level.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}
