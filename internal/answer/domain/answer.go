package domain

import "time"

// Answer is an answer posted against an existing question.
type Answer struct {
	ID         string
	QuestionID string
	UserID     string
	Content    string
	CreatedAt  time.Time
}
