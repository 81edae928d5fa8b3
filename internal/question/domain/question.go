package domain

import "time"

// Question is a question posted by a user. Content rules are out of scope;
// this is a plain persistence entity.
type Question struct {
	ID        string
	UserID    string
	Content   string
	CreatedAt time.Time
}
