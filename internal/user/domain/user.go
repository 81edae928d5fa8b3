package domain

import (
	"errors"
	"time"
)

// User is the core user entity. PasswordHash and Salt together hold the
// stored credential; the plaintext password is never persisted.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	About        string
	Role         Role
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Validate validates the user for persistence. Returns an error describing
// the first validation failure.
func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" || u.Salt == "" {
		return errors.New("password hash and salt are required")
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
