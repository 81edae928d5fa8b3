package service

import "fmt"

const (
	CodeUsernameTaken   = "SGR-001"
	CodeEmailRegistered = "SGR-002"
	CodeUserNotFound    = "USR-001"
	CodeNotAdmin        = "ATHR-003"
)

// SignUpError is returned when registration is rejected for a duplicate
// username or email.
type SignUpError struct {
	Code    string
	Message string
}

func (e *SignUpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UserNotFoundError is returned when a user id resolves to no user.
type UserNotFoundError struct {
	Code    string
	Message string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AdminRequiredError is returned when a non-admin attempts an admin-only
// operation.
type AdminRequiredError struct {
	Code    string
	Message string
}

func (e *AdminRequiredError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
