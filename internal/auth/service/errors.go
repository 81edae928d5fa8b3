package service

import "fmt"

// Error codes carried by the auth error types. Handlers map the types to
// HTTP statuses; clients branch on the codes.
const (
	CodeUnknownUser     = "ATH-001"
	CodeBadPassword     = "ATH-002"
	CodeBadHeaderFormat = "ATH-005"
	CodeNotSignedIn     = "ATHR-001"
	CodeSignedOut       = "ATHR-002"
	CodeSignOutDenied   = "SGR-001"
)

// AuthenticationError is returned when credentials or the authorization
// header cannot be accepted (unknown user, bad password, unusable header).
type AuthenticationError struct {
	Code    string
	Message string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AuthorizationError is returned when a presented token does not belong to a
// session that may act (missing session, or session signed out).
type AuthorizationError struct {
	Code    string
	Message string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// SignOutError is returned when sign-out is attempted without a live session.
type SignOutError struct {
	Code    string
	Message string
}

func (e *SignOutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
