package domain

import "time"

// Session represents one authenticated login. The access token is the unique
// lookup key; sessions are never deleted and remain as an audit trail of
// logins.
type Session struct {
	ID          string
	UserID      string
	AccessToken string
	LoginAt     time.Time
	ExpiresAt   time.Time
	LogoutAt    *time.Time // nil until the user signs out
	CreatedAt   time.Time
}

// LoggedOut reports whether the session was explicitly signed out.
func (s *Session) LoggedOut() bool {
	return s.LogoutAt != nil
}

// Expired reports whether the session's validity window has passed at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Active reports whether the session is neither signed out nor expired at now.
// A session leaves this state permanently; there is no transition back.
func (s *Session) Active(now time.Time) bool {
	return !s.LoggedOut() && !s.Expired(now)
}
