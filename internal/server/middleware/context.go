package middleware

import (
	"context"

	authdomain "qna-platform/backend/internal/auth/domain"
	userdomain "qna-platform/backend/internal/user/domain"
)

type contextKey struct{ name string }

var (
	userKey    = contextKey{"user"}
	sessionKey = contextKey{"session"}
)

// WithIdentity returns a context with the authenticated user and session set.
// Handlers read these via UserFromContext and SessionFromContext.
func WithIdentity(ctx context.Context, user *userdomain.User, session *authdomain.Session) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	ctx = context.WithValue(ctx, sessionKey, session)
	return ctx
}

// UserFromContext returns the authenticated user and true if set; otherwise
// nil, false.
func UserFromContext(ctx context.Context) (*userdomain.User, bool) {
	u, ok := ctx.Value(userKey).(*userdomain.User)
	return u, ok
}

// SessionFromContext returns the authenticated session and true if set;
// otherwise nil, false.
func SessionFromContext(ctx context.Context) (*authdomain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*authdomain.Session)
	return s, ok
}
