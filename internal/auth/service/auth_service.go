package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"qna-platform/backend/internal/auth/domain"
	"qna-platform/backend/internal/security"
	userdomain "qna-platform/backend/internal/user/domain"
)

const bearerMarker = "Bearer "

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (*userdomain.User, error)
	Update(ctx context.Context, u *userdomain.User) error
}

// SessionRepo is the minimal session repository needed by the auth service.
type SessionRepo interface {
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	Update(ctx context.Context, s *domain.Session) error
}

// AuthService implements login, logout, and per-request bearer authorization.
type AuthService struct {
	userRepo    UserRepo
	sessionRepo SessionRepo
	hasher      *security.PasswordHasher
	tokens      *security.TokenProvider
	sessionTTL  time.Duration
}

// NewAuthService returns an AuthService with the given dependencies.
// sessionTTL is the validity window stamped on new sessions.
func NewAuthService(
	userRepo UserRepo,
	sessionRepo SessionRepo,
	hasher *security.PasswordHasher,
	tokens *security.TokenProvider,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		sessionTTL:  sessionTTL,
	}
}

// Authenticate verifies username/password and creates a new session valid for
// the configured TTL from now. Nothing is persisted unless the password
// verifies. Re-login creates a fresh independent session; prior sessions for
// the same user stay untouched, so a user may hold several active sessions.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &AuthenticationError{CodeUnknownUser, "This username does not exist"}
	}
	if !s.hasher.Verify(password, user.Salt, user.PasswordHash) {
		return nil, &AuthenticationError{CodeBadPassword, "Password failed"}
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.sessionTTL)
	token, err := s.tokens.Issue(user.ID, now, expiresAt)
	if err != nil {
		return nil, err
	}
	sess := &domain.Session{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		AccessToken: token,
		LoginAt:     now,
		ExpiresAt:   expiresAt,
		LogoutAt:    nil,
		CreatedAt:   now,
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}
	// Post-login write-through; no fields change on this path.
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logoff terminates the session for token. Both expiry and logout timestamps
// are stamped to now, so the session is immediately and permanently inactive.
// A token with no session, or one whose window already passed, cannot be
// signed out.
func (s *AuthService) Logoff(ctx context.Context, token string) (*domain.Session, error) {
	sess, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if sess == nil || sess.Expired(now) {
		return nil, &SignOutError{CodeSignOutDenied, "User is not Signed in"}
	}
	sess.ExpiresAt = now
	sess.LogoutAt = &now
	if err := s.sessionRepo.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ValidateBearer authorizes a request made with token. opContext names the
// attempted operation (e.g. "to post a question") and is appended to the
// signed-out message. Only the logout timestamp is checked here; a session
// past its natural expiry that was never signed out still authorizes.
func (s *AuthService) ValidateBearer(ctx context.Context, token, opContext string) (*domain.Session, error) {
	sess, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, &AuthorizationError{CodeNotSignedIn, "User has not signed in"}
	}
	if sess.LoggedOut() {
		return nil, &AuthorizationError{CodeSignedOut, "User is signed out.Sign in first " + opContext}
	}
	return sess, nil
}

// ExtractToken pulls the access token out of an authorization header value.
// "Bearer <token>" yields <token>; a value without the marker is taken as the
// token itself, so clients that omit the prefix still work. Only an empty
// result is rejected.
func (s *AuthService) ExtractToken(authorization string) (string, error) {
	token := authorization
	if i := strings.Index(authorization, bearerMarker); i >= 0 {
		token = authorization[i+len(bearerMarker):]
	}
	if token == "" {
		return "", &AuthenticationError{CodeBadHeaderFormat, "Use format: 'Bearer accessToken'"}
	}
	return token, nil
}
