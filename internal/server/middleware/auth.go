package middleware

import (
	"context"
	"errors"
	"net/http"

	authservice "qna-platform/backend/internal/auth/service"
	"qna-platform/backend/internal/platform/httpx"
	userdomain "qna-platform/backend/internal/user/domain"
)

// UserGetter loads the user owning a validated session.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// Guard builds bearer-auth middleware for one guarded operation. The handlers
// receive a Guard from the router and wrap each protected route with the
// operation name surfaced in signed-out errors.
type Guard func(opContext string) func(http.Handler) http.Handler

// NewGuard returns a Guard backed by the auth service and user store.
func NewGuard(auth *authservice.AuthService, users UserGetter) Guard {
	return func(opContext string) func(http.Handler) http.Handler {
		return RequireAuth(auth, users, opContext)
	}
}

// RequireAuth returns middleware that authorizes the request's bearer token
// and puts the session and its user into the request context. opContext names
// the guarded operation (e.g. "to post a question") and surfaces in
// signed-out errors.
func RequireAuth(auth *authservice.AuthService, users UserGetter, opContext string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ExtractToken(r.Header.Get("Authorization"))
			if err != nil {
				RespondAuthError(w, err)
				return
			}
			sess, err := auth.ValidateBearer(r.Context(), token, opContext)
			if err != nil {
				RespondAuthError(w, err)
				return
			}
			user, err := users.GetByID(r.Context(), sess.UserID)
			if err != nil {
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if user == nil {
				// Session survives user deletion; the token no longer authorizes.
				httpx.CodedProblem(w, http.StatusForbidden, authservice.CodeNotSignedIn, "Authorization Failed", "User has not signed in")
				return
			}
			ctx := WithIdentity(r.Context(), user, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RespondAuthError maps auth service errors to problem responses:
// authentication failures to 401, authorization failures to 403, sign-out
// restrictions to 401.
func RespondAuthError(w http.ResponseWriter, err error) {
	var authnErr *authservice.AuthenticationError
	if errors.As(err, &authnErr) {
		httpx.CodedProblem(w, http.StatusUnauthorized, authnErr.Code, "Authentication Failed", authnErr.Message)
		return
	}
	var authzErr *authservice.AuthorizationError
	if errors.As(err, &authzErr) {
		httpx.CodedProblem(w, http.StatusForbidden, authzErr.Code, "Authorization Failed", authzErr.Message)
		return
	}
	var soErr *authservice.SignOutError
	if errors.As(err, &soErr) {
		httpx.CodedProblem(w, http.StatusUnauthorized, soErr.Code, "Sign Out Restricted", soErr.Message)
		return
	}
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
