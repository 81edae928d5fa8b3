package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	authdomain "qna-platform/backend/internal/auth/domain"
	authservice "qna-platform/backend/internal/auth/service"
	"qna-platform/backend/internal/security"
	userdomain "qna-platform/backend/internal/user/domain"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*userdomain.User
}

func (s *memUserStore) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) Update(ctx context.Context, u *userdomain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

type memSessionStore struct {
	mu      sync.Mutex
	byToken map[string]*authdomain.Session
}

func (s *memSessionStore) GetByToken(ctx context.Context, token string) (*authdomain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byToken[token]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessionStore) Create(ctx context.Context, sess *authdomain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.byToken[sess.AccessToken] = &cp
	return nil
}

func (s *memSessionStore) Update(ctx context.Context, sess *authdomain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.byToken[sess.AccessToken] = &cp
	return nil
}

func setupAuth(t *testing.T) (*authservice.AuthService, *memUserStore, string) {
	t.Helper()
	hasher := security.NewPasswordHasher(1000)
	digest, salt, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &userdomain.User{
		ID:           "u-1",
		Username:     "alice",
		Email:        "alice@example.com",
		Role:         userdomain.RoleUser,
		PasswordHash: digest,
		Salt:         salt,
	}
	users := &memUserStore{users: map[string]*userdomain.User{user.ID: user}}
	sessions := &memSessionStore{byToken: map[string]*authdomain.Session{}}
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("test token provider: %v", err)
	}
	svc := authservice.NewAuthService(users, sessions, hasher, tokens, 8*time.Hour)
	sess, err := svc.Authenticate(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	return svc, users, sess.AccessToken
}

func identityEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			t.Error("user missing from context")
		}
		if _, ok := SessionFromContext(r.Context()); !ok {
			t.Error("session missing from context")
		}
		w.WriteHeader(http.StatusOK)
		if user != nil {
			w.Write([]byte(user.ID))
		}
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	svc, users, token := setupAuth(t)
	h := RequireAuth(svc, users, "to get all questions")(identityEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/question/all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if got := rec.Body.String(); got != "u-1" {
		t.Fatalf("user id = %q, want %q", got, "u-1")
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	svc, users, _ := setupAuth(t)
	h := RequireAuth(svc, users, "to get all questions")(identityEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/question/all", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != authservice.CodeBadHeaderFormat {
		t.Fatalf("code = %q, want %q", body.Code, authservice.CodeBadHeaderFormat)
	}
}

func TestRequireAuth_UnknownToken(t *testing.T) {
	svc, users, _ := setupAuth(t)
	h := RequireAuth(svc, users, "to get all questions")(identityEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/question/all", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != authservice.CodeNotSignedIn {
		t.Fatalf("code = %q, want %q", body.Code, authservice.CodeNotSignedIn)
	}
}

func TestRequireAuth_SignedOutToken(t *testing.T) {
	svc, users, token := setupAuth(t)
	if _, err := svc.Logoff(context.Background(), token); err != nil {
		t.Fatalf("logoff: %v", err)
	}
	h := RequireAuth(svc, users, "to post a question")(identityEcho(t))

	req := httptest.NewRequest(http.MethodPost, "/question/create", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	var body struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != authservice.CodeSignedOut {
		t.Fatalf("code = %q, want %q", body.Code, authservice.CodeSignedOut)
	}
	if want := "User is signed out.Sign in first to post a question"; body.Detail != want {
		t.Fatalf("detail = %q, want %q", body.Detail, want)
	}
}

func TestRequireAuth_BareTokenWithoutScheme(t *testing.T) {
	svc, users, token := setupAuth(t)
	h := RequireAuth(svc, users, "to get all questions")(identityEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/question/all", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}
