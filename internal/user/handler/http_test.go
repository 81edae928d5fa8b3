package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"qna-platform/backend/internal/audit"
	authdomain "qna-platform/backend/internal/auth/domain"
	"qna-platform/backend/internal/security"
	"qna-platform/backend/internal/server/middleware"
	"qna-platform/backend/internal/user/domain"
	userservice "qna-platform/backend/internal/user/service"
)

type memRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*domain.User{}}
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) Update(ctx context.Context, u *domain.User) error {
	return r.Create(ctx, u)
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// guardAs returns a Guard that injects the caller directly, standing in for
// the bearer middleware.
func guardAs(caller *domain.User) middleware.Guard {
	return func(string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := middleware.WithIdentity(r.Context(), caller, &authdomain.Session{ID: "s-1", UserID: caller.ID})
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}
	}
}

// guardNone passes requests through without identity, for routes that do not
// consult the context.
func guardNone(string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

func seedUser(t *testing.T, repo *memRepo, id, username string, role domain.Role) *domain.User {
	t.Helper()
	hasher := security.NewPasswordHasher(1000)
	digest, salt, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &domain.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		Role:         role,
		PasswordHash: digest,
		Salt:         salt,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}

func newHandler(repo *memRepo) *Handler {
	svc := userservice.NewUserService(repo, security.NewPasswordHasher(1000))
	return NewHandler(slog.Default(), svc, audit.Nop{})
}

func TestSignup_Success(t *testing.T) {
	repo := newMemRepo()
	r := chi.NewRouter()
	newHandler(repo).MountRoutes(r, guardNone)

	body := `{"userName":"alice","emailAddress":"alice@example.com","password":"s3cret1","firstName":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/user/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "USER SUCCESSFULLY REGISTERED" {
		t.Errorf("status = %q", resp.Status)
	}
	stored, _ := repo.GetByID(context.Background(), resp.ID)
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "s3cret1" || stored.PasswordHash == "" {
		t.Error("password not hashed")
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	repo := newMemRepo()
	seedUser(t, repo, "u-1", "alice", domain.RoleUser)
	r := chi.NewRouter()
	newHandler(repo).MountRoutes(r, guardNone)

	body := `{"userName":"alice","emailAddress":"other@example.com","password":"s3cret1"}`
	req := httptest.NewRequest(http.MethodPost, "/user/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != userservice.CodeUsernameTaken {
		t.Errorf("code = %q, want %q", resp.Code, userservice.CodeUsernameTaken)
	}
}

func TestSignup_InvalidBody(t *testing.T) {
	r := chi.NewRouter()
	newHandler(newMemRepo()).MountRoutes(r, guardNone)

	body := `{"userName":"al","emailAddress":"not-an-email","password":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/user/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetProfile(t *testing.T) {
	repo := newMemRepo()
	alice := seedUser(t, repo, "u-1", "alice", domain.RoleUser)
	r := chi.NewRouter()
	newHandler(repo).MountRoutes(r, guardAs(alice))

	req := httptest.NewRequest(http.MethodGet, "/user/u-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		ID       string `json:"id"`
		Username string `json:"userName"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Username != "alice" {
		t.Errorf("userName = %q", resp.Username)
	}
	if strings.Contains(rec.Body.String(), alice.PasswordHash) {
		t.Error("response leaks password hash")
	}
}

func TestGetProfile_UnknownID(t *testing.T) {
	repo := newMemRepo()
	alice := seedUser(t, repo, "u-1", "alice", domain.RoleUser)
	r := chi.NewRouter()
	newHandler(repo).MountRoutes(r, guardAs(alice))

	req := httptest.NewRequest(http.MethodGet, "/user/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != userservice.CodeUserNotFound {
		t.Errorf("code = %q, want %q", resp.Code, userservice.CodeUserNotFound)
	}
}

func TestDeleteUser_AdminOnly(t *testing.T) {
	repo := newMemRepo()
	alice := seedUser(t, repo, "u-1", "alice", domain.RoleUser)
	seedUser(t, repo, "u-2", "bob", domain.RoleUser)
	r := chi.NewRouter()
	newHandler(repo).MountRoutes(r, guardAs(alice))

	req := httptest.NewRequest(http.MethodDelete, "/user/u-2", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if u, _ := repo.GetByID(context.Background(), "u-2"); u == nil {
		t.Error("user deleted by non-admin")
	}
}

func TestDeleteUser_AsAdmin(t *testing.T) {
	repo := newMemRepo()
	admin := seedUser(t, repo, "a-1", "root", domain.RoleAdmin)
	seedUser(t, repo, "u-2", "bob", domain.RoleUser)
	r := chi.NewRouter()
	newHandler(repo).MountRoutes(r, guardAs(admin))

	req := httptest.NewRequest(http.MethodDelete, "/user/u-2", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if u, _ := repo.GetByID(context.Background(), "u-2"); u != nil {
		t.Error("user still present after admin delete")
	}
}
