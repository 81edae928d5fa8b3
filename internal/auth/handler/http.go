package handler

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"qna-platform/backend/internal/audit"
	authservice "qna-platform/backend/internal/auth/service"
	"qna-platform/backend/internal/platform/httpx"
	"qna-platform/backend/internal/server/middleware"
)

// Handler serves the sign-in and sign-out endpoints.
type Handler struct {
	logger  *slog.Logger
	service *authservice.AuthService
	auditor audit.AuditLogger
}

// NewHandler builds the auth Handler.
func NewHandler(logger *slog.Logger, service *authservice.AuthService, auditor audit.AuditLogger) *Handler {
	return &Handler{logger: logger, service: service, auditor: auditor}
}

// MountRoutes registers the auth routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/user/signin", h.signin)
	r.Post("/user/signout", h.signout)
}

type signinResponse struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type signoutResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// signin accepts a Basic authorization header, verifies the credentials, and
// opens a new session. The access token is echoed in the access-token
// response header alongside the JSON body.
func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	username, password, err := decodeBasicAuth(r.Header.Get("Authorization"))
	if err != nil {
		httpx.CodedProblem(w, http.StatusBadRequest, authservice.CodeBadHeaderFormat, "Bad Request", "Use format: 'Basic base64(username:password)'")
		return
	}

	session, err := h.service.Authenticate(r.Context(), username, password)
	if err != nil {
		h.auditor.LogEvent(r.Context(), "", audit.ActionLoginFailure, "session", username)
		middleware.RespondAuthError(w, err)
		return
	}

	h.auditor.LogEvent(r.Context(), session.UserID, audit.ActionLoginSuccess, "session", session.ID)
	w.Header().Set("access-token", session.AccessToken)
	httpx.JSON(w, http.StatusOK, signinResponse{
		ID:          session.UserID,
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
	})
}

// signout closes the session identified by the bearer token. Only a live
// session can be signed out.
func (h *Handler) signout(w http.ResponseWriter, r *http.Request) {
	token, err := h.service.ExtractToken(r.Header.Get("Authorization"))
	if err != nil {
		middleware.RespondAuthError(w, err)
		return
	}

	session, err := h.service.Logoff(r.Context(), token)
	if err != nil {
		middleware.RespondAuthError(w, err)
		return
	}

	h.auditor.LogEvent(r.Context(), session.UserID, audit.ActionLogout, "session", session.ID)
	httpx.JSON(w, http.StatusOK, signoutResponse{
		ID:     session.UserID,
		Status: "SIGNED OUT SUCCESSFULLY",
	})
}

// decodeBasicAuth parses "Basic base64(username:password)". The scheme prefix
// is optional, matching the lenient bearer extraction.
func decodeBasicAuth(header string) (username, password string, err error) {
	payload := header
	if i := strings.Index(header, "Basic "); i >= 0 {
		payload = header[i+len("Basic "):]
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", err
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", errors.New("credentials must be username:password")
	}
	return username, password, nil
}
