package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"qna-platform/backend/internal/audit"
	"qna-platform/backend/internal/platform/httpx"
	"qna-platform/backend/internal/server/middleware"
	userservice "qna-platform/backend/internal/user/service"
)

// Handler serves user registration, profile lookup, and admin deletion.
type Handler struct {
	logger   *slog.Logger
	service  *userservice.UserService
	auditor  audit.AuditLogger
	validate *validator.Validate
}

// NewHandler builds the user Handler.
func NewHandler(logger *slog.Logger, service *userservice.UserService, auditor audit.AuditLogger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		auditor:  auditor,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// MountRoutes registers the user routes. Signup is public; profile lookup and
// deletion run behind the guard.
func (h *Handler) MountRoutes(r chi.Router, guard middleware.Guard) {
	r.Post("/user/signup", h.signup)
	r.With(guard("to get user details")).Get("/user/{userId}", h.getProfile)
	r.With(guard("to delete a user")).Delete("/user/{userId}", h.deleteUser)
}

type signupRequest struct {
	Username  string `json:"userName" validate:"required,min=3,max=64"`
	Email     string `json:"emailAddress" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"max=128"`
	LastName  string `json:"lastName" validate:"max=128"`
	About     string `json:"aboutMe" validate:"max=1024"`
}

type signupResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"userName"`
	Email     string    `json:"emailAddress"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	About     string    `json:"aboutMe,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type deleteResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	user, err := h.service.Signup(r.Context(), userservice.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		About:     req.About,
	})
	if err != nil {
		var suErr *userservice.SignUpError
		if errors.As(err, &suErr) {
			httpx.CodedProblem(w, http.StatusConflict, suErr.Code, "Sign Up Failed", suErr.Message)
			return
		}
		h.logger.Error("signup failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	h.auditor.LogEvent(r.Context(), user.ID, audit.ActionSignup, "user", user.Username)
	httpx.JSON(w, http.StatusCreated, signupResponse{ID: user.ID, Status: "USER SUCCESSFULLY REGISTERED"})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		var nfErr *userservice.UserNotFoundError
		if errors.As(err, &nfErr) {
			httpx.CodedProblem(w, http.StatusNotFound, nfErr.Code, "User Not Found", nfErr.Message)
			return
		}
		h.logger.Error("get profile failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, profileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		About:     user.About,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())
	target, err := h.service.Delete(r.Context(), caller, chi.URLParam(r, "userId"))
	if err != nil {
		var adminErr *userservice.AdminRequiredError
		if errors.As(err, &adminErr) {
			httpx.CodedProblem(w, http.StatusForbidden, adminErr.Code, "Authorization Failed", adminErr.Message)
			return
		}
		var nfErr *userservice.UserNotFoundError
		if errors.As(err, &nfErr) {
			httpx.CodedProblem(w, http.StatusNotFound, nfErr.Code, "User Not Found", nfErr.Message)
			return
		}
		h.logger.Error("delete user failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	callerID := ""
	if caller != nil {
		callerID = caller.ID
	}
	h.auditor.LogEvent(r.Context(), callerID, audit.ActionUserDelete, "user", target.ID)
	httpx.JSON(w, http.StatusOK, deleteResponse{ID: target.ID, Status: "USER SUCCESSFULLY DELETED"})
}
