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
	questionservice "qna-platform/backend/internal/question/service"
	"qna-platform/backend/internal/server/middleware"
)

// Handler serves question creation, listing, and deletion.
type Handler struct {
	logger   *slog.Logger
	service  *questionservice.QuestionService
	auditor  audit.AuditLogger
	validate *validator.Validate
}

// NewHandler builds the question Handler.
func NewHandler(logger *slog.Logger, service *questionservice.QuestionService, auditor audit.AuditLogger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		auditor:  auditor,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// MountRoutes registers the question routes behind the guard.
func (h *Handler) MountRoutes(r chi.Router, guard middleware.Guard) {
	r.With(guard("to post a question")).Post("/question/create", h.create)
	r.With(guard("to get all questions")).Get("/question/all", h.listAll)
	r.With(guard("to delete a question")).Delete("/question/{questionId}", h.delete)
}

type createRequest struct {
	Content string `json:"content" validate:"required,max=4096"`
}

type createResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type questionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Authentication Failed", "")
		return
	}
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	question, err := h.service.Create(r.Context(), caller.ID, req.Content)
	if err != nil {
		h.logger.Error("create question failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	h.auditor.LogEvent(r.Context(), caller.ID, audit.ActionQuestionCreate, "question", question.ID)
	httpx.JSON(w, http.StatusCreated, createResponse{ID: question.ID, Status: "QUESTION CREATED"})
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list questions failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionResponse{
			ID:        q.ID,
			UserID:    q.UserID,
			Content:   q.Content,
			CreatedAt: q.CreatedAt,
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())
	question, err := h.service.Delete(r.Context(), caller, chi.URLParam(r, "questionId"))
	if err != nil {
		var invErr *questionservice.InvalidQuestionError
		if errors.As(err, &invErr) {
			httpx.CodedProblem(w, http.StatusNotFound, invErr.Code, "Question Not Found", invErr.Message)
			return
		}
		var ownErr *questionservice.OwnershipError
		if errors.As(err, &ownErr) {
			httpx.CodedProblem(w, http.StatusForbidden, ownErr.Code, "Authorization Failed", ownErr.Message)
			return
		}
		h.logger.Error("delete question failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	callerID := ""
	if caller != nil {
		callerID = caller.ID
	}
	h.auditor.LogEvent(r.Context(), callerID, audit.ActionQuestionDelete, "question", question.ID)
	httpx.JSON(w, http.StatusOK, createResponse{ID: question.ID, Status: "QUESTION DELETED"})
}
