package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	answerservice "qna-platform/backend/internal/answer/service"
	"qna-platform/backend/internal/audit"
	"qna-platform/backend/internal/platform/httpx"
	questionservice "qna-platform/backend/internal/question/service"
	"qna-platform/backend/internal/server/middleware"
)

// Handler serves answer creation.
type Handler struct {
	logger   *slog.Logger
	service  *answerservice.AnswerService
	auditor  audit.AuditLogger
	validate *validator.Validate
}

// NewHandler builds the answer Handler.
func NewHandler(logger *slog.Logger, service *answerservice.AnswerService, auditor audit.AuditLogger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		auditor:  auditor,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// MountRoutes registers the answer routes behind the guard.
func (h *Handler) MountRoutes(r chi.Router, guard middleware.Guard) {
	r.With(guard("to post a answer")).Post("/question/{questionId}/answer/create", h.create)
}

type createRequest struct {
	Content string `json:"content" validate:"required,max=4096"`
}

type createResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
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

	answer, err := h.service.Create(r.Context(), chi.URLParam(r, "questionId"), caller.ID, req.Content)
	if err != nil {
		var invErr *questionservice.InvalidQuestionError
		if errors.As(err, &invErr) {
			httpx.CodedProblem(w, http.StatusNotFound, invErr.Code, "Question Not Found", invErr.Message)
			return
		}
		h.logger.Error("create answer failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	h.auditor.LogEvent(r.Context(), caller.ID, audit.ActionAnswerCreate, "answer", answer.ID)
	httpx.JSON(w, http.StatusCreated, createResponse{ID: answer.ID, Status: "ANSWER CREATED"})
}
