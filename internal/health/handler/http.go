package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"qna-platform/backend/internal/platform/httpx"
)

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the liveness/readiness endpoint.
type Handler struct {
	logger *slog.Logger
	db     Pinger
}

// NewHandler builds the health Handler. db may be nil; readiness is then
// reported without a database check.
func NewHandler(logger *slog.Logger, db Pinger) *Handler {
	return &Handler{logger: logger, db: db}
}

// MountRoutes registers GET /healthz.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/healthz", h.healthz)
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Error("health: database ping failed", slog.Any("error", err))
			resp.Status = "degraded"
			resp.Database = "unreachable"
			httpx.JSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}
	httpx.JSON(w, http.StatusOK, resp)
}
