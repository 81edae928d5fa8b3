package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	answerhandler "qna-platform/backend/internal/answer/handler"
	answerservice "qna-platform/backend/internal/answer/service"
	"qna-platform/backend/internal/audit"
	authhandler "qna-platform/backend/internal/auth/handler"
	authservice "qna-platform/backend/internal/auth/service"
	healthhandler "qna-platform/backend/internal/health/handler"
	questionhandler "qna-platform/backend/internal/question/handler"
	questionservice "qna-platform/backend/internal/question/service"
	"qna-platform/backend/internal/server/middleware"
	userhandler "qna-platform/backend/internal/user/handler"
	userservice "qna-platform/backend/internal/user/service"
)

// Deps holds the services the HTTP router exposes.
type Deps struct {
	Logger *slog.Logger
	// Auth is the session service behind signin/signout and the bearer guard.
	Auth *authservice.AuthService
	// Users serves signup, profile lookup, and admin deletion.
	Users *userservice.UserService
	// UserGetter resolves a validated session to its user. Usually the user
	// repository.
	UserGetter middleware.UserGetter
	Questions  *questionservice.QuestionService
	Answers    *answerservice.AnswerService
	// Auditor records security-relevant events. If nil, auditing is disabled.
	Auditor audit.AuditLogger
	// HealthPinger is used for readiness (e.g. *sql.DB). If nil, the health
	// endpoint skips the DB ping.
	HealthPinger healthhandler.Pinger
}

// NewRouter builds the chi router with all routes mounted and otelhttp
// instrumentation around the whole mux.
func NewRouter(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Auditor == nil {
		deps.Auditor = audit.Nop{}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.ClientIP)
	r.Use(requestLogger(deps.Logger))

	guard := middleware.NewGuard(deps.Auth, deps.UserGetter)

	healthhandler.NewHandler(deps.Logger, deps.HealthPinger).MountRoutes(r)
	authhandler.NewHandler(deps.Logger, deps.Auth, deps.Auditor).MountRoutes(r)
	userhandler.NewHandler(deps.Logger, deps.Users, deps.Auditor).MountRoutes(r, guard)
	questionhandler.NewHandler(deps.Logger, deps.Questions, deps.Auditor).MountRoutes(r, guard)
	answerhandler.NewHandler(deps.Logger, deps.Answers, deps.Auditor).MountRoutes(r, guard)

	return otelhttp.NewHandler(r, "http.server")
}

// requestLogger logs one line per request at Info level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
