package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	answerrepo "qna-platform/backend/internal/answer/repository"
	answerservice "qna-platform/backend/internal/answer/service"
	"qna-platform/backend/internal/audit"
	auditrepo "qna-platform/backend/internal/audit/repository"
	authrepo "qna-platform/backend/internal/auth/repository"
	authservice "qna-platform/backend/internal/auth/service"
	"qna-platform/backend/internal/config"
	"qna-platform/backend/internal/db"
	questionrepo "qna-platform/backend/internal/question/repository"
	questionservice "qna-platform/backend/internal/question/service"
	"qna-platform/backend/internal/security"
	"qna-platform/backend/internal/server"
	"qna-platform/backend/internal/server/middleware"
	"qna-platform/backend/internal/telemetry/otel"
	userrepo "qna-platform/backend/internal/user/repository"
	userservice "qna-platform/backend/internal/user/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("db", slog.Any("error", err))
		os.Exit(1)
	}
	defer conn.Close()

	ctx := context.Background()
	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "qna-backend", false)
	if err != nil {
		logger.Error("telemetry", slog.Any("error", err))
		os.Exit(1)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	privatePEM, err := security.LoadPEM(cfg.JWTPrivateKey)
	if err != nil {
		logger.Error("load private key", slog.Any("error", err))
		os.Exit(1)
	}
	publicPEM, err := security.LoadPEM(cfg.JWTPublicKey)
	if err != nil {
		logger.Error("load public key", slog.Any("error", err))
		os.Exit(1)
	}
	signer, err := security.ParsePrivateKey(string(privatePEM))
	if err != nil {
		logger.Error("parse private key", slog.Any("error", err))
		os.Exit(1)
	}
	publicKey, err := security.ParsePublicKey(string(publicPEM))
	if err != nil {
		logger.Error("parse public key", slog.Any("error", err))
		os.Exit(1)
	}
	tokens := security.NewTokenProvider(signer, publicKey, cfg.JWTIssuer, cfg.JWTAudience)
	hasher := security.NewPasswordHasher(cfg.PBKDF2Iterations)

	users := userrepo.NewPostgresRepository(conn)
	sessions := authrepo.NewPostgresRepository(conn)
	questions := questionrepo.NewPostgresRepository(conn)
	answers := answerrepo.NewPostgresRepository(conn)
	auditor := audit.NewLogger(auditrepo.NewPostgresRepository(conn), middleware.ClientIPFromContext)

	handler := server.NewRouter(server.Deps{
		Logger:       logger,
		Auth:         authservice.NewAuthService(users, sessions, hasher, tokens, cfg.SessionTTL()),
		Users:        userservice.NewUserService(users, hasher),
		UserGetter:   users,
		Questions:    questionservice.NewQuestionService(questions),
		Answers:      answerservice.NewAnswerService(answers, questions),
		Auditor:      auditor,
		HealthPinger: conn,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
	logger.Info("http server stopped")
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
