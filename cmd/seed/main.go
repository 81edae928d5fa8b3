// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev admin (admin@example.com) already exists.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"qna-platform/backend/internal/config"
	"qna-platform/backend/internal/db"
	questiondomain "qna-platform/backend/internal/question/domain"
	questionrepo "qna-platform/backend/internal/question/repository"
	"qna-platform/backend/internal/security"
	userdomain "qna-platform/backend/internal/user/domain"
	userrepo "qna-platform/backend/internal/user/repository"
)

const (
	adminEmail    = "admin@example.com"
	adminUsername = "admin"
	devEmail      = "dev@example.com"
	devUsername   = "dev"
	devPassword   = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)
	questions := questionrepo.NewPostgresRepository(conn)

	existing, err := users.GetByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (admin@example.com exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewPasswordHasher(cfg.PBKDF2Iterations)
	now := time.Now().UTC()

	admin, err := seedUser(ctx, users, hasher, adminUsername, adminEmail, userdomain.RoleAdmin, now)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	dev, err := seedUser(ctx, users, hasher, devUsername, devEmail, userdomain.RoleUser, now)
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	question := &questiondomain.Question{
		ID:        uuid.New().String(),
		UserID:    dev.ID,
		Content:   "What is the capital of France?",
		CreatedAt: now,
	}
	if err := questions.Create(ctx, question); err != nil {
		log.Fatalf("seed question: %v", err)
	}

	log.Printf("Seeded admin %s, user %s, question %s", admin.ID, dev.ID, question.ID)
	log.Printf("Dev credentials: %s / %s", devUsername, devPassword)
}

func seedUser(ctx context.Context, repo *userrepo.PostgresRepository, hasher *security.PasswordHasher, username, email string, role userdomain.Role, now time.Time) (*userdomain.User, error) {
	digest, salt, err := hasher.Hash(devPassword)
	if err != nil {
		return nil, err
	}
	u := &userdomain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: digest,
		Salt:         salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
