package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"qna-platform/backend/internal/security"
	"qna-platform/backend/internal/user/domain"
	userrepo "qna-platform/backend/internal/user/repository"
)

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	About     string
}

// UserService implements registration, profile lookup, and admin deletion.
type UserService struct {
	repo   userrepo.Repository
	hasher *security.PasswordHasher
}

// NewUserService returns a UserService with the given dependencies.
func NewUserService(repo userrepo.Repository, hasher *security.PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// Signup registers a new user. Username and email must both be unused.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &SignUpError{CodeUsernameTaken, "Try any other Username, this Username has already been taken"}
	}
	existing, err = s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &SignUpError{CodeEmailRegistered, "This user has already been registered, try with any other emailId"}
	}

	digest, salt, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		About:        strings.TrimSpace(in.About),
		Role:         domain.RoleUser,
		PasswordHash: digest,
		Salt:         salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile returns the user for id.
func (s *UserService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &UserNotFoundError{CodeUserNotFound, "User with entered uuid does not exist"}
	}
	return user, nil
}

// Delete removes the user identified by targetID. Only admins may delete
// users. Session rows of the deleted user are retained as audit trail.
func (s *UserService) Delete(ctx context.Context, caller *domain.User, targetID string) (*domain.User, error) {
	if caller == nil || caller.Role != domain.RoleAdmin {
		return nil, &AdminRequiredError{CodeNotAdmin, "Unauthorized Access, Entered user is not an admin"}
	}
	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, &UserNotFoundError{CodeUserNotFound, "User with entered uuid to be deleted does not exist"}
	}
	if err := s.repo.Delete(ctx, targetID); err != nil {
		return nil, err
	}
	return target, nil
}
