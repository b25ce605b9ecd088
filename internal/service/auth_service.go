package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lesson-reservations/internal/auth"
	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/pkg/logger"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures do not leak which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService issues access tokens for the user store.
type AuthService struct {
	userRepo domain.UserRepository
	jwt      *auth.JWTService
}

func NewAuthService(userRepo domain.UserRepository, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
	}
}

// LoginResult carries the issued token together with the authenticated user.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"`
	User      *domain.User `json:"user"`
}

// Login verifies the credentials and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, time.Now()); err != nil {
		logger.Warn("failed to stamp last login for %s: %v", user.Email, err)
	}

	return &LoginResult{Token: token, ExpiresIn: expiresIn, User: user}, nil
}

// CreateUserInput carries the fields needed to create an account.
type CreateUserInput struct {
	Email         string          `json:"email" validate:"required,email"`
	Password      string          `json:"password" validate:"required,min=8"`
	Name          string          `json:"name" validate:"required"`
	Role          domain.UserRole `json:"role" validate:"required,oneof=admin participant"`
	ParticipantID *uuid.UUID      `json:"participant_id,omitempty"`
}

// CreateUser creates an account with a bcrypt password hash.
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		UserID:        uuid.New(),
		Email:         input.Email,
		PasswordHash:  hash,
		Name:          input.Name,
		Role:          input.Role,
		ParticipantID: input.ParticipantID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves an account by ID.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
