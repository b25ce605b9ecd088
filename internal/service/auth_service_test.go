package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lesson-reservations/internal/auth"
	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/internal/infrastructure/repository"

	"github.com/google/uuid"
)

func newAuthService() *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "lesson-reservations",
	})
	return NewAuthService(repository.NewMockUserRepository(), jwtService)
}

func TestCreateUserAndLogin(t *testing.T) {
	service := newAuthService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, CreateUserInput{
		Email:    "admin@centrumrubacek.cz",
		Password: "admin123!",
		Name:     "Admin",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.PasswordHash == "admin123!" {
		t.Fatal("password stored in plaintext")
	}

	result, err := service.Login(ctx, "admin@centrumrubacek.cz", "admin123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Error("empty token")
	}
	if result.User.UserID != user.UserID {
		t.Errorf("user id = %s, want %s", result.User.UserID, user.UserID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service := newAuthService()
	ctx := context.Background()

	if _, err := service.CreateUser(ctx, CreateUserInput{
		Email:    "admin@centrumrubacek.cz",
		Password: "admin123!",
		Name:     "Admin",
		Role:     domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := service.Login(ctx, "admin@centrumrubacek.cz", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service := newAuthService()

	if _, err := service.Login(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	service := newAuthService()
	ctx := context.Background()

	input := CreateUserInput{
		Email:    "admin@centrumrubacek.cz",
		Password: "admin123!",
		Name:     "Admin",
		Role:     domain.RoleAdmin,
	}
	if _, err := service.CreateUser(ctx, input); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := service.CreateUser(ctx, input); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestGetUserUnknown(t *testing.T) {
	service := newAuthService()

	if _, err := service.GetUser(context.Background(), uuid.New()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}
