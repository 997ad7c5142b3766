// Package service wires the pure calculator operations to storage, auth,
// and event publishing. Services return domain errors; the transport layer
// maps them to response codes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"splitledger/internal/auth"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// UserService handles registration, login, and user lookups.
type UserService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewUserService creates a new UserService.
func NewUserService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *UserService {
	return &UserService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Register creates a new user account and returns it with a session token.
func (s *UserService) Register(ctx context.Context, name, email, mobile, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, name, email, mobile, password)
	if err != nil {
		slog.Warn("Registration failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("User registered", "user_id", user.ID, "serial_id", user.SerialID)
	return user, token, nil
}

// Login authenticates a user and returns it with a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

// GetUser retrieves a user by storage ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}
