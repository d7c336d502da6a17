package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/splitsmart/splitsmart/internal/auth"
	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/storage"
)

// AuthService handles registration, login and session lookups.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Register creates a new user account and returns the user with a session
// token.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, string, error) {
	if email == "" {
		return nil, "", invalidf("email is required")
	}
	if name == "" {
		return nil, "", invalidf("name is required")
	}

	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		slog.Warn("registration failed", "email", email, "error", err)
		if errors.Is(err, auth.ErrEmailExists) || errors.Is(err, auth.ErrWeakPassword) {
			return nil, "", invalidf("%v", err)
		}
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("login failed", "email", email)
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// CurrentUser returns the full profile of the authenticated user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// SearchUsers finds users to pick as expense participants.
func (s *AuthService) SearchUsers(ctx context.Context, userID, query string) ([]*models.User, error) {
	if len(query) < 2 {
		return nil, invalidf("search query must be at least 2 characters")
	}
	return s.store.SearchUsers(ctx, query, userID)
}
