package ports

import (
	"context"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// AuthService orchestrates registration and login.
type AuthService interface {
	// Register creates a new USER account and mints a token for it.
	// Fails with domain.ErrUserExists when the username is taken.
	Register(ctx context.Context, username, password string) (*domain.User, string, error)
	// Login verifies credentials and mints a token for the existing user.
	// Unknown username and wrong password both fail with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
