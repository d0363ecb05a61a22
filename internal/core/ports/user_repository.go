package ports

import (
	"context"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// UserRepository is the credential store. Create must fail with
// domain.ErrUserExists when the username is already taken; the storage layer
// (unique index) is the authoritative guard, not an application-level check.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
