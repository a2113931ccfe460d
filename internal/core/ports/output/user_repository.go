package ports

import (
	"context"

	"property-price-service/internal/core/domain"
)

// UserRepository persists user accounts for the auth layer.
type UserRepository interface {
	// Create inserts a new user. A duplicate username yields
	// domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) error
	// GetByUsername fetches a user, or domain.ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
