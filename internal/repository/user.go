package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/domain"
)

// User defines the interface for participant persistence
type User interface {
	// CreateUser inserts a new participant with their starting credits.
	// A duplicate username surfaces domain.ErrUsernameTaken.
	CreateUser(ctx context.Context, user *domain.User) error

	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
