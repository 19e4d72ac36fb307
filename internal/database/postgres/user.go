package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricetide/pricetide/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new participant with their starting credits
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, credits)
		VALUES ($1, $2)
		RETURNING user_id, created_at`,
		user.Username, user.Credits,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a participant by ID
func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getUser(ctx, `WHERE user_id = $1`, id)
}

// GetUserByUsername retrieves a participant by username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE username = $1`, username)
}

func (r *UserRepository) getUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `
		SELECT user_id, username, credits, created_at
		FROM users `+where,
		arg,
	).Scan(&u.ID, &u.Username, &u.Credits, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
