// Package user implements participant registration and profile reads.
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/repository"
)

// Username length bounds
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

// LogMsgUserRegistered is logged when a new participant registers
const LogMsgUserRegistered = "User registered"

// Service defines the interface for participant operations
type Service interface {
	// Register creates a new participant with the starting credit balance
	Register(ctx context.Context, username string) (*domain.User, error)

	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

type service struct {
	repo repository.User
}

// NewService creates a new user service
func NewService(repo repository.User) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return nil, fmt.Errorf("username must be %d-%d characters", MinUsernameLength, MaxUsernameLength)
	}

	user := &domain.User{
		Username: username,
		Credits:  domain.StartingCredits,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgUserRegistered,
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *service) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}
