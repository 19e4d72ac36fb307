package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pricetide/pricetide/internal/domain"
)

// MockUserService mocks the user.Service interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockRoundService mocks the round.Service interface
type MockRoundService struct {
	mock.Mock
}

func (m *MockRoundService) GetOrOpenRound(ctx context.Context, family, marketKey string) (*domain.Round, error) {
	args := m.Called(ctx, family, marketKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRoundService) CreateCustomRound(ctx context.Context, creatorID uuid.UUID, tokenAddress string, durationMinutes int) (*domain.Round, error) {
	args := m.Called(ctx, creatorID, tokenAddress, durationMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRoundService) GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRoundService) ListRecentRounds(ctx context.Context, family, marketKey string, limit int) ([]domain.Round, error) {
	args := m.Called(ctx, family, marketKey, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Round), args.Error(1)
}

func (m *MockRoundService) ListActiveCustomRounds(ctx context.Context) ([]domain.Round, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Round), args.Error(1)
}

// MockStakeService mocks the stake.Service interface
type MockStakeService struct {
	mock.Mock
}

func (m *MockStakeService) PlaceStake(ctx context.Context, roundID, userID uuid.UUID, side domain.Side, amount int64) (*domain.Stake, error) {
	args := m.Called(ctx, roundID, userID, side, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stake), args.Error(1)
}

func (m *MockStakeService) ListLiveStakes(ctx context.Context, roundID uuid.UUID, limit int) ([]domain.Stake, error) {
	args := m.Called(ctx, roundID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stake), args.Error(1)
}

func (m *MockStakeService) ListUserStakes(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Stake, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stake), args.Error(1)
}

// MockStatsService mocks the stats.Service interface
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetLeaderboard(ctx context.Context) (*domain.Leaderboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Leaderboard), args.Error(1)
}

func (m *MockStatsService) GetRecentWinners(ctx context.Context) ([]domain.Winner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Winner), args.Error(1)
}

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}
