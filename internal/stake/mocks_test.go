package stake

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/repository"
)

// MockRepository implements repository.Stake
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRepository) GetStake(ctx context.Context, id uuid.UUID) (*domain.Stake, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stake), args.Error(1)
}

func (m *MockRepository) ListStakesByRound(ctx context.Context, roundID uuid.UUID, limit int) ([]domain.Stake, error) {
	args := m.Called(ctx, roundID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stake), args.Error(1)
}

func (m *MockRepository) ListStakesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Stake, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stake), args.Error(1)
}

func (m *MockRepository) BeginPlacementTx(ctx context.Context) (repository.PlacementTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.PlacementTx), args.Error(1)
}

// MockPlacementTx implements repository.PlacementTx
type MockPlacementTx struct {
	mock.Mock
}

func (m *MockPlacementTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlacementTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlacementTx) DebitBalance(ctx context.Context, userID uuid.UUID, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockPlacementTx) InsertStake(ctx context.Context, stake *domain.Stake) error {
	args := m.Called(ctx, stake)
	return args.Error(0)
}

func (m *MockPlacementTx) AddToPool(ctx context.Context, roundID uuid.UUID, amount int64) error {
	args := m.Called(ctx, roundID, amount)
	return args.Error(0)
}
