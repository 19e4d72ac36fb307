package round

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/oracle"
)

// MockRepository implements repository.Round
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateRound(ctx context.Context, round *domain.Round) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockRepository) GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRepository) GetOpenRound(ctx context.Context, family, marketKey string, now time.Time) (*domain.Round, error) {
	args := m.Called(ctx, family, marketKey, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockRepository) ListRecentRounds(ctx context.Context, family, marketKey string, limit int) ([]domain.Round, error) {
	args := m.Called(ctx, family, marketKey, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Round), args.Error(1)
}

func (m *MockRepository) ListActiveCustomRounds(ctx context.Context, limit int) ([]domain.Round, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Round), args.Error(1)
}

// MockPriceSource implements PriceSource
type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) Price(ctx context.Context, family, marketKey string) (float64, error) {
	args := m.Called(ctx, family, marketKey)
	return args.Get(0).(float64), args.Error(1)
}

// MockTokenSource implements oracle.TokenSource
type MockTokenSource struct {
	mock.Mock
}

func (m *MockTokenSource) Price(ctx context.Context, key string) (float64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTokenSource) Token(ctx context.Context, address string) (oracle.TokenInfo, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(oracle.TokenInfo), args.Error(1)
}
