package settle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/repository"
)

// MockRepository implements repository.Settlement
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

func (m *MockRepository) ListExpiredUnresolved(ctx context.Context, now time.Time, limit int) ([]domain.Round, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Round), args.Error(1)
}

func (m *MockRepository) BeginSettlementTx(ctx context.Context) (repository.SettlementTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.SettlementTx), args.Error(1)
}

// MockPriceSource implements PriceSource
type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) Price(ctx context.Context, family, marketKey string) (float64, error) {
	args := m.Called(ctx, family, marketKey)
	return args.Get(0).(float64), args.Error(1)
}

// fakeSettlementTx records settlement writes in memory so tests can assert
// on the complete ledger effect of one resolution
type fakeSettlementTx struct {
	claimResult int64

	claimedOutcome    *domain.Outcome
	claimedCloseValue float64
	pendingStakes     []domain.Stake
	settled           map[uuid.UUID]domain.StakeSettlement
	credits           map[uuid.UUID]int64
	creatorEarnings   int64
	committed         bool
	rolledBack        bool
}

func newFakeSettlementTx(claimResult int64, pending []domain.Stake) *fakeSettlementTx {
	return &fakeSettlementTx{
		claimResult:   claimResult,
		pendingStakes: pending,
		settled:       make(map[uuid.UUID]domain.StakeSettlement),
		credits:       make(map[uuid.UUID]int64),
	}
}

func (t *fakeSettlementTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeSettlementTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeSettlementTx) ClaimRoundResolution(ctx context.Context, roundID uuid.UUID, closeValue float64, outcome domain.Outcome) (int64, error) {
	t.claimedOutcome = &outcome
	t.claimedCloseValue = closeValue
	return t.claimResult, nil
}

func (t *fakeSettlementTx) ListPendingStakes(ctx context.Context, roundID uuid.UUID) ([]domain.Stake, error) {
	return t.pendingStakes, nil
}

func (t *fakeSettlementTx) SettleStake(ctx context.Context, stakeID uuid.UUID, status domain.StakeStatus, profit int64) error {
	t.settled[stakeID] = domain.StakeSettlement{StakeID: stakeID, Status: status, Profit: profit}
	return nil
}

func (t *fakeSettlementTx) CreditBalance(ctx context.Context, userID uuid.UUID, amount int64) error {
	t.credits[userID] += amount
	return nil
}

func (t *fakeSettlementTx) RecordCreatorEarnings(ctx context.Context, roundID uuid.UUID, fee int64) error {
	t.creatorEarnings += fee
	return nil
}
