package stake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/event"
	"github.com/pricetide/pricetide/internal/market"
)

func openRound(family string) *domain.Round {
	open := 100.0
	return &domain.Round{
		ID:        uuid.New(),
		Family:    family,
		MarketKey: "BTC",
		OpenTime:  time.Now().Add(-time.Minute),
		CloseTime: time.Now().Add(4 * time.Minute),
		OpenValue: &open,
	}
}

func newTestService(t *testing.T, repo *MockRepository) (Service, *event.MemoryBus) {
	t.Helper()

	catalog, err := market.LoadCatalog("")
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	return NewService(repo, catalog, bus), bus
}

func TestPlaceStake(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockPlacementTx)
	round := openRound(market.FamilyCrypto)
	userID := uuid.New()

	repo.On("GetRound", mock.Anything, round.ID).Return(round, nil)
	repo.On("BeginPlacementTx", mock.Anything).Return(tx, nil)
	tx.On("DebitBalance", mock.Anything, userID, int64(50)).Return(nil)
	tx.On("InsertStake", mock.Anything, mock.AnythingOfType("*domain.Stake")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Stake).ID = uuid.New()
	}).Return(nil)
	tx.On("AddToPool", mock.Anything, round.ID, int64(50)).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(errors.New(domain.ErrMsgTxClosed))

	svc, bus := newTestService(t, repo)

	var published []event.Event
	bus.Subscribe(event.StakePlaced, func(_ context.Context, evt event.Event) error {
		published = append(published, evt)
		return nil
	})

	stake, err := svc.PlaceStake(context.Background(), round.ID, userID, domain.SideUp, 50)
	require.NoError(t, err)

	assert.Equal(t, round.ID, stake.RoundID)
	assert.Equal(t, domain.SideUp, stake.Side)
	assert.Equal(t, int64(50), stake.Amount)
	assert.Len(t, published, 1)
	tx.AssertExpectations(t)
}

func TestPlaceStake_InvalidAmount(t *testing.T) {
	svc, _ := newTestService(t, new(MockRepository))

	for _, amount := range []int64{0, -10, MaxStakeAmount + 1} {
		_, err := svc.PlaceStake(context.Background(), uuid.New(), uuid.New(), domain.SideUp, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %d", amount)
	}
}

func TestPlaceStake_RoundClosed(t *testing.T) {
	repo := new(MockRepository)
	round := openRound(market.FamilyCrypto)
	round.CloseTime = time.Now().Add(-time.Second)

	repo.On("GetRound", mock.Anything, round.ID).Return(round, nil)

	svc, _ := newTestService(t, repo)

	_, err := svc.PlaceStake(context.Background(), round.ID, uuid.New(), domain.SideUp, 10)
	assert.ErrorIs(t, err, domain.ErrRoundClosed)
	repo.AssertNotCalled(t, "BeginPlacementTx")
}

func TestPlaceStake_RoundResolved(t *testing.T) {
	repo := new(MockRepository)
	round := openRound(market.FamilyCrypto)
	outcome := domain.Outcome(domain.SideUp)
	round.Outcome = &outcome

	repo.On("GetRound", mock.Anything, round.ID).Return(round, nil)

	svc, _ := newTestService(t, repo)

	_, err := svc.PlaceStake(context.Background(), round.ID, uuid.New(), domain.SideUp, 10)
	assert.ErrorIs(t, err, domain.ErrRoundClosed)
}

func TestPlaceStake_InvalidSideForFamily(t *testing.T) {
	repo := new(MockRepository)
	round := openRound(market.FamilyCrypto)

	repo.On("GetRound", mock.Anything, round.ID).Return(round, nil)

	svc, _ := newTestService(t, repo)

	// "higher" belongs to the onchain/custom label set, not crypto
	_, err := svc.PlaceStake(context.Background(), round.ID, uuid.New(), domain.SideHigher, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidSide)
}

func TestPlaceStake_InsufficientBalance(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockPlacementTx)
	round := openRound(market.FamilyCrypto)
	userID := uuid.New()

	repo.On("GetRound", mock.Anything, round.ID).Return(round, nil)
	repo.On("BeginPlacementTx", mock.Anything).Return(tx, nil)
	tx.On("DebitBalance", mock.Anything, userID, int64(500)).Return(domain.ErrInsufficientBalance)
	tx.On("Rollback", mock.Anything).Return(nil)

	svc, _ := newTestService(t, repo)

	_, err := svc.PlaceStake(context.Background(), round.ID, userID, domain.SideDown, 500)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// Nothing committed: no stake row, no pool bump
	tx.AssertNotCalled(t, "InsertStake")
	tx.AssertNotCalled(t, "AddToPool")
	tx.AssertNotCalled(t, "Commit")
}

func TestPlaceStake_RoundResolvesMidTransaction(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockPlacementTx)
	round := openRound(market.FamilyCrypto)
	userID := uuid.New()

	// The pre-transaction read sees an open round; by the time the pool
	// bump runs, a concurrent settlement has claimed it.
	repo.On("GetRound", mock.Anything, round.ID).Return(round, nil)
	repo.On("BeginPlacementTx", mock.Anything).Return(tx, nil)
	tx.On("DebitBalance", mock.Anything, userID, int64(25)).Return(nil)
	tx.On("InsertStake", mock.Anything, mock.AnythingOfType("*domain.Stake")).Return(nil)
	tx.On("AddToPool", mock.Anything, round.ID, int64(25)).Return(domain.ErrRoundClosed)
	tx.On("Rollback", mock.Anything).Return(nil)

	svc, bus := newTestService(t, repo)

	var published []event.Event
	bus.Subscribe(event.StakePlaced, func(_ context.Context, evt event.Event) error {
		published = append(published, evt)
		return nil
	})

	_, err := svc.PlaceStake(context.Background(), round.ID, userID, domain.SideUp, 25)
	assert.ErrorIs(t, err, domain.ErrRoundClosed)

	// The whole placement rolls back: no stake survives, the debit is
	// undone with it, and nothing is announced
	tx.AssertNotCalled(t, "Commit")
	tx.AssertCalled(t, "Rollback", mock.Anything)
	assert.Empty(t, published)
}

func TestPlaceStake_UnknownUser(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockPlacementTx)
	round := openRound(market.FamilyCrypto)
	userID := uuid.New()

	repo.On("GetRound", mock.Anything, round.ID).Return(round, nil)
	repo.On("BeginPlacementTx", mock.Anything).Return(tx, nil)
	tx.On("DebitBalance", mock.Anything, userID, int64(10)).Return(domain.ErrUserNotFound)
	tx.On("Rollback", mock.Anything).Return(nil)

	svc, _ := newTestService(t, repo)

	_, err := svc.PlaceStake(context.Background(), round.ID, userID, domain.SideUp, 10)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	tx.AssertNotCalled(t, "InsertStake")
	tx.AssertNotCalled(t, "Commit")
}

func TestListLiveStakes_DefaultsLimit(t *testing.T) {
	repo := new(MockRepository)
	roundID := uuid.New()
	repo.On("ListStakesByRound", mock.Anything, roundID, DefaultLiveStakesLimit).Return([]domain.Stake{}, nil)

	svc, _ := newTestService(t, repo)

	_, err := svc.ListLiveStakes(context.Background(), roundID, 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
