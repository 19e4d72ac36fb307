// Package stake implements wager placement and stake queries.
package stake

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/event"
	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/market"
	"github.com/pricetide/pricetide/internal/repository"
)

// Service defines the interface for stake operations
type Service interface {
	// PlaceStake debits the wager, records the stake and bumps the round
	// pool in a single transaction. The debit is conditional: a balance
	// below the wager fails the whole placement with
	// domain.ErrInsufficientBalance and no partial state.
	PlaceStake(ctx context.Context, roundID, userID uuid.UUID, side domain.Side, amount int64) (*domain.Stake, error)

	// ListLiveStakes returns a round's recent stakes for the live-bet feed
	ListLiveStakes(ctx context.Context, roundID uuid.UUID, limit int) ([]domain.Stake, error)

	// ListUserStakes returns a participant's stake history
	ListUserStakes(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Stake, error)
}

type service struct {
	repo     repository.Stake
	catalog  *market.Catalog
	eventBus event.Bus
}

// NewService creates a new stake service
func NewService(repo repository.Stake, catalog *market.Catalog, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		catalog:  catalog,
		eventBus: eventBus,
	}
}

func (s *service) PlaceStake(ctx context.Context, roundID, userID uuid.UUID, side domain.Side, amount int64) (*domain.Stake, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 || amount > MaxStakeAmount {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}

	round, err := s.repo.GetRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetRound, err)
	}
	if round.Resolved() || round.Closed(time.Now()) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoundClosed, roundID)
	}

	fam, err := s.catalog.Family(round.Family)
	if err != nil {
		return nil, err
	}
	if !fam.ValidSide(side) {
		return nil, fmt.Errorf("%w: %q is not %q or %q", domain.ErrInvalidSide, side, fam.SideA, fam.SideB)
	}

	stake := &domain.Stake{
		RoundID: roundID,
		UserID:  userID,
		Side:    side,
		Amount:  amount,
	}

	tx, err := s.repo.BeginPlacementTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.DebitBalance(ctx, userID, amount); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
	}
	if err := tx.InsertStake(ctx, stake); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToInsert, err)
	}
	if err := tx.AddToPool(ctx, roundID, amount); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBumpPool, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommit, err)
	}

	log.Info(LogMsgStakePlaced,
		"stake_id", stake.ID,
		"round_id", roundID,
		"user_id", userID,
		"side", side,
		"amount", amount)

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, event.NewStakePlacedEvent(stake.ID, round, side, amount)); err != nil {
			log.Warn("failed to publish stake placed event", "stake_id", stake.ID, "error", err)
		}
	}

	return stake, nil
}

func (s *service) ListLiveStakes(ctx context.Context, roundID uuid.UUID, limit int) ([]domain.Stake, error) {
	if limit <= 0 {
		limit = DefaultLiveStakesLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.ListStakesByRound(ctx, roundID, limit)
}

func (s *service) ListUserStakes(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Stake, error) {
	if limit <= 0 {
		limit = DefaultLiveStakesLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.ListStakesByUser(ctx, userID, limit)
}
