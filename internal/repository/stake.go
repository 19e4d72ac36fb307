package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/domain"
)

// Stake defines the interface for data access required by the stake service
type Stake interface {
	GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error)
	GetStake(ctx context.Context, id uuid.UUID) (*domain.Stake, error)

	// ListStakesByRound returns the round's stakes newest first, with
	// usernames populated for display
	ListStakesByRound(ctx context.Context, roundID uuid.UUID, limit int) ([]domain.Stake, error)
	ListStakesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Stake, error)

	BeginPlacementTx(ctx context.Context) (PlacementTx, error)
}

// PlacementTx wraps stake placement in a single atomic transaction: the
// balance debit, the stake insert and the pool bump commit together or not
// at all.
type PlacementTx interface {
	Tx

	// DebitBalance atomically decrements a participant's credits, failing
	// with domain.ErrInsufficientBalance when the balance would go negative
	// and domain.ErrUserNotFound when no such participant exists
	DebitBalance(ctx context.Context, userID uuid.UUID, amount int64) error

	InsertStake(ctx context.Context, stake *domain.Stake) error

	// AddToPool bumps the round's running pool total by the wager amount.
	// It fails with domain.ErrRoundClosed when the round has closed or
	// resolved since the service's pre-check, which aborts the placement.
	AddToPool(ctx context.Context, roundID uuid.UUID, amount int64) error
}
