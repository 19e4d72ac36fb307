package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/domain"
)

// Round defines the interface for data access required by the round manager
type Round interface {
	// CreateRound inserts a new open round. The store enforces at most one
	// unresolved round per (family, market key); a concurrent creation for
	// the same key surfaces domain.ErrRoundAlreadyOpen.
	CreateRound(ctx context.Context, round *domain.Round) error

	GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error)

	// GetOpenRound returns the unresolved round for the key whose time
	// window contains now, or nil when there is none
	GetOpenRound(ctx context.Context, family, marketKey string, now time.Time) (*domain.Round, error)

	ListRecentRounds(ctx context.Context, family, marketKey string, limit int) ([]domain.Round, error)
	ListActiveCustomRounds(ctx context.Context, limit int) ([]domain.Round, error)
}

// Settlement defines the interface for data access required by the
// settlement engine and the resolution sweep
type Settlement interface {
	GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error)

	// ListExpiredUnresolved returns rounds whose close time has passed and
	// whose outcome is still null, oldest first, bounded by limit
	ListExpiredUnresolved(ctx context.Context, now time.Time, limit int) ([]domain.Round, error)

	BeginSettlementTx(ctx context.Context) (SettlementTx, error)
}

// SettlementTx wraps one round's settlement in a single atomic transaction:
// the resolution claim, every stake transition and every balance credit
// commit together or not at all.
type SettlementTx interface {
	Tx

	// ClaimRoundResolution conditionally marks the round resolved. It
	// returns the number of rows updated: zero means another resolver
	// already claimed the round and the caller must abort without touching
	// any stake.
	ClaimRoundResolution(ctx context.Context, roundID uuid.UUID, closeValue float64, outcome domain.Outcome) (int64, error)

	// ListPendingStakes loads and locks the round's pending stakes
	ListPendingStakes(ctx context.Context, roundID uuid.UUID) ([]domain.Stake, error)

	// SettleStake transitions one pending stake to a terminal status
	SettleStake(ctx context.Context, stakeID uuid.UUID, status domain.StakeStatus, profit int64) error

	// CreditBalance atomically increments a participant's credits
	CreditBalance(ctx context.Context, userID uuid.UUID, amount int64) error

	// RecordCreatorEarnings accumulates the creator fee on the round row
	RecordCreatorEarnings(ctx context.Context, roundID uuid.UUID, fee int64) error
}
