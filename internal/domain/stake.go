package domain

import (
	"time"

	"github.com/google/uuid"
)

// StakeStatus tracks a stake through settlement
type StakeStatus string

const (
	StakeStatusPending  StakeStatus = "pending"
	StakeStatusWon      StakeStatus = "won"
	StakeStatusLost     StakeStatus = "lost"
	StakeStatusRefunded StakeStatus = "refunded"
)

// Terminal reports whether the status can never change again
func (s StakeStatus) Terminal() bool {
	return s != StakeStatusPending
}

// Stake is a participant's wager on one side of a round. The amount is
// debited from the participant's credits at placement time and is immutable
// afterwards; status and profit are written exactly once, by settlement.
type Stake struct {
	ID      uuid.UUID   `json:"id"`
	RoundID uuid.UUID   `json:"round_id"`
	UserID  uuid.UUID   `json:"user_id"`
	Side    Side        `json:"side"`
	Amount  int64       `json:"amount"`
	Status  StakeStatus `json:"status"`

	// Profit is the signed realized result: +Amount on a win, -Amount on a
	// loss, 0 while pending or refunded
	Profit int64 `json:"profit"`

	CreatedAt time.Time `json:"created_at"`

	// Username is populated for display on live-bet feeds, not persisted on
	// the stake row
	Username string `json:"username,omitempty"`
}

// StakeSettlement is the per-stake result applied during round resolution
type StakeSettlement struct {
	StakeID uuid.UUID
	UserID  uuid.UUID
	Status  StakeStatus
	Profit  int64

	// Credit is the amount returned to the participant's balance: 2x the
	// wager on a win, 1x on a refund, 0 on a loss
	Credit int64
}
