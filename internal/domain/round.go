package domain

import (
	"time"

	"github.com/google/uuid"
)

// Side identifies the direction a stake backs. The label set depends on the
// market family ("up"/"down" for fixed-duration markets, "higher"/"lower"
// for metric and token markets).
type Side string

// Canonical side labels used by the built-in market families
const (
	SideUp     Side = "up"
	SideDown   Side = "down"
	SideHigher Side = "higher"
	SideLower  Side = "lower"
)

// Outcome is the terminal result of a round. It carries the winning side's
// label, or OutcomeSame when the close value equals the open value in a
// family that refunds ties.
type Outcome string

// OutcomeSame marks a tied round in families with a refund tie policy
const OutcomeSame Outcome = "same"

// Round is a time-boxed prediction market instance for one market key.
// A round is created open (outcome nil) and transitions to resolved exactly
// once; resolved rounds are never mutated again.
type Round struct {
	ID        uuid.UUID `json:"id"`
	Family    string    `json:"family"`
	MarketKey string    `json:"market_key"`
	OpenTime  time.Time `json:"open_time"`
	CloseTime time.Time `json:"close_time"`

	// OpenValue is the oracle sample taken at round creation. CloseValue and
	// Outcome are nil until the settlement engine resolves the round; they are
	// always set together.
	OpenValue  *float64 `json:"open_value"`
	CloseValue *float64 `json:"close_value,omitempty"`
	Outcome    *Outcome `json:"outcome,omitempty"`

	// Creator metadata, populated for the user-created token family only
	CreatorID       *uuid.UUID `json:"creator_id,omitempty"`
	TokenName       string     `json:"token_name,omitempty"`
	TokenSymbol     string     `json:"token_symbol,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	CreatorEarnings int64      `json:"creator_earnings,omitempty"`

	// TotalPool is the sum of all wagers placed on this round
	TotalPool int64 `json:"total_pool"`

	CreatedAt time.Time `json:"created_at"`
}

// Resolved reports whether the round has reached its terminal state
func (r *Round) Resolved() bool {
	return r.Outcome != nil
}

// Closed reports whether the round's betting window has passed
func (r *Round) Closed(now time.Time) bool {
	return !now.Before(r.CloseTime)
}

// Eligible reports whether the round can be picked up by a resolution sweep:
// close time passed and not yet resolved. This is a query predicate, not a
// persisted state.
func (r *Round) Eligible(now time.Time) bool {
	return r.Closed(now) && !r.Resolved()
}
