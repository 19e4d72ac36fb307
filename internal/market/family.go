package market

import (
	"time"

	"github.com/pricetide/pricetide/internal/domain"
)

// Family name constants
const (
	FamilyCrypto  = "crypto"
	FamilyStock   = "stock"
	FamilyOnchain = "onchain"
	FamilyCustom  = "custom"
)

// TiePolicy determines what happens when the close value equals the open value
type TiePolicy string

const (
	// TieRefund voids the round: every pending stake is refunded in full
	TieRefund TiePolicy = "refund"

	// TieSideB resolves an exact tie in favor of side B. Used by families
	// whose winning condition for side A is "strictly higher".
	TieSideB TiePolicy = "side_b"
)

// Family describes one market family. All families share the same round
// lifecycle and settlement engine; the descriptor carries the parameters
// that differ: duration, side labels, tie handling and creator fee.
type Family struct {
	Name string

	// RoundDuration is the fixed window for scheduler-opened rounds.
	// User-created families use AllowedDurations instead.
	RoundDuration    time.Duration
	AllowedDurations []int // minutes; empty unless UserCreated

	SideA domain.Side // wins when close > open
	SideB domain.Side // wins when close < open

	TiePolicy TiePolicy

	// CreatorFeeBps is the share of the losing pool credited to the round
	// creator at settlement, in basis points. Zero for built-in families.
	CreatorFeeBps int

	UserCreated bool
}

// ValidSide reports whether s is one of the family's two side labels
func (f Family) ValidSide(s domain.Side) bool {
	return s == f.SideA || s == f.SideB
}

// ValidDuration reports whether a user-requested duration is allowed
func (f Family) ValidDuration(minutes int) bool {
	for _, d := range f.AllowedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// Resolution is the outcome of comparing a round's close value to its open
// value under this family's rules
type Resolution struct {
	Outcome domain.Outcome
	Winner  domain.Side // empty when Refund is set
	Refund  bool
}

// Resolve applies the outcome rule: close above open wins for side A, close
// below open wins for side B, and an exact tie follows the family's tie
// policy.
func (f Family) Resolve(open, close float64) Resolution {
	switch {
	case close > open:
		return Resolution{Outcome: domain.Outcome(f.SideA), Winner: f.SideA}
	case close < open:
		return Resolution{Outcome: domain.Outcome(f.SideB), Winner: f.SideB}
	case f.TiePolicy == TieRefund:
		return Resolution{Outcome: domain.OutcomeSame, Refund: true}
	default:
		return Resolution{Outcome: domain.Outcome(f.SideB), Winner: f.SideB}
	}
}

// builtinFamilies returns the four family descriptors. Durations and fee
// parameters mirror the production configuration.
func builtinFamilies() map[string]Family {
	return map[string]Family{
		FamilyCrypto: {
			Name:          FamilyCrypto,
			RoundDuration: 5 * time.Minute,
			SideA:         domain.SideUp,
			SideB:         domain.SideDown,
			TiePolicy:     TieRefund,
		},
		FamilyStock: {
			Name:          FamilyStock,
			RoundDuration: 5 * time.Minute,
			SideA:         domain.SideUp,
			SideB:         domain.SideDown,
			TiePolicy:     TieRefund,
		},
		FamilyOnchain: {
			Name:          FamilyOnchain,
			RoundDuration: 24 * time.Hour,
			SideA:         domain.SideHigher,
			SideB:         domain.SideLower,
			TiePolicy:     TieSideB,
		},
		FamilyCustom: {
			Name:             FamilyCustom,
			AllowedDurations: []int{15, 30, 60},
			SideA:            domain.SideHigher,
			SideB:            domain.SideLower,
			TiePolicy:        TieSideB,
			CreatorFeeBps:    500,
			UserCreated:      true,
		},
	}
}
