package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound  = "user not found"
	ErrMsgUsernameTaken = "username already taken"

	// Balance errors
	ErrMsgInsufficientBalance = "insufficient balance"

	// Round errors
	ErrMsgRoundNotFound        = "round not found"
	ErrMsgRoundClosed          = "round is closed for betting"
	ErrMsgRoundAlreadyResolved = "round already resolved"
	ErrMsgRoundAlreadyOpen     = "an open round already exists for this market"

	// Stake errors
	ErrMsgInvalidAmount = "invalid stake amount"
	ErrMsgInvalidSide   = "invalid side for this market"

	// Market errors
	ErrMsgMarketNotFound  = "unknown market"
	ErrMsgInvalidDuration = "invalid round duration"

	// Oracle errors
	ErrMsgOracleUnavailable = "price feed unavailable"

	// Transaction errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors.
// These are used consistently across all layers; wrap with
// fmt.Errorf("%w: detail", domain.ErrXxx) for additional context.
var (
	// User errors
	ErrUserNotFound  = errors.New(ErrMsgUserNotFound)
	ErrUsernameTaken = errors.New(ErrMsgUsernameTaken)

	// Balance errors
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)

	// Round errors
	ErrRoundNotFound        = errors.New(ErrMsgRoundNotFound)
	ErrRoundClosed          = errors.New(ErrMsgRoundClosed)
	ErrRoundAlreadyResolved = errors.New(ErrMsgRoundAlreadyResolved)
	ErrRoundAlreadyOpen     = errors.New(ErrMsgRoundAlreadyOpen)

	// Stake errors
	ErrInvalidAmount = errors.New(ErrMsgInvalidAmount)
	ErrInvalidSide   = errors.New(ErrMsgInvalidSide)

	// Market errors
	ErrMarketNotFound  = errors.New(ErrMsgMarketNotFound)
	ErrInvalidDuration = errors.New(ErrMsgInvalidDuration)

	// Oracle errors. Unavailability is a normal retryable outcome, not a
	// failure: round creation declines and settlement no-ops until a later
	// sample succeeds
	ErrOracleUnavailable = errors.New(ErrMsgOracleUnavailable)
)
