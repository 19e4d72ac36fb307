package settle

// Payout arithmetic
const (
	// WinCreditMultiplier is the credit returned on a winning stake: the
	// original wager plus an equal profit
	WinCreditMultiplier = 2

	// BpsDenominator converts basis points to a fraction
	BpsDenominator = 10000
)

// Log message constants
const (
	LogMsgRoundResolved     = "Round resolved"
	LogMsgAlreadyResolved   = "Round already resolved, skipping"
	LogMsgNotYetClosed      = "Round not yet closed, skipping"
	LogMsgOracleUnavailable = "Oracle unavailable, deferring resolution"
	LogMsgClaimLost         = "Resolution claim lost to concurrent resolver"
	LogMsgCreatorFeePaid    = "Creator fee credited"
)

// Error context constants
const (
	ErrContextFailedToGetRound   = "failed to get round"
	ErrContextFailedToBeginTx    = "failed to begin settlement transaction"
	ErrContextFailedToClaim      = "failed to claim round resolution"
	ErrContextFailedToListStakes = "failed to list pending stakes"
	ErrContextFailedToSettle     = "failed to settle stake"
	ErrContextFailedToCredit     = "failed to credit balance"
	ErrContextFailedToCommit     = "failed to commit settlement"
)
