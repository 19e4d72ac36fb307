package round

// Listing limits
const (
	// DefaultHistoryLimit is the round history page size when none is given
	DefaultHistoryLimit = 20

	// MaxHistoryLimit caps round history page sizes
	MaxHistoryLimit = 100

	// MaxActiveCustomRounds caps the active custom round listing
	MaxActiveCustomRounds = 50
)

// Log message constants
const (
	LogMsgRoundOpened        = "Round opened"
	LogMsgCustomRoundCreated = "Custom round created"
	LogMsgOpenRaceLost       = "Lost round creation race, returning existing round"
	LogMsgOracleDeclined     = "Oracle unavailable, declining to open round"
)

// Error context constants
const (
	ErrContextFailedToSamplePrice  = "failed to sample open price"
	ErrContextFailedToCreateRound  = "failed to create round"
	ErrContextFailedToLookupToken  = "failed to look up token"
	ErrContextFailedToGetOpenRound = "failed to get open round"
)
