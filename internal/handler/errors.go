package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// User management error messages
	ErrMsgRegisterUserFailed = "Failed to register user"
	ErrMsgGetUserFailed      = "Failed to get user"

	// Round error messages
	ErrMsgGetRoundFailed          = "Failed to get round"
	ErrMsgCreateCustomRoundFailed = "Failed to create custom round"
	ErrMsgListRoundsFailed        = "Failed to list rounds"
	ErrMsgInvalidRoundID          = "Invalid round id"

	// Stake error messages
	ErrMsgPlaceStakeFailed = "Failed to place stake"
	ErrMsgListStakesFailed = "Failed to list stakes"
	ErrMsgInvalidUserID    = "Invalid user id"

	// Stats error messages
	ErrMsgGetLeaderboardFailed   = "Failed to retrieve leaderboard"
	ErrMsgGetRecentWinnersFailed = "Failed to retrieve recent winners"
)

// Success messages for API responses
const (
	MsgUserRegisteredSuccess = "User registered successfully"
	MsgStakePlacedSuccess    = "Stake placed successfully"
	MsgRoundCreatedSuccess   = "Round created successfully"
)
