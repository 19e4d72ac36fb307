package stake

// MaxStakeAmount is the largest single wager accepted
const MaxStakeAmount int64 = 100000

// Listing limits
const (
	// DefaultLiveStakesLimit is the live-bet feed page size
	DefaultLiveStakesLimit = 50

	// MaxListLimit caps stake listing page sizes
	MaxListLimit = 200
)

// Log message constants
const (
	LogMsgStakePlaced     = "Stake placed"
	LogMsgPlacementFailed = "Stake placement failed"
)

// Error context constants
const (
	ErrContextFailedToGetRound = "failed to get round"
	ErrContextFailedToBeginTx  = "failed to begin placement transaction"
	ErrContextFailedToDebit    = "failed to debit balance"
	ErrContextFailedToInsert   = "failed to insert stake"
	ErrContextFailedToBumpPool = "failed to update round pool"
	ErrContextFailedToCommit   = "failed to commit placement"
)
