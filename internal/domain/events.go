package domain

// Event type identifiers published on the event bus and bridged to SSE
const (
	EventTypeRoundOpened   = "round_opened"
	EventTypeRoundResolved = "round_resolved"
	EventTypeStakePlaced   = "stake_placed"
)

// RoundOpenedPayloadV1 is the typed payload for round-opened events
type RoundOpenedPayloadV1 struct {
	RoundID   string  `json:"round_id"`
	Family    string  `json:"family"`
	MarketKey string  `json:"market_key"`
	OpenValue float64 `json:"open_value"`
	CloseTime int64   `json:"close_time"`
	Timestamp int64   `json:"timestamp"`
}

// RoundResolvedPayloadV1 is the typed payload for round-resolved events
type RoundResolvedPayloadV1 struct {
	RoundID    string  `json:"round_id"`
	Family     string  `json:"family"`
	MarketKey  string  `json:"market_key"`
	Outcome    string  `json:"outcome"`
	CloseValue float64 `json:"close_value"`
	TotalPool  int64   `json:"total_pool"`
	Timestamp  int64   `json:"timestamp"`
}

// StakePlacedPayloadV1 is the typed payload for stake-placed events
type StakePlacedPayloadV1 struct {
	StakeID   string `json:"stake_id"`
	RoundID   string `json:"round_id"`
	Family    string `json:"family"`
	MarketKey string `json:"market_key"`
	Side      string `json:"side"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}
