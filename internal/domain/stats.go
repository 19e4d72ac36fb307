package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is one participant's aggregate betting record
type LeaderboardEntry struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	TotalBets int       `json:"total_bets"`
	Wins      int       `json:"wins"`
	Profit    int64     `json:"profit"`
	Loss      int64     `json:"loss"`
	WinRate   float64   `json:"win_rate"`
	Credits   int64     `json:"credits"`
}

// Leaderboard groups the ranked views served by the stats read side
type Leaderboard struct {
	HighestWinRate []LeaderboardEntry `json:"highest_win_rate"`
	MostBets       []LeaderboardEntry `json:"most_bets"`
	MostCredits    []LeaderboardEntry `json:"most_credits"`
}

// Winner is a recently settled winning stake shown in the winners feed
type Winner struct {
	Username    string    `json:"username"`
	Family      string    `json:"family"`
	MarketKey   string    `json:"market_key"`
	TokenSymbol string    `json:"token_symbol,omitempty"`
	Amount      int64     `json:"amount"`
	Profit      int64     `json:"profit"`
	SettledAt   time.Time `json:"settled_at"`
}
