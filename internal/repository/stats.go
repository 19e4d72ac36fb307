package repository

import (
	"context"

	"github.com/pricetide/pricetide/internal/domain"
)

// Stats defines the read-only interface for reporting queries. The round and
// stake history it reads is append-only: the engine never mutates a row after
// it reaches a terminal state.
type Stats interface {
	LeaderboardByWinRate(ctx context.Context, minBets, limit int) ([]domain.LeaderboardEntry, error)
	LeaderboardByBets(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	LeaderboardByCredits(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	RecentWinners(ctx context.Context, limit int) ([]domain.Winner, error)
}
