package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricetide/pricetide/internal/domain"
)

// StatsRepository implements the stats repository for PostgreSQL. All queries
// are read-only aggregates over settled stakes.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

const leaderboardSelect = `
	SELECT u.user_id, u.username, u.credits,
	       COUNT(s.stake_id) AS total_bets,
	       COUNT(s.stake_id) FILTER (WHERE s.status = 'won') AS wins,
	       COALESCE(SUM(s.profit) FILTER (WHERE s.profit > 0), 0) AS profit,
	       COALESCE(-SUM(s.profit) FILTER (WHERE s.profit < 0), 0) AS loss
	FROM users u
	JOIN stakes s ON s.user_id = u.user_id
	WHERE s.status IN ('won', 'lost')
	GROUP BY u.user_id, u.username, u.credits`

// LeaderboardByWinRate ranks participants by win rate over settled bets.
// Participants below minBets settled bets are excluded so a single lucky win
// cannot top the board.
func (r *StatsRepository) LeaderboardByWinRate(ctx context.Context, minBets, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, leaderboardSelect+`
		HAVING COUNT(s.stake_id) >= $1
		ORDER BY COUNT(s.stake_id) FILTER (WHERE s.status = 'won')::float / COUNT(s.stake_id) DESC,
		         COUNT(s.stake_id) DESC
		LIMIT $2`,
		minBets, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query win rate leaderboard: %w", err)
	}
	return collectLeaderboard(rows)
}

// LeaderboardByBets ranks participants by settled bet count
func (r *StatsRepository) LeaderboardByBets(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, leaderboardSelect+`
		ORDER BY COUNT(s.stake_id) DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bet count leaderboard: %w", err)
	}
	return collectLeaderboard(rows)
}

// LeaderboardByCredits ranks participants by current balance
func (r *StatsRepository) LeaderboardByCredits(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, leaderboardSelect+`
		ORDER BY u.credits DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query credits leaderboard: %w", err)
	}
	return collectLeaderboard(rows)
}

func collectLeaderboard(rows pgx.Rows) ([]domain.LeaderboardEntry, error) {
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Credits, &e.TotalBets, &e.Wins, &e.Profit, &e.Loss); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		if e.TotalBets > 0 {
			e.WinRate = float64(e.Wins) / float64(e.TotalBets)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentWinners returns the most recently settled winning stakes
func (r *StatsRepository) RecentWinners(ctx context.Context, limit int) ([]domain.Winner, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.username, r.family, r.market_key, COALESCE(r.token_symbol, ''),
		       s.amount, s.profit, r.close_time
		FROM stakes s
		JOIN users u ON u.user_id = s.user_id
		JOIN rounds r ON r.round_id = s.round_id
		WHERE s.status = 'won'
		ORDER BY r.close_time DESC, s.created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent winners: %w", err)
	}
	defer rows.Close()

	var winners []domain.Winner
	for rows.Next() {
		var w domain.Winner
		if err := rows.Scan(&w.Username, &w.Family, &w.MarketKey, &w.TokenSymbol, &w.Amount, &w.Profit, &w.SettledAt); err != nil {
			return nil, fmt.Errorf("failed to scan winner: %w", err)
		}
		winners = append(winners, w)
	}
	return winners, rows.Err()
}
