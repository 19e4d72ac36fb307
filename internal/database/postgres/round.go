package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricetide/pricetide/internal/domain"
)

// RoundRepository implements the round repository for PostgreSQL
type RoundRepository struct {
	db *pgxpool.Pool
}

// NewRoundRepository creates a new RoundRepository
func NewRoundRepository(db *pgxpool.Pool) *RoundRepository {
	return &RoundRepository{db: db}
}

// CreateRound inserts a new open round. The partial unique index on
// (family, market_key) WHERE outcome IS NULL turns a concurrent insert for
// the same key into domain.ErrRoundAlreadyOpen.
func (r *RoundRepository) CreateRound(ctx context.Context, round *domain.Round) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO rounds (
			family, market_key, open_time, close_time, open_value,
			creator_id, token_name, token_symbol, duration_minutes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING round_id, created_at`,
		round.Family, round.MarketKey, round.OpenTime, round.CloseTime,
		round.OpenValue, round.CreatorID, nullableText(round.TokenName),
		nullableText(round.TokenSymbol), round.DurationMinutes,
	).Scan(&round.ID, &round.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRoundAlreadyOpen
		}
		return fmt.Errorf("failed to insert round: %w", err)
	}
	return nil
}

// GetRound retrieves a round by ID
func (r *RoundRepository) GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	return getRound(ctx, r.db, id)
}

// GetOpenRound returns the unresolved round for the key whose betting window
// contains now, or nil when there is none
func (r *RoundRepository) GetOpenRound(ctx context.Context, family, marketKey string, now time.Time) (*domain.Round, error) {
	round, err := scanRound(r.db.QueryRow(ctx, `
		SELECT `+roundColumns+`
		FROM rounds
		WHERE family = $1 AND market_key = $2 AND outcome IS NULL
		  AND open_time <= $3 AND close_time > $3`,
		family, marketKey, now,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open round: %w", err)
	}
	return round, nil
}

// ListRecentRounds returns the key's most recent rounds, newest first
func (r *RoundRepository) ListRecentRounds(ctx context.Context, family, marketKey string, limit int) ([]domain.Round, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+roundColumns+`
		FROM rounds
		WHERE family = $1 AND market_key = $2
		ORDER BY close_time DESC
		LIMIT $3`,
		family, marketKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent rounds: %w", err)
	}
	return collectRounds(rows)
}

// ListActiveCustomRounds returns unresolved user-created rounds whose betting
// window is still open, soonest to close first
func (r *RoundRepository) ListActiveCustomRounds(ctx context.Context, limit int) ([]domain.Round, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+roundColumns+`
		FROM rounds
		WHERE family = 'custom' AND outcome IS NULL AND close_time > NOW()
		ORDER BY close_time ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active custom rounds: %w", err)
	}
	return collectRounds(rows)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getRound(ctx context.Context, q querier, id uuid.UUID) (*domain.Round, error) {
	round, err := scanRound(q.QueryRow(ctx, `
		SELECT `+roundColumns+`
		FROM rounds
		WHERE round_id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return round, nil
}
