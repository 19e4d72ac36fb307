package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/repository"
)

// StakeRepository implements the stake repository for PostgreSQL
type StakeRepository struct {
	db *pgxpool.Pool
}

// NewStakeRepository creates a new StakeRepository
func NewStakeRepository(db *pgxpool.Pool) *StakeRepository {
	return &StakeRepository{db: db}
}

// GetRound retrieves a round by ID
func (r *StakeRepository) GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	return getRound(ctx, r.db, id)
}

// GetStake retrieves a stake by ID
func (r *StakeRepository) GetStake(ctx context.Context, id uuid.UUID) (*domain.Stake, error) {
	var s domain.Stake
	err := r.db.QueryRow(ctx, `
		SELECT s.stake_id, s.round_id, s.user_id, s.side, s.amount, s.status,
		       s.profit, s.created_at, u.username
		FROM stakes s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.stake_id = $1`,
		id,
	).Scan(&s.ID, &s.RoundID, &s.UserID, &s.Side, &s.Amount, &s.Status, &s.Profit, &s.CreatedAt, &s.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stake: %w", err)
	}
	return &s, nil
}

// ListStakesByRound returns the round's stakes newest first, with usernames
// populated for the live feed
func (r *StakeRepository) ListStakesByRound(ctx context.Context, roundID uuid.UUID, limit int) ([]domain.Stake, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.stake_id, s.round_id, s.user_id, s.side, s.amount, s.status,
		       s.profit, s.created_at, u.username
		FROM stakes s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.round_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2`,
		roundID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes by round: %w", err)
	}
	return collectStakes(rows)
}

// ListStakesByUser returns the participant's stakes newest first
func (r *StakeRepository) ListStakesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Stake, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.stake_id, s.round_id, s.user_id, s.side, s.amount, s.status,
		       s.profit, s.created_at, u.username
		FROM stakes s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes by user: %w", err)
	}
	return collectStakes(rows)
}

func collectStakes(rows pgx.Rows) ([]domain.Stake, error) {
	defer rows.Close()

	var stakes []domain.Stake
	for rows.Next() {
		var s domain.Stake
		if err := rows.Scan(&s.ID, &s.RoundID, &s.UserID, &s.Side, &s.Amount, &s.Status, &s.Profit, &s.CreatedAt, &s.Username); err != nil {
			return nil, fmt.Errorf("failed to scan stake: %w", err)
		}
		stakes = append(stakes, s)
	}
	return stakes, rows.Err()
}

// PlacementTx implements repository.PlacementTx
type PlacementTx struct {
	tx pgx.Tx
}

// BeginPlacementTx starts a new stake placement transaction
func (r *StakeRepository) BeginPlacementTx(ctx context.Context) (repository.PlacementTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &PlacementTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *PlacementTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *PlacementTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// DebitBalance atomically decrements a participant's credits. The
// credits >= amount guard makes overdraft impossible under concurrency.
// Zero rows affected means either the balance was insufficient or the
// participant does not exist; the follow-up lookup tells the two apart.
func (t *PlacementTx) DebitBalance(ctx context.Context, userID uuid.UUID, amount int64) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE users
		SET credits = credits - $2, updated_at = NOW()
		WHERE user_id = $1 AND credits >= $2`,
		userID, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := t.tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, userID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return domain.ErrUserNotFound
		}
		return domain.ErrInsufficientBalance
	}
	return nil
}

// InsertStake inserts a new pending stake
func (t *PlacementTx) InsertStake(ctx context.Context, stake *domain.Stake) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO stakes (round_id, user_id, side, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING stake_id, status, created_at`,
		stake.RoundID, stake.UserID, string(stake.Side), stake.Amount,
	).Scan(&stake.ID, &stake.Status, &stake.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert stake: %w", err)
	}
	return nil
}

// AddToPool bumps the round's running pool total by the wager amount.
// The outcome/close_time predicate is the transactional guard against
// late placement: the pre-check in the service sees a snapshot, but this
// UPDATE blocks behind a concurrent settlement's row lock and re-evaluates
// after it commits. Zero rows affected means the round closed or resolved
// while this transaction was in flight, so the whole placement rolls back
// instead of stranding a pending stake on a settled round.
func (t *PlacementTx) AddToPool(ctx context.Context, roundID uuid.UUID, amount int64) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE rounds
		SET total_pool = total_pool + $2
		WHERE round_id = $1 AND outcome IS NULL AND close_time > NOW()`,
		roundID, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to add to pool: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoundClosed
	}
	return nil
}
