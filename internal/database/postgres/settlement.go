package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/repository"
)

// SettlementRepository implements the settlement repository for PostgreSQL
type SettlementRepository struct {
	db *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository(db *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// GetRound retrieves a round by ID
func (r *SettlementRepository) GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	return getRound(ctx, r.db, id)
}

// ListExpiredUnresolved returns rounds past their close time with no outcome,
// oldest first, bounded by limit
func (r *SettlementRepository) ListExpiredUnresolved(ctx context.Context, now time.Time, limit int) ([]domain.Round, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+roundColumns+`
		FROM rounds
		WHERE outcome IS NULL AND close_time <= $1
		ORDER BY close_time ASC
		LIMIT $2`,
		now, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired rounds: %w", err)
	}
	return collectRounds(rows)
}

// SettlementTx implements repository.SettlementTx
type SettlementTx struct {
	tx pgx.Tx
}

// BeginSettlementTx starts a new settlement transaction
func (r *SettlementRepository) BeginSettlementTx(ctx context.Context) (repository.SettlementTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &SettlementTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *SettlementTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *SettlementTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// ClaimRoundResolution marks the round resolved only if it is still open.
// The WHERE outcome IS NULL guard makes the claim exclusive: of any number of
// concurrent resolvers, exactly one sees rows affected = 1.
func (t *SettlementTx) ClaimRoundResolution(ctx context.Context, roundID uuid.UUID, closeValue float64, outcome domain.Outcome) (int64, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE rounds
		SET close_value = $2, outcome = $3
		WHERE round_id = $1 AND outcome IS NULL`,
		roundID, closeValue, string(outcome),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to claim round resolution: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListPendingStakes loads and locks the round's pending stakes for the
// duration of the transaction
func (t *SettlementTx) ListPendingStakes(ctx context.Context, roundID uuid.UUID) ([]domain.Stake, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT stake_id, round_id, user_id, side, amount, status, profit, created_at
		FROM stakes
		WHERE round_id = $1 AND status = 'pending'
		ORDER BY created_at ASC
		FOR UPDATE`,
		roundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending stakes: %w", err)
	}
	defer rows.Close()

	var stakes []domain.Stake
	for rows.Next() {
		var s domain.Stake
		if err := rows.Scan(&s.ID, &s.RoundID, &s.UserID, &s.Side, &s.Amount, &s.Status, &s.Profit, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stake: %w", err)
		}
		stakes = append(stakes, s)
	}
	return stakes, rows.Err()
}

// SettleStake transitions one pending stake to a terminal status
func (t *SettlementTx) SettleStake(ctx context.Context, stakeID uuid.UUID, status domain.StakeStatus, profit int64) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE stakes
		SET status = $2, profit = $3
		WHERE stake_id = $1 AND status = 'pending'`,
		stakeID, string(status), profit,
	)
	if err != nil {
		return fmt.Errorf("failed to settle stake: %w", err)
	}
	return nil
}

// CreditBalance atomically increments a participant's credits
func (t *SettlementTx) CreditBalance(ctx context.Context, userID uuid.UUID, amount int64) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE users
		SET credits = credits + $2, updated_at = NOW()
		WHERE user_id = $1`,
		userID, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}

// RecordCreatorEarnings accumulates the creator fee on the round row
func (t *SettlementTx) RecordCreatorEarnings(ctx context.Context, roundID uuid.UUID, fee int64) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE rounds
		SET creator_earnings = creator_earnings + $2
		WHERE round_id = $1`,
		roundID, fee,
	)
	if err != nil {
		return fmt.Errorf("failed to record creator earnings: %w", err)
	}
	return nil
}
