// Package postgres implements the repository interfaces for PostgreSQL
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pricetide/pricetide/internal/domain"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

const roundColumns = `round_id, family, market_key, open_time, close_time,
	open_value, close_value, outcome, creator_id, token_name, token_symbol,
	duration_minutes, total_pool, creator_earnings, created_at`

type roundScanner interface {
	Scan(dest ...any) error
}

func scanRound(row roundScanner) (*domain.Round, error) {
	var (
		r           domain.Round
		outcome     *string
		tokenName   *string
		tokenSymbol *string
	)
	err := row.Scan(
		&r.ID, &r.Family, &r.MarketKey, &r.OpenTime, &r.CloseTime,
		&r.OpenValue, &r.CloseValue, &outcome, &r.CreatorID, &tokenName,
		&tokenSymbol, &r.DurationMinutes, &r.TotalPool, &r.CreatorEarnings,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		o := domain.Outcome(*outcome)
		r.Outcome = &o
	}
	if tokenName != nil {
		r.TokenName = *tokenName
	}
	if tokenSymbol != nil {
		r.TokenSymbol = *tokenSymbol
	}
	return &r, nil
}

func collectRounds(rows pgx.Rows) ([]domain.Round, error) {
	defer rows.Close()

	var rounds []domain.Round
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, *r)
	}
	return rounds, rows.Err()
}

// nullableText maps the empty string to NULL for optional varchar columns
func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
