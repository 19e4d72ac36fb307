// Package settle implements the settlement engine: sampling the close value,
// deciding the outcome and paying out every stake of a round in one atomic
// transaction.
package settle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/event"
	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/market"
	"github.com/pricetide/pricetide/internal/metrics"
	"github.com/pricetide/pricetide/internal/repository"
)

// Service defines the interface for settlement operations
type Service interface {
	// ResolveRound settles one round. It is safe to call any number of
	// times and from any number of concurrent resolvers: a round that is
	// already resolved, not yet closed, or claimed by another resolver is
	// a logged no-op. Oracle unavailability defers resolution to a later
	// sweep, also without error.
	ResolveRound(ctx context.Context, roundID uuid.UUID) error
}

// PriceSource samples the current reference value for a market key.
// *oracle.Router satisfies this.
type PriceSource interface {
	Price(ctx context.Context, family, marketKey string) (float64, error)
}

type service struct {
	repo     repository.Settlement
	catalog  *market.Catalog
	prices   PriceSource
	eventBus event.Bus
}

// NewService creates a new settlement service
func NewService(repo repository.Settlement, catalog *market.Catalog, prices PriceSource, eventBus event.Bus) Service {
	return &service{
		repo:     repo,
		catalog:  catalog,
		prices:   prices,
		eventBus: eventBus,
	}
}

func (s *service) ResolveRound(ctx context.Context, roundID uuid.UUID) error {
	log := logger.FromContext(ctx)
	start := time.Now()

	round, err := s.repo.GetRound(ctx, roundID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGetRound, err)
	}

	// Idempotency guard. The authoritative check is the conditional claim
	// inside the transaction; this read just avoids oracle calls for rounds
	// that are visibly done.
	if round.Resolved() {
		log.Debug(LogMsgAlreadyResolved, "round_id", roundID)
		metrics.SettlementsSkipped.WithLabelValues(metrics.SkipReasonAlreadyResolved).Inc()
		return nil
	}
	if !round.Closed(time.Now()) {
		log.Debug(LogMsgNotYetClosed, "round_id", roundID, "close_time", round.CloseTime)
		return nil
	}

	fam, err := s.catalog.Family(round.Family)
	if err != nil {
		return err
	}

	closeValue, err := s.prices.Price(ctx, round.Family, round.MarketKey)
	if err != nil {
		if errors.Is(err, domain.ErrOracleUnavailable) {
			// The round stays unresolved; the next sweep retries
			log.Warn(LogMsgOracleUnavailable,
				"round_id", roundID,
				"family", round.Family,
				"market_key", round.MarketKey,
				"error", err)
			metrics.SettlementsSkipped.WithLabelValues(metrics.SkipReasonOracle).Inc()
			return nil
		}
		return err
	}

	if round.OpenValue == nil {
		return fmt.Errorf("round %s has no open value", roundID)
	}
	resolution := fam.Resolve(*round.OpenValue, closeValue)

	if err := s.apply(ctx, round, fam, resolution, closeValue); err != nil {
		return err
	}

	metrics.SettlementDuration.WithLabelValues(round.Family).Observe(time.Since(start).Seconds())
	return nil
}

// settleStake computes one stake's terminal status, profit and balance credit
// under the round's resolution
func settleStake(st domain.Stake, res market.Resolution) domain.StakeSettlement {
	out := domain.StakeSettlement{StakeID: st.ID, UserID: st.UserID}
	switch {
	case res.Refund:
		out.Status = domain.StakeStatusRefunded
		out.Credit = st.Amount
	case st.Side == res.Winner:
		out.Status = domain.StakeStatusWon
		out.Profit = st.Amount
		out.Credit = st.Amount * WinCreditMultiplier
	default:
		out.Status = domain.StakeStatusLost
		out.Profit = -st.Amount
	}
	return out
}

// apply runs the settlement transaction. The conditional claim is the first
// write: zero rows claimed means another resolver got here first and the
// whole transaction aborts without touching any stake.
func (s *service) apply(ctx context.Context, round *domain.Round, fam market.Family, res market.Resolution, closeValue float64) error {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginSettlementTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	claimed, err := tx.ClaimRoundResolution(ctx, round.ID, closeValue, res.Outcome)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToClaim, err)
	}
	if claimed == 0 {
		log.Debug(LogMsgClaimLost, "round_id", round.ID)
		metrics.SettlementsSkipped.WithLabelValues(metrics.SkipReasonClaimLost).Inc()
		return nil
	}

	stakes, err := tx.ListPendingStakes(ctx, round.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToListStakes, err)
	}

	var losingPool int64
	for _, st := range stakes {
		out := settleStake(st, res)

		if err := tx.SettleStake(ctx, out.StakeID, out.Status, out.Profit); err != nil {
			return fmt.Errorf("%s %s: %w", ErrContextFailedToSettle, out.StakeID, err)
		}
		if out.Credit > 0 {
			if err := tx.CreditBalance(ctx, out.UserID, out.Credit); err != nil {
				return fmt.Errorf("%s %s: %w", ErrContextFailedToCredit, out.UserID, err)
			}
		}
		if out.Status == domain.StakeStatusLost {
			losingPool += st.Amount
		}
	}

	if fee := creatorFee(round, fam, res, losingPool); fee > 0 {
		if err := tx.CreditBalance(ctx, *round.CreatorID, fee); err != nil {
			return fmt.Errorf("%s %s: %w", ErrContextFailedToCredit, *round.CreatorID, err)
		}
		if err := tx.RecordCreatorEarnings(ctx, round.ID, fee); err != nil {
			return fmt.Errorf("failed to record creator earnings: %w", err)
		}
		log.Info(LogMsgCreatorFeePaid,
			"round_id", round.ID,
			"creator_id", *round.CreatorID,
			"fee", fee)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommit, err)
	}

	log.Info(LogMsgRoundResolved,
		"round_id", round.ID,
		"family", round.Family,
		"market_key", round.MarketKey,
		"outcome", res.Outcome,
		"close_value", closeValue,
		"stakes", len(stakes))

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, event.NewRoundResolvedEvent(round, res.Outcome, closeValue)); err != nil {
			log.Warn("failed to publish round resolved event", "round_id", round.ID, "error", err)
		}
	}

	return nil
}

// creatorFee is the share of the losing pool owed to a user-created round's
// creator. Built-in families and refunded rounds pay nothing.
func creatorFee(round *domain.Round, fam market.Family, res market.Resolution, losingPool int64) int64 {
	if fam.CreatorFeeBps == 0 || round.CreatorID == nil || res.Refund {
		return 0
	}
	return losingPool * int64(fam.CreatorFeeBps) / BpsDenominator
}
