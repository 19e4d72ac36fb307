package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/repository"
	"github.com/pricetide/pricetide/internal/settle"
)

// ResolutionSweepJob finds rounds past their close time and drives each one
// through the settlement engine. A failing round is logged and skipped so a
// single bad feed cannot stall the rest of the batch; the round stays
// unresolved and the next sweep retries it.
type ResolutionSweepJob struct {
	repo      repository.Settlement
	settler   settle.Service
	batchSize int
}

// NewResolutionSweepJob creates a new resolution sweep job
func NewResolutionSweepJob(repo repository.Settlement, settler settle.Service) *ResolutionSweepJob {
	return &ResolutionSweepJob{
		repo:      repo,
		settler:   settler,
		batchSize: SweepBatchSize,
	}
}

// Process runs one sweep
func (j *ResolutionSweepJob) Process(ctx context.Context) error {
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())
	log := logger.FromContext(ctx)

	rounds, err := j.repo.ListExpiredUnresolved(ctx, time.Now(), j.batchSize)
	if err != nil {
		return fmt.Errorf("%s: %w", LogMsgSweepListFailed, err)
	}
	if len(rounds) == 0 {
		return nil
	}

	log.Debug(LogMsgSweepStarted, "rounds", len(rounds))

	resolved := 0
	for _, round := range rounds {
		if err := j.settler.ResolveRound(ctx, round.ID); err != nil {
			log.Error(LogMsgSweepRoundFailed,
				"round_id", round.ID,
				"family", round.Family,
				"market_key", round.MarketKey,
				"error", err)
			continue
		}
		resolved++
	}

	log.Info(LogMsgSweepCompleted, "eligible", len(rounds), "resolved", resolved)
	return nil
}
