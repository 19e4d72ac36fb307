// Package round implements the round manager: the single entry point for
// opening rounds and reading round state.
package round

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/concurrency"
	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/event"
	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/market"
	"github.com/pricetide/pricetide/internal/oracle"
	"github.com/pricetide/pricetide/internal/repository"
)

// Service defines the interface for round operations
type Service interface {
	// GetOrOpenRound returns the open round for the market key, opening a
	// new one when none exists. Opening requires a successful oracle sample;
	// feed unavailability surfaces domain.ErrOracleUnavailable and no round
	// is created.
	GetOrOpenRound(ctx context.Context, family, marketKey string) (*domain.Round, error)

	// CreateCustomRound opens a user-created token round. The token lookup
	// must succeed; its price becomes the open value and its metadata is
	// stored on the round.
	CreateCustomRound(ctx context.Context, creatorID uuid.UUID, tokenAddress string, durationMinutes int) (*domain.Round, error)

	GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error)
	ListRecentRounds(ctx context.Context, family, marketKey string, limit int) ([]domain.Round, error)
	ListActiveCustomRounds(ctx context.Context) ([]domain.Round, error)
}

// PriceSource samples the current reference value for a market key.
// *oracle.Router satisfies this.
type PriceSource interface {
	Price(ctx context.Context, family, marketKey string) (float64, error)
}

type service struct {
	repo     repository.Round
	catalog  *market.Catalog
	prices   PriceSource
	tokens   oracle.TokenSource
	eventBus event.Bus

	// openLocks serializes round opening per market key within this process.
	// The partial unique index on open rounds is still the real guard; the
	// lock just keeps concurrent requests from burning oracle calls on a
	// race they will lose.
	openLocks *concurrency.LockManager
}

// NewService creates a new round service
func NewService(repo repository.Round, catalog *market.Catalog, prices PriceSource, tokens oracle.TokenSource, eventBus event.Bus) Service {
	return &service{
		repo:      repo,
		catalog:   catalog,
		prices:    prices,
		tokens:    tokens,
		eventBus:  eventBus,
		openLocks: concurrency.NewLockManager(),
	}
}

func (s *service) GetOrOpenRound(ctx context.Context, family, marketKey string) (*domain.Round, error) {
	log := logger.FromContext(ctx)

	fam, err := s.catalog.Family(family)
	if err != nil {
		return nil, err
	}
	if !s.catalog.SupportsKey(family, marketKey) {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrMarketNotFound, family, marketKey)
	}
	if fam.UserCreated {
		// Custom rounds are opened explicitly by their creator
		return nil, fmt.Errorf("%w: %s rounds are user-created", domain.ErrMarketNotFound, family)
	}

	lock := s.openLocks.GetLock(family + ":" + marketKey)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()
	existing, err := s.repo.GetOpenRound(ctx, family, marketKey, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetOpenRound, err)
	}
	if existing != nil {
		return existing, nil
	}

	openValue, err := s.prices.Price(ctx, family, marketKey)
	if err != nil {
		if errors.Is(err, domain.ErrOracleUnavailable) {
			log.Warn(LogMsgOracleDeclined, "family", family, "market_key", marketKey, "error", err)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSamplePrice, err)
	}

	round := &domain.Round{
		Family:    family,
		MarketKey: marketKey,
		OpenTime:  now,
		CloseTime: now.Add(fam.RoundDuration),
		OpenValue: &openValue,
	}

	if err := s.repo.CreateRound(ctx, round); err != nil {
		if errors.Is(err, domain.ErrRoundAlreadyOpen) {
			// Another request opened the round between our lookup and insert
			log.Debug(LogMsgOpenRaceLost, "family", family, "market_key", marketKey)
			return s.openRoundAfterRace(ctx, family, marketKey)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateRound, err)
	}

	log.Info(LogMsgRoundOpened,
		"round_id", round.ID,
		"family", family,
		"market_key", marketKey,
		"open_value", openValue,
		"close_time", round.CloseTime)

	s.publishOpened(ctx, round)
	return round, nil
}

// openRoundAfterRace re-reads the round the winning request created
func (s *service) openRoundAfterRace(ctx context.Context, family, marketKey string) (*domain.Round, error) {
	existing, err := s.repo.GetOpenRound(ctx, family, marketKey, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetOpenRound, err)
	}
	if existing == nil {
		// The winner's round may already be past its close time; treat the
		// key as having no current round rather than recursing
		return nil, domain.ErrRoundAlreadyOpen
	}
	return existing, nil
}

func (s *service) CreateCustomRound(ctx context.Context, creatorID uuid.UUID, tokenAddress string, durationMinutes int) (*domain.Round, error) {
	log := logger.FromContext(ctx)

	fam, err := s.catalog.Family(market.FamilyCustom)
	if err != nil {
		return nil, err
	}
	if !fam.ValidDuration(durationMinutes) {
		return nil, fmt.Errorf("%w: %d minutes", domain.ErrInvalidDuration, durationMinutes)
	}

	tokenAddress = strings.ToLower(strings.TrimSpace(tokenAddress))
	if tokenAddress == "" {
		return nil, fmt.Errorf("%w: empty token address", domain.ErrMarketNotFound)
	}

	info, err := s.tokens.Token(ctx, tokenAddress)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLookupToken, err)
	}

	now := time.Now()
	openValue := info.Price
	round := &domain.Round{
		Family:          market.FamilyCustom,
		MarketKey:       tokenAddress,
		OpenTime:        now,
		CloseTime:       now.Add(time.Duration(durationMinutes) * time.Minute),
		OpenValue:       &openValue,
		CreatorID:       &creatorID,
		TokenName:       info.Name,
		TokenSymbol:     info.Symbol,
		DurationMinutes: durationMinutes,
	}

	if err := s.repo.CreateRound(ctx, round); err != nil {
		if errors.Is(err, domain.ErrRoundAlreadyOpen) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateRound, err)
	}

	log.Info(LogMsgCustomRoundCreated,
		"round_id", round.ID,
		"creator_id", creatorID,
		"token", info.Symbol,
		"duration_minutes", durationMinutes)

	s.publishOpened(ctx, round)
	return round, nil
}

func (s *service) GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	return s.repo.GetRound(ctx, id)
}

func (s *service) ListRecentRounds(ctx context.Context, family, marketKey string, limit int) ([]domain.Round, error) {
	if _, err := s.catalog.Family(family); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.repo.ListRecentRounds(ctx, family, marketKey, limit)
}

func (s *service) ListActiveCustomRounds(ctx context.Context) ([]domain.Round, error) {
	return s.repo.ListActiveCustomRounds(ctx, MaxActiveCustomRounds)
}

func (s *service) publishOpened(ctx context.Context, round *domain.Round) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event.NewRoundOpenedEvent(round)); err != nil {
		logger.FromContext(ctx).Warn("failed to publish round opened event",
			"round_id", round.ID, "error", err)
	}
}
