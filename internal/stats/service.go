// Package stats implements the reporting read side: leaderboards and the
// recent winners feed.
package stats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/repository"
)

// Query defaults
const (
	// LeaderboardSize is the number of entries per leaderboard view
	LeaderboardSize = 10

	// MinBetsForWinRate excludes small samples from the win-rate board
	MinBetsForWinRate = 5

	// RecentWinnersSize is the winners feed length
	RecentWinnersSize = 20
)

// Service defines the interface for reporting queries
type Service interface {
	// GetLeaderboard returns the three ranked views. The underlying rows
	// are terminal-state stakes, so the views are consistent snapshots.
	GetLeaderboard(ctx context.Context) (*domain.Leaderboard, error)

	// GetRecentWinners returns the most recently settled winning stakes
	GetRecentWinners(ctx context.Context) ([]domain.Winner, error)
}

type service struct {
	repo repository.Stats
}

// NewService creates a new stats service
func NewService(repo repository.Stats) Service {
	return &service{repo: repo}
}

func (s *service) GetLeaderboard(ctx context.Context) (*domain.Leaderboard, error) {
	var board domain.Leaderboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.repo.LeaderboardByWinRate(ctx, MinBetsForWinRate, LeaderboardSize)
		board.HighestWinRate = entries
		return err
	})
	g.Go(func() error {
		entries, err := s.repo.LeaderboardByBets(ctx, LeaderboardSize)
		board.MostBets = entries
		return err
	})
	g.Go(func() error {
		entries, err := s.repo.LeaderboardByCredits(ctx, LeaderboardSize)
		board.MostCredits = entries
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *service) GetRecentWinners(ctx context.Context) ([]domain.Winner, error) {
	return s.repo.RecentWinners(ctx, RecentWinnersSize)
}
