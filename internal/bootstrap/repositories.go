package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricetide/pricetide/internal/database/postgres"
	"github.com/pricetide/pricetide/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Round      repository.Round
	Stake      repository.Stake
	Settlement repository.Settlement
	User       repository.User
	Stats      repository.Stats
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Round:      postgres.NewRoundRepository(dbPool),
		Stake:      postgres.NewStakeRepository(dbPool),
		Settlement: postgres.NewSettlementRepository(dbPool),
		User:       postgres.NewUserRepository(dbPool),
		Stats:      postgres.NewStatsRepository(dbPool),
	}
}
