package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricetide/pricetide/internal/config"
	"github.com/pricetide/pricetide/internal/database"
	"github.com/pricetide/pricetide/internal/database/postgres"
	"github.com/pricetide/pricetide/internal/domain"
)

var seedUsernames = []string{"alice", "bob", "carol"}

// runSeed applies migrations and inserts a few demo users so the API has
// participants to play with locally
func runSeed() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.GetDBConnString())
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	for _, name := range seedUsernames {
		u := &domain.User{Username: name, Credits: domain.StartingCredits}
		err := users.CreateUser(ctx, u)
		if errors.Is(err, domain.ErrUsernameTaken) {
			fmt.Printf("user %s already exists, skipping\n", name)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Printf("created user %s (%s) with %d credits\n", u.Username, u.ID, u.Credits)
	}

	return nil
}
