package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pricetide/pricetide/internal/bootstrap"
	"github.com/pricetide/pricetide/internal/config"
	"github.com/pricetide/pricetide/internal/database"
	"github.com/pricetide/pricetide/internal/market"
	"github.com/pricetide/pricetide/internal/round"
	"github.com/pricetide/pricetide/internal/scheduler"
	"github.com/pricetide/pricetide/internal/server"
	"github.com/pricetide/pricetide/internal/settle"
	"github.com/pricetide/pricetide/internal/stake"
	"github.com/pricetide/pricetide/internal/stats"
	"github.com/pricetide/pricetide/internal/user"
	"github.com/pricetide/pricetide/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// Database
	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		return err
	}
	dbPool, err := database.NewPool(cfg.GetDBConnString(), bootstrap.DBMaxConns, bootstrap.DBMaxConnIdleTime, bootstrap.DBMaxConnLifetime)
	if err != nil {
		return err
	}

	// Market catalog and oracle clients
	catalog, err := market.LoadCatalog(cfg.MarketCatalogPath)
	if err != nil {
		return err
	}
	oracleRouter, tokenSource, err := bootstrap.InitializeOracles(cfg, catalog)
	if err != nil {
		return err
	}

	// Event bus, SSE fan-out and event metrics
	publisher, hub, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	// Repositories and services
	repos := bootstrap.InitializeRepositories(dbPool)
	userService := user.NewService(repos.User)
	roundService := round.NewService(repos.Round, catalog, oracleRouter, tokenSource, publisher)
	stakeService := stake.NewService(repos.Stake, catalog, publisher)
	settleService := settle.NewService(repos.Settlement, catalog, oracleRouter, publisher)
	statsService := stats.NewService(repos.Stats)

	// Resolution sweep: a worker pool drains settlement jobs enqueued on a
	// fixed interval
	workerPool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	workerPool.Start()
	sched := scheduler.New(workerPool)
	sched.Schedule(worker.SweepInterval, worker.NewResolutionSweepJob(repos.Settlement, settleService))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, userService, roundService, stakeService, statsService, catalog, hub)

	// Run until interrupted
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:     srv,
		Scheduler:  sched,
		WorkerPool: workerPool,
		Hub:        hub,
		DBPool:     dbPool,
	})

	return nil
}
