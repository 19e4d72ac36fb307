package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricetide/pricetide/internal/scheduler"
	"github.com/pricetide/pricetide/internal/server"
	"github.com/pricetide/pricetide/internal/sse"
	"github.com/pricetide/pricetide/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server     *server.Server
	Scheduler  *scheduler.Scheduler
	WorkerPool *worker.Pool
	Hub        *sse.Hub
	DBPool     *pgxpool.Pool
}

// GracefulShutdown stops the application components in dependency order:
// the HTTP server first so no new work arrives, then the resolution sweep
// scheduler and worker pool so in-flight settlements finish, then the SSE
// hub, and the database pool last.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}
	if components.Hub != nil {
		components.Hub.Stop()
	}
	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
