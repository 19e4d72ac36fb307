package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pricetide/pricetide/internal/config"
	"github.com/pricetide/pricetide/internal/event"
	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/metrics"
	"github.com/pricetide/pricetide/internal/sse"
)

// InitializeEventSystem creates the event bus, the dead-letter publisher
// used by all services, and the read-side subscribers (SSE fan-out and
// metrics). The hub is started; the caller stops it on shutdown.
func InitializeEventSystem(cfg *config.Config) (*event.DeadLetterPublisher, *sse.Hub, error) {
	eventBus := event.NewMemoryBus()

	deadLetterPath := cfg.DeadLetterPath
	if dir := filepath.Dir(deadLetterPath); dir != "." {
		if err := os.MkdirAll(dir, DirPermission); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
		}
	}

	publisher := event.NewDeadLetterPublisher(eventBus, event.DefaultDeadLetterConfig(deadLetterPath))

	// Read sides subscribe on the inner bus; publishes go through the
	// dead-letter wrapper
	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, eventBus).Subscribe()
	metrics.NewEventMetricsCollector().Register(eventBus)

	logger.Info(LogMsgEventSystemInitialized,
		"deadletter_path", deadLetterPath)

	return publisher, hub, nil
}
