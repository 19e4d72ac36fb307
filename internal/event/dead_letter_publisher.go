package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/pricetide/pricetide/internal/logger"
)

// DeadLetterConfig configures the DeadLetterPublisher
type DeadLetterConfig struct {
	DeadLetterPath string
}

// DefaultDeadLetterConfig returns the standard dead-letter policy
func DefaultDeadLetterConfig(deadLetterPath string) DeadLetterConfig {
	return DeadLetterConfig{
		DeadLetterPath: deadLetterPath,
	}
}

// DeadLetterPublisher wraps an Event Bus to capture failed publishes in a
// dead-letter file. Delivery is at-most-once: a failed publish is recorded
// for inspection, never replayed, since a replay would double-deliver to
// any subscriber that already handled the event. A publish failure never
// propagates to the caller: the round and stake write paths must not fail
// because a notification could not be delivered.
type DeadLetterPublisher struct {
	inner  Bus
	config DeadLetterConfig
	mu     sync.Mutex // Protects file writes
}

// NewDeadLetterPublisher creates a new DeadLetterPublisher
func NewDeadLetterPublisher(inner Bus, config DeadLetterConfig) *DeadLetterPublisher {
	return &DeadLetterPublisher{
		inner:  inner,
		config: config,
	}
}

// Publish delivers an event to the inner bus exactly once. On failure the
// event is appended to the dead-letter file and nil is returned.
func (p *DeadLetterPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	p.writeToDeadLetter(event, err)
	return nil
}

func (p *DeadLetterPublisher) writeToDeadLetter(event Event, lastErr error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		logger.Error(LogMsgDeadLetterFailed, "error", err, "path", p.config.DeadLetterPath)
		return
	}
	defer f.Close()

	entry := DeadLetterEntry{
		Timestamp: time.Now(),
		Event:     event,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		logger.Error(LogMsgDeadLetterFailed, "error", err)
	}
}

// DeadLetterEntry represents an event that failed to publish
type DeadLetterEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     Event     `json:"event"`
	LastError string    `json:"last_error,omitempty"`
}

// Subscribe delegates to the inner bus
func (p *DeadLetterPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}
