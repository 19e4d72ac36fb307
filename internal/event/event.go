// Package event provides the in-process event bus connecting the engine's
// write paths to the SSE fan-out and any other subscribers.
package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pricetide/pricetide/internal/domain"
)

// Type represents the type of an event
type Type string

// Event types published by the engine
const (
	RoundOpened   Type = domain.EventTypeRoundOpened
	RoundResolved Type = domain.EventTypeRoundResolved
	StakePlaced   Type = domain.EventTypeStakePlaced
)

// Event represents a generic event in the system
type Event struct {
	Version string `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type   `json:"type"`
	Payload any    `json:"payload"`
}

// NewRoundOpenedEvent creates a new round-opened event with type-safe payload
func NewRoundOpenedEvent(round *domain.Round) Event {
	var openValue float64
	if round.OpenValue != nil {
		openValue = *round.OpenValue
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundOpened,
		Payload: domain.RoundOpenedPayloadV1{
			RoundID:   round.ID.String(),
			Family:    round.Family,
			MarketKey: round.MarketKey,
			OpenValue: openValue,
			CloseTime: round.CloseTime.Unix(),
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewRoundResolvedEvent creates a new round-resolved event with type-safe payload
func NewRoundResolvedEvent(round *domain.Round, outcome domain.Outcome, closeValue float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RoundResolved,
		Payload: domain.RoundResolvedPayloadV1{
			RoundID:    round.ID.String(),
			Family:     round.Family,
			MarketKey:  round.MarketKey,
			Outcome:    string(outcome),
			CloseValue: closeValue,
			TotalPool:  round.TotalPool,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewStakePlacedEvent creates a new stake-placed event with type-safe payload
func NewStakePlacedEvent(stakeID uuid.UUID, round *domain.Round, side domain.Side, amount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StakePlaced,
		Payload: domain.StakePlacedPayloadV1{
			StakeID:   stakeID.String(),
			RoundID:   round.ID.String(),
			Family:    round.Family,
			MarketKey: round.MarketKey,
			Side:      string(side),
			Amount:    amount,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// a failing handler does not stop the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
