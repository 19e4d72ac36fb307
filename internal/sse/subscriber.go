package sse

import (
	"context"
	"log/slog"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.RoundOpened, s.handleRoundOpened)
	s.bus.Subscribe(event.RoundResolved, s.handleRoundResolved)
	s.bus.Subscribe(event.StakePlaced, s.handleStakePlaced)

	slog.Info("SSE subscriber registered for event types",
		"types", []string{
			string(event.RoundOpened),
			string(event.RoundResolved),
			string(event.StakePlaced),
		})
}

func (s *Subscriber) handleRoundOpened(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.RoundOpenedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeRoundOpened, payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeRoundOpened,
		"round_id", payload.RoundID,
		"family", payload.Family,
		"market_key", payload.MarketKey)

	return nil
}

func (s *Subscriber) handleRoundResolved(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.RoundResolvedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeRoundResolved, payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeRoundResolved,
		"round_id", payload.RoundID,
		"outcome", payload.Outcome)

	return nil
}

func (s *Subscriber) handleStakePlaced(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.StakePlacedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeStakePlaced, payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeStakePlaced,
		"round_id", payload.RoundID,
		"side", payload.Side,
		"amount", payload.Amount)

	return nil
}
