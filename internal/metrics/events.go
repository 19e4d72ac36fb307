package metrics

import (
	"context"

	"github.com/pricetide/pricetide/internal/domain"
	"github.com/pricetide/pricetide/internal/event"
	"github.com/pricetide/pricetide/internal/logger"
)

// EventMetricsCollector subscribes to bus events and records business metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all engine event types
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		event.RoundOpened,
		event.RoundResolved,
		event.StakePlaced,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RoundOpened:
		payload, err := event.DecodePayload[domain.RoundOpenedPayloadV1](evt.Payload)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		RoundsOpened.WithLabelValues(payload.Family).Inc()

	case event.RoundResolved:
		payload, err := event.DecodePayload[domain.RoundResolvedPayloadV1](evt.Payload)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		RoundsResolved.WithLabelValues(payload.Family, payload.Outcome).Inc()

	case event.StakePlaced:
		payload, err := event.DecodePayload[domain.StakePlacedPayloadV1](evt.Payload)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		StakesPlaced.WithLabelValues(payload.Family, payload.Side).Inc()
		StakeVolume.WithLabelValues(payload.Family).Add(float64(payload.Amount))
	}

	log.Debug("metrics recorded", "type", evt.Type)
	return nil
}
