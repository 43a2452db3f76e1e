package metrics

import (
	"context"

	"github.com/osse101/LuckyDraw_Go/internal/event"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every raffle event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.SessionCreated:
		SessionsCreated.Inc()

	case event.WinnerDrawn:
		WinnersDrawn.Inc()

	case event.GroupCompleted:
		if _, err := event.DecodePayload[event.GroupCompletedPayloadV1](evt.Payload); err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		GroupsCompleted.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
