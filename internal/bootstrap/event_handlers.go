package bootstrap

import (
	"log/slog"

	"github.com/osse101/LuckyDraw_Go/internal/event"
	"github.com/osse101/LuckyDraw_Go/internal/metrics"
	"github.com/osse101/LuckyDraw_Go/internal/sse"
)

// RegisterEventHandlers attaches the metrics collector and, when a hub is
// given, the SSE fan-out to the bus.
func RegisterEventHandlers(bus event.Bus, hub *sse.Hub) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if hub != nil {
		sse.NewSubscriber(hub, bus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}
}
