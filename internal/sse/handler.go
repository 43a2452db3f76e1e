package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/osse101/LuckyDraw_Go/internal/logger"
	"github.com/osse101/LuckyDraw_Go/internal/metrics"
)

// Handler returns an HTTP handler for SSE connections.
//
// Query parameters: types (comma separated event types) and session_id
// (only events of that session).
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		// Check for flusher support
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		// Set SSE headers
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		var eventTypes []string
		if filterParam := r.URL.Query().Get(QueryParamTypes); filterParam != "" {
			eventTypes = strings.Split(filterParam, ",")
		}
		sessionID := r.URL.Query().Get(QueryParamSession)

		client := hub.Register(eventTypes, sessionID)
		metrics.LiveConnections.WithLabelValues(metrics.TransportSSE).Inc()
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"filters", eventTypes,
			"session_id", sessionID)

		defer func() {
			hub.Unregister(client.ID)
			metrics.LiveConnections.WithLabelValues(metrics.TransportSSE).Dec()
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		connectEvent := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			SessionID: sessionID,
			Timestamp: time.Now().Unix(),
			Payload: map[string]interface{}{
				"client_id": client.ID,
				"filters":   eventTypes,
			},
		}
		if !writeEvent(w, flusher, connectEvent) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// Channel closed, hub is shutting down
					return
				}
				if !writeEvent(w, flusher, event) {
					log.Warn(LogMsgWriteError, "client_id", client.ID, "type", event.Type)
					return
				}

			case <-ticker.C:
				keepalive := Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}
				if !writeEvent(w, flusher, keepalive) {
					return
				}
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, event Event) bool {
	msg, err := FormatSSEMessage(event)
	if err != nil {
		return false
	}
	if _, err := w.Write(msg); err != nil {
		return false
	}
	flusher.Flush()
	return true
}
