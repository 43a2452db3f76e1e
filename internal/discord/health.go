package discord

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

const healthAPITimeout = 2 * time.Second

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	Connected        bool       `json:"connected"`
	StreamConnected  bool       `json:"stream_connected"`
	CommandsReceived int64      `json:"commands_received"`
	LastCommandTime  *time.Time `json:"last_command_time,omitempty"`
	APIReachable     bool       `json:"api_reachable"`
}

var (
	startTime       = time.Now()
	commandCounter  atomic.Int64
	lastCommandNano atomic.Int64
)

// RecordCommand increments the command counter
func RecordCommand() {
	commandCounter.Add(1)
	lastCommandNano.Store(time.Now().UnixNano())
}

// HandleHealth reports gateway, stream and API status. Anything down makes
// the answer 503.
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	connected := h.bot.Connected()
	streamConnected := h.stream == nil || h.stream.IsConnected()

	apiReachable := false
	if h.bot.Client != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthAPITimeout)
		apiReachable = h.bot.Client.Ping(ctx) == nil
		cancel()
	}

	health := HealthStatus{
		Status:           "healthy",
		Uptime:           time.Since(startTime).Round(time.Second).String(),
		Connected:        connected,
		StreamConnected:  streamConnected,
		CommandsReceived: commandCounter.Load(),
		APIReachable:     apiReachable,
	}
	if n := lastCommandNano.Load(); n > 0 {
		t := time.Unix(0, n)
		health.LastCommandTime = &t
	}

	status := http.StatusOK
	if !connected || !apiReachable || !streamConnected {
		health.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Debug("Failed to write health response", "error", err)
	}
}
