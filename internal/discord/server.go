package discord

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const (
	httpShutdownTimeout   = 5 * time.Second
	httpReadHeaderTimeout = 5 * time.Second
	defaultAnnounceColor  = ColorInfo
)

// HTTPServer serves the bot's health check and the manual announce hook
type HTTPServer struct {
	server    *http.Server
	bot       *Bot
	stream    *SSEClient
	channelID string
	apiKey    string
}

// NewHTTPServer creates the internal HTTP server. stream may be nil when
// announcements are disabled. A non-empty apiKey protects /announce.
func NewHTTPServer(port string, bot *Bot, stream *SSEClient, channelID, apiKey string) *HTTPServer {
	mux := http.NewServeMux()

	srv := &HTTPServer{
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           mux,
			ReadHeaderTimeout: httpReadHeaderTimeout,
		},
		bot:       bot,
		stream:    stream,
		channelID: channelID,
		apiKey:    apiKey,
	}

	mux.HandleFunc("GET /healthz", srv.HandleHealth)
	mux.HandleFunc("POST /announce", srv.handleAnnounce)
	return srv
}

// Handler exposes the routes for tests
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *HTTPServer) Start() {
	go func() {
		slog.Info("Starting Discord internal HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Discord internal HTTP server failed", "error", err)
		}
	}()
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Discord internal HTTP server shutdown failed", "error", err)
	}
}

// AnnounceRequest is a free-form message for the announce channel
type AnnounceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

func (s *HTTPServer) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	if s.apiKey != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get("X-API-Key")), []byte(s.apiKey)) != 1 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if s.channelID == "" {
		http.Error(w, "Announcements are disabled", http.StatusServiceUnavailable)
		return
	}

	var req AnnounceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Color == 0 {
		req.Color = defaultAnnounceColor
	}

	embed := createEmbed(req.Title, req.Description, req.Color)
	embed.Timestamp = time.Now().Format(time.RFC3339)

	if _, err := s.bot.Session.ChannelMessageSendEmbed(s.channelID, embed); err != nil {
		slog.Error("Failed to send announcement", "error", err)
		http.Error(w, "Failed to send to Discord", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Debug("Failed to write announce response", "error", err)
	}
}
