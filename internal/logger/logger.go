package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	sessionIDKey
)

// InitLogger builds the process logger from cfg, writing to stdout, and
// installs it as the slog default.
func InitLogger(cfg Config) *slog.Logger {
	return InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter is InitLogger with an explicit destination.
func InitLoggerWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler.WithAttrs(cfg.BaseAttributes()))
	slog.SetDefault(l)
	return l
}

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request ID or an empty string.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithSessionID tags ctx with the draw session being worked on, so engine
// and store logs can be told apart when several raffles run at once.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext returns the draw session of ctx, if any.
func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(sessionIDKey).(uuid.UUID)
	return id, ok
}

// FromContext returns the default logger with request_id and session_id
// attributes when ctx carries them.
func FromContext(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if id := GetRequestID(ctx); id != "" {
		l = l.With(AttrKeyRequestID, id)
	}
	if id, ok := SessionIDFromContext(ctx); ok {
		l = l.With(AttrKeySessionID, id)
	}
	return l
}
