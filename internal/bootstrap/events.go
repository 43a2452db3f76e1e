package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/LuckyDraw_Go/internal/config"
	"github.com/osse101/LuckyDraw_Go/internal/event"
)

// EventSystem is the in-process bus and the retrying publisher in front of it.
// Producers publish through Publisher; subscribers attach to Bus.
type EventSystem struct {
	Bus       *event.MemoryBus
	Publisher *event.ResilientPublisher
}

// InitializeEventSystem creates the event bus and the resilient publisher,
// making sure the dead-letter directory exists.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	bus := event.NewMemoryBus()

	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DefaultEventDeadLetterPath
	}
	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, cfg.EventMaxRetries, cfg.EventRetryDelay, deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", cfg.EventMaxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", deadLetterPath)

	return &EventSystem{Bus: bus, Publisher: publisher}, nil
}
