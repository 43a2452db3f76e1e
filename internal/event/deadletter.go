package event

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DeadLetterSchemaVersion is bumped whenever DeadLetterEntry changes shape
const DeadLetterSchemaVersion = "1.1"

// DeadLetterWriter appends draw events that could not be delivered to a JSON
// lines file, one entry per line, so an operator can rebuild what the live
// stream missed.
type DeadLetterWriter struct {
	file *os.File
	mu   sync.Mutex
}

// DeadLetterEntry is one undeliverable event. SessionID is lifted out of the
// event metadata so entries can be grepped per raffle.
type DeadLetterEntry struct {
	SchemaVersion string     `json:"schema_version"`
	Timestamp     time.Time  `json:"timestamp"`
	SessionID     *uuid.UUID `json:"session_id,omitempty"`
	Event         Event      `json:"event"`
	Attempts      int        `json:"attempts"`
	LastError     string     `json:"last_error,omitempty"`
}

// NewDeadLetterWriter opens (or creates) the dead-letter file at path
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead-letter file %s: %w", path, err)
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write appends one failed event
func (dlw *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	dlw.mu.Lock()
	defer dlw.mu.Unlock()

	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}
	if id, ok := event.SessionID(); ok {
		entry.SessionID = &id
	}

	slog.Warn(LogMsgEventDeadLettered,
		"event_type", event.Type,
		"session_id", entry.SessionID,
		"attempts", attempts,
		"error", entry.LastError)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode dead-letter entry for %s: %w", event.Type, err)
	}
	if _, err := dlw.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append dead-letter entry for %s: %w", event.Type, err)
	}
	return nil
}

// Close closes the dead-letter file
func (dlw *DeadLetterWriter) Close() error {
	return dlw.file.Close()
}
