package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata holds routing attributes that are not part of the payload
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// SessionID returns the session the event belongs to, if any.
func (e Event) SessionID() (uuid.UUID, bool) {
	switch v := e.GetMetadataValue(MetadataKeySessionID).(type) {
	case uuid.UUID:
		return v, true
	case string:
		id, err := uuid.Parse(v)
		return id, err == nil
	default:
		return uuid.Nil, false
	}
}

// Draw event types
const (
	SessionCreated Type = Type(domain.EventTypeSessionCreated)
	SessionDeleted Type = Type(domain.EventTypeSessionDeleted)
	WinnerDrawn    Type = Type(domain.EventTypeWinnerDrawn)
	GroupCompleted Type = Type(domain.EventTypeGroupCompleted)
	DrawFailed     Type = Type(domain.EventTypeDrawFailed)
)

// AllTypes lists every event type the raffle publishes
var AllTypes = []Type{SessionCreated, SessionDeleted, WinnerDrawn, GroupCompleted, DrawFailed}

// Typed event payloads

// SessionCreatedPayloadV1 is published when a session is initialized
type SessionCreatedPayloadV1 struct {
	SessionID    uuid.UUID `json:"session_id"`
	Participants int       `json:"participants"`
	Prizes       int       `json:"prizes"`
	Groups       []string  `json:"groups"`
	Timestamp    int64     `json:"timestamp"`
}

// SessionDeletedPayloadV1 is published when a session is ended explicitly
type SessionDeletedPayloadV1 struct {
	SessionID uuid.UUID `json:"session_id"`
	Timestamp int64     `json:"timestamp"`
}

// WinnerDrawnPayloadV1 is published once per committed winner
type WinnerDrawnPayloadV1 struct {
	SessionID  uuid.UUID           `json:"session_id"`
	Winner     domain.WinnerRecord `json:"winner"`
	PrizesLeft int                 `json:"prizes_left"`
}

// GroupCompletedPayloadV1 is published when the last prize of a group is drawn
type GroupCompletedPayloadV1 struct {
	SessionID       uuid.UUID             `json:"session_id"`
	Group           string                `json:"group"`
	Winners         []domain.WinnerRecord `json:"winners"`
	RemainingGroups []string              `json:"remaining_groups"`
}

// DrawFailedPayloadV1 is published when a draw request is rejected
type DrawFailedPayloadV1 struct {
	SessionID uuid.UUID `json:"session_id"`
	Group     string    `json:"group"`
	Reason    string    `json:"reason"`
	Timestamp int64     `json:"timestamp"`
}

// Type-safe event constructors

func sessionMetadata(sessionID uuid.UUID) Metadata {
	return Metadata{MetadataKeySessionID: sessionID}
}

// NewSessionCreatedEvent creates a session created event
func NewSessionCreatedEvent(sessionID uuid.UUID, participants, prizes int, groups []string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SessionCreated,
		Payload: SessionCreatedPayloadV1{
			SessionID:    sessionID,
			Participants: participants,
			Prizes:       prizes,
			Groups:       groups,
			Timestamp:    time.Now().Unix(),
		},
		Metadata: sessionMetadata(sessionID),
	}
}

// NewSessionDeletedEvent creates a session deleted event
func NewSessionDeletedEvent(sessionID uuid.UUID) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SessionDeleted,
		Payload: SessionDeletedPayloadV1{
			SessionID: sessionID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: sessionMetadata(sessionID),
	}
}

// NewWinnerDrawnEvent creates a winner drawn event
func NewWinnerDrawnEvent(sessionID uuid.UUID, winner domain.WinnerRecord, prizesLeft int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WinnerDrawn,
		Payload: WinnerDrawnPayloadV1{
			SessionID:  sessionID,
			Winner:     winner,
			PrizesLeft: prizesLeft,
		},
		Metadata: sessionMetadata(sessionID),
	}
}

// NewGroupCompletedEvent creates a group completed event
func NewGroupCompletedEvent(sessionID uuid.UUID, group string, winners []domain.WinnerRecord, remainingGroups []string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GroupCompleted,
		Payload: GroupCompletedPayloadV1{
			SessionID:       sessionID,
			Group:           group,
			Winners:         winners,
			RemainingGroups: remainingGroups,
		},
		Metadata: sessionMetadata(sessionID),
	}
}

// NewDrawFailedEvent creates a draw failed event
func NewDrawFailedEvent(sessionID uuid.UUID, group string, reason error) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DrawFailed,
		Payload: DrawFailedPayloadV1{
			SessionID: sessionID,
			Group:     group,
			Reason:    reason.Error(),
			Timestamp: time.Now().Unix(),
		},
		Metadata: sessionMetadata(sessionID),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order; every handler runs even if an earlier one fails.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
