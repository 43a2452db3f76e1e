package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/LuckyDraw_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all raffle event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.SessionCreated, s.handleSessionCreated)
	s.bus.Subscribe(event.SessionDeleted, s.handleSessionDeleted)
	s.bus.Subscribe(event.WinnerDrawn, s.handleWinnerDrawn)
	s.bus.Subscribe(event.GroupCompleted, s.handleGroupCompleted)
	s.bus.Subscribe(event.DrawFailed, s.handleDrawFailed)

	types := make([]string, len(event.AllTypes))
	for i, t := range event.AllTypes {
		types[i] = string(t)
	}
	slog.Info(LogMsgSubscriberReady, "types", types)
}

func (s *Subscriber) handleSessionCreated(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.SessionCreatedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid session created event payload type", "error", err)
		return nil
	}
	s.broadcast(evt, SessionPayload{
		Participants: payload.Participants,
		Prizes:       payload.Prizes,
		Groups:       payload.Groups,
	})
	return nil
}

func (s *Subscriber) handleSessionDeleted(_ context.Context, evt event.Event) error {
	s.broadcast(evt, SessionPayload{})
	return nil
}

func (s *Subscriber) handleWinnerDrawn(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.WinnerDrawnPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid winner drawn event payload type", "error", err)
		return nil
	}
	s.broadcast(evt, WinnerPayload{Winner: payload.Winner, PrizesLeft: payload.PrizesLeft})
	return nil
}

func (s *Subscriber) handleGroupCompleted(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.GroupCompletedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid group completed event payload type", "error", err)
		return nil
	}
	s.broadcast(evt, GroupCompletedPayload{
		Group:           payload.Group,
		Winners:         payload.Winners,
		RemainingGroups: payload.RemainingGroups,
	})
	return nil
}

func (s *Subscriber) handleDrawFailed(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.DrawFailedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid draw failed event payload type", "error", err)
		return nil
	}
	s.broadcast(evt, DrawFailedPayload{Group: payload.Group, Reason: payload.Reason})
	return nil
}

func (s *Subscriber) broadcast(evt event.Event, payload interface{}) {
	sessionID := ""
	if id, ok := evt.SessionID(); ok {
		sessionID = id.String()
	}
	s.hub.Broadcast(string(evt.Type), sessionID, payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "session_id", sessionID)
}
