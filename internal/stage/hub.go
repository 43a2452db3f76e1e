// Package stage runs the live raffle stage: one websocket hub per session
// where a presenter triggers draws and every viewer sees each winner as it
// is committed.
package stage

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
)

// Drawer is the part of the raffle service the stage drives
type Drawer interface {
	ListGroups(ctx context.Context, sessionID uuid.UUID) ([]string, error)
	DrawGroup(ctx context.Context, sessionID uuid.UUID, group string) (*domain.GroupDrawOutcome, error)
	DrawNext(ctx context.Context, sessionID uuid.UUID, group string) (*domain.PrizeDrawOutcome, error)
	Winners(ctx context.Context, sessionID uuid.UUID) ([]domain.WinnerRecord, error)
}

type request struct {
	action Action
	client *Client
}

// Hub fans draw results of one session out to its clients. Actions are
// handled one at a time on the hub goroutine.
type Hub struct {
	sessionID uuid.UUID
	drawer    Drawer

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	actions    chan request

	mu      sync.RWMutex
	count   int
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newHub(sessionID uuid.UUID, drawer Drawer) *Hub {
	return &Hub{
		sessionID:  sessionID,
		drawer:     drawer,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		actions:    make(chan request),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

func (h *Hub) run() {
	defer close(h.stopped)
	slog.Debug(LogMsgHubStarted, "session_id", h.sessionID)

	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setCount(len(h.clients))
			h.sendTo(c, Message{Type: MsgTypeWelcome, Role: c.role})

		case c := <-h.unregister:
			h.drop(c)

		case req := <-h.actions:
			h.handle(req)

		case <-h.done:
			h.broadcast(Message{Type: MsgTypeClosed})
			for c := range h.clients {
				h.drop(c)
			}
			slog.Debug(LogMsgHubClosed, "session_id", h.sessionID)
			return
		}
	}
}

// Close disconnects every client and stops the hub
func (h *Hub) Close() {
	h.signalClose()
	<-h.stopped
}

// signalClose asks the hub to stop without waiting for it
func (h *Hub) signalClose() {
	h.once.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) submit(c *Client, a Action) {
	select {
	case h.actions <- request{action: a, client: c}:
	case <-h.done:
	}
}

func (h *Hub) handle(req request) {
	c, a := req.client, req.action
	a.Group = strings.TrimSpace(a.Group)
	if a.Action == "" {
		h.sendTo(c, Message{Type: MsgTypeError, Error: ErrMsgBadMessage})
		return
	}
	if c.role != RolePresenter {
		h.sendTo(c, Message{Type: MsgTypeError, Error: ErrMsgViewerCannotAct})
		return
	}

	ctx, cancel := context.WithTimeout(c.ctx, ActionTimeout)
	defer cancel()

	switch a.Action {
	case ActionGroups:
		groups, err := h.drawer.ListGroups(ctx, h.sessionID)
		if err != nil {
			h.sendTo(c, errorMessage(a.Group, err))
			return
		}
		h.sendTo(c, Message{Type: MsgTypeGroups, Groups: groups})

	case ActionDrawNext:
		outcome, err := h.drawer.DrawNext(ctx, h.sessionID, a.Group)
		if err != nil {
			h.sendTo(c, errorMessage(a.Group, err))
			return
		}
		left := outcome.PrizesLeft
		winner := outcome.Winner
		h.broadcast(Message{Type: MsgTypeWinner, Group: outcome.Group, Winner: &winner, PrizesLeft: &left})
		if outcome.GroupCompleted {
			h.groupCompleted(ctx, outcome.Group, []domain.WinnerRecord{winner})
		}

	case ActionDrawGroup:
		outcome, err := h.drawer.DrawGroup(ctx, h.sessionID, a.Group)
		if err != nil {
			h.sendTo(c, errorMessage(a.Group, err))
			return
		}
		h.groupCompleted(ctx, outcome.Group, outcome.Winners)

	default:
		h.sendTo(c, Message{Type: MsgTypeError, Error: ErrMsgUnknownAction})
	}
}

// groupCompleted announces a finished group with every winner it had. drawn
// is what the last call committed and stands in if the ledger is unreadable.
func (h *Hub) groupCompleted(ctx context.Context, group string, drawn []domain.WinnerRecord) {
	winners := drawn
	ledger, err := h.drawer.Winners(ctx, h.sessionID)
	if err != nil {
		slog.Warn(LogMsgLedgerUnavailable, "session_id", h.sessionID, "group", group, "error", err)
	} else {
		winners = domain.WinnersOfGroup(ledger, group)
	}
	h.broadcast(Message{Type: MsgTypeGroupCompleted, Group: group, Winners: winners})
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for c := range h.clients {
		h.enqueue(c, data)
	}
}

func (h *Hub) sendTo(c *Client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.enqueue(c, data)
}

// enqueue never blocks the hub; a client whose buffer is full is dropped.
func (h *Hub) enqueue(c *Client, data []byte) {
	select {
	case c.send <- data:
	default:
		slog.Warn(LogMsgSlowClient, "session_id", h.sessionID, "client_id", c.id)
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.setCount(len(h.clients))
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

func errorMessage(group string, err error) Message {
	return Message{Type: MsgTypeError, Group: group, Error: err.Error()}
}
