package sse

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event represents an event sent over SSE
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client represents a connected SSE client
type Client struct {
	ID           string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events, otherwise only specified types
	SessionID    string          // empty means every session
}

func (c *Client) wants(event Event) bool {
	if c.EventFilter != nil && !c.EventFilter[event.Type] {
		return false
	}
	if c.SessionID != "" && event.SessionID != "" && event.SessionID != c.SessionID {
		return false
	}
	return true
}

// Hub manages SSE client connections and event broadcasting
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		// Close all client channels
		h.mu.Lock()
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

// run is the main broadcast loop
func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.EventChannel)
				delete(h.clients, clientID)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if !client.wants(event) {
					continue
				}

				// Non-blocking send
				select {
				case client.EventChannel <- event:
				default:
					// Client buffer full, skip this event
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a new client to the hub. An empty sessionID subscribes to
// every session.
func (h *Hub) Register(eventTypes []string, sessionID string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
		SessionID:    sessionID,
	}

	// Set up event filter if specific types requested
	for _, t := range eventTypes {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if client.EventFilter == nil {
			client.EventFilter = make(map[string]bool)
		}
		client.EventFilter[t] = true
	}

	h.register <- client
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast sends an event to all interested clients
func (h *Hub) Broadcast(eventType, sessionID string, payload interface{}) {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- event:
	default:
		slog.Warn(LogMsgEventDropped, "type", eventType, "session_id", sessionID)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an SSE event for transmission
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	// SSE format: "id: <id>\nevent: <type>\ndata: <json>\n\n"
	var b strings.Builder
	if event.ID != "" {
		b.WriteString("id: " + event.ID + "\n")
	}
	b.WriteString("event: " + event.Type + "\n")
	b.WriteString("data: " + string(data) + "\n\n")

	return []byte(b.String()), nil
}
