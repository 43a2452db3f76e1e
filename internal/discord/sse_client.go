package discord

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// SSEEvent is one event read from the API stream
type SSEEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// SSEEventHandler handles a specific event type
type SSEEventHandler func(event SSEEvent) error

// SSEClient follows the API event stream and reconnects with backoff
type SSEClient struct {
	baseURL    string
	apiKey     string
	eventTypes []string
	sessionID  string
	handlers   map[string][]SSEEventHandler
	httpClient *http.Client

	mu        sync.RWMutex
	connected bool

	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSSEClient creates a client for the given event types. A non-empty
// sessionID limits the stream to that session.
func NewSSEClient(baseURL, apiKey string, eventTypes []string, sessionID string) *SSEClient {
	return &SSEClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		eventTypes: eventTypes,
		sessionID:  sessionID,
		handlers:   make(map[string][]SSEEventHandler),
		// No timeout: the stream stays open
		httpClient: &http.Client{},
		shutdown:   make(chan struct{}),
	}
}

// OnEvent registers a handler for a specific event type
func (c *SSEClient) OnEvent(eventType string, handler SSEEventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

// Start begins the SSE connection with auto-reconnect
func (c *SSEClient) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop shuts the client down and waits for the reader to exit
func (c *SSEClient) Stop() {
	c.stopOnce.Do(func() { close(c.shutdown) })
	c.wg.Wait()
}

// IsConnected returns true while a stream is open
func (c *SSEClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *SSEClient) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

func (c *SSEClient) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	// The stream request must also end on Stop, not only on ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	backoff := sseInitialBackoff
	consecutiveFailures := 0

	for {
		if ctx.Err() != nil {
			slog.Info(sseLogMsgClientStopped)
			return
		}

		opened, err := c.connect(ctx)
		c.setConnected(false)
		if ctx.Err() != nil {
			slog.Info(sseLogMsgClientStopped)
			return
		}
		if opened {
			backoff = sseInitialBackoff
			consecutiveFailures = 0
		}

		consecutiveFailures++
		slog.Warn(sseLogMsgConnectionFailed,
			"error", err,
			"backoff", backoff,
			"consecutive_failures", consecutiveFailures)

		select {
		case <-time.After(backoff):
			backoff = time.Duration(float64(backoff) * sseBackoffMultiplier)
			if backoff > sseMaxBackoff {
				backoff = sseMaxBackoff
			}
		case <-ctx.Done():
			slog.Info(sseLogMsgClientStopped)
			return
		}
	}
}

func (c *SSEClient) streamURL() string {
	q := url.Values{}
	if len(c.eventTypes) > 0 {
		q.Set("types", strings.Join(c.eventTypes, ","))
	}
	if c.sessionID != "" {
		q.Set("session_id", c.sessionID)
	}
	target := c.baseURL + sseEventsPath
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	return target
}

// errStreamClosed is returned when the server ends an open stream
var errStreamClosed = errors.New("stream closed by server")

// connect reads one stream until it ends. opened reports whether the stream
// was established, so the caller can reset its backoff.
func (c *SSEClient) connect(ctx context.Context) (opened bool, err error) {
	target := c.streamURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	c.setConnected(true)
	slog.Info(sseLogMsgClientConnected, "url", target)

	return true, c.readEvents(resp.Body)
}

func (c *SSEClient) readEvents(body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, sseBufferSize), sseBufferSize)

	var eventID, eventType string
	var data strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			if data.Len() > 0 {
				c.dispatchEvent(eventID, eventType, data.String())
			}
			eventID, eventType = "", ""
			data.Reset()
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "id":
			eventID = value
		case "event":
			eventType = value
		case "data":
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stream: %w", err)
	}
	return errStreamClosed
}

func (c *SSEClient) dispatchEvent(id, eventType, data string) {
	if eventType == "keepalive" || eventType == "connected" {
		return
	}

	var event SSEEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "data", data)
		return
	}
	if eventType != "" {
		event.Type = eventType
	}
	if id != "" {
		event.ID = id
	}
	if c.sessionID != "" && event.SessionID != "" && event.SessionID != c.sessionID {
		return
	}

	c.mu.RLock()
	handlers := c.handlers[event.Type]
	c.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			slog.Error(sseLogMsgHandlerError,
				"event_type", event.Type,
				"error", err)
		}
	}
}
