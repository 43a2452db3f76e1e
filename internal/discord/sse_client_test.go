package discord

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseFrame(eventType, sessionID, payload string) string {
	return fmt.Sprintf("id: evt-1\nevent: %s\ndata: {\"type\":%q,\"session_id\":%q,\"timestamp\":1,\"payload\":%s}\n\n",
		eventType, eventType, sessionID, payload)
}

type recorder struct {
	mu     sync.Mutex
	events []SSEEvent
}

func (r *recorder) handle(e SSEEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestSSEClient_StreamURL(t *testing.T) {
	c := NewSSEClient("http://api:8080", "", AnnouncedEventTypes, testSessionID.String())
	u, err := url.Parse(c.streamURL())
	require.NoError(t, err)

	assert.Equal(t, sseEventsPath, u.Path)
	assert.Equal(t, SSEEventTypeWinnerDrawn+","+SSEEventTypeGroupCompleted, u.Query().Get("types"))
	assert.Equal(t, testSessionID.String(), u.Query().Get("session_id"))

	bare := NewSSEClient("http://api:8080", "", nil, "")
	assert.Equal(t, "http://api:8080"+sseEventsPath, bare.streamURL())
}

func TestSSEClient_ReadEvents(t *testing.T) {
	c := NewSSEClient("", "", nil, testSessionID.String())
	rec := &recorder{}
	c.OnEvent(SSEEventTypeWinnerDrawn, rec.handle)

	stream := strings.Join([]string{
		"event: connected\ndata: {}\n\n",
		sseFrame(SSEEventTypeWinnerDrawn, testSessionID.String(), `{"prizes_left":1}`),
		"event: keepalive\ndata: {\"type\":\"keepalive\"}\n\n",
		sseFrame(SSEEventTypeWinnerDrawn, "other-session", `{"prizes_left":0}`),
		sseFrame(SSEEventTypeGroupCompleted, testSessionID.String(), `{}`),
		"event: draw.winner_drawn\ndata: not-json\n\n",
	}, "")

	err := c.readEvents(strings.NewReader(stream))
	assert.ErrorIs(t, err, errStreamClosed)

	require.Equal(t, 1, rec.count())
	got := rec.events[0]
	assert.Equal(t, "evt-1", got.ID)
	assert.Equal(t, SSEEventTypeWinnerDrawn, got.Type)
	assert.JSONEq(t, `{"prizes_left":1}`, string(got.Payload))
}

func TestSSEClient_ConnectsAndStops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = fmt.Fprint(w, sseFrame(SSEEventTypeWinnerDrawn, "", `{"prizes_left":0}`))
		flusher.Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewSSEClient(srv.URL, "key", []string{SSEEventTypeWinnerDrawn}, "")
	rec := &recorder{}
	c.OnEvent(SSEEventTypeWinnerDrawn, rec.handle)

	c.Start(context.Background())
	assert.Eventually(t, func() bool { return rec.count() == 1 && c.IsConnected() }, 2*time.Second, 10*time.Millisecond)

	c.Stop()
	assert.False(t, c.IsConnected())
	c.Stop()
}
