package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Stream-only event types; draw events keep their bus type names
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Query parameters understood by Handler
const (
	QueryParamTypes   = "types"
	QueryParamSession = "session_id"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
)
