package discord

import (
	"time"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
)

// SSE client configuration
const (
	sseInitialBackoff    = 1 * time.Second
	sseMaxBackoff        = 30 * time.Second
	sseBackoffMultiplier = 2.0
	sseBufferSize        = 64 * 1024
	sseEventsPath        = "/api/v1/events"
)

// SSE event types the bot announces
const (
	SSEEventTypeWinnerDrawn    = domain.EventTypeWinnerDrawn
	SSEEventTypeGroupCompleted = domain.EventTypeGroupCompleted
	SSEEventTypeSessionCreated = domain.EventTypeSessionCreated
)

// SSE log messages
const (
	sseLogMsgClientConnected   = "SSE client connected"
	sseLogMsgClientStopped     = "SSE client stopped"
	sseLogMsgConnectionFailed  = "SSE connection failed"
	sseLogMsgParseError        = "Failed to parse SSE event"
	sseLogMsgHandlerError      = "SSE event handler error"
	sseLogMsgNotificationSent  = "Discord announcement sent"
	sseLogMsgNotificationError = "Failed to send Discord announcement"
)
