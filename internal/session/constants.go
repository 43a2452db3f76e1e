package session

import "time"

// Defaults used when the configuration leaves a limit unset
const (
	DefaultMaxSessions = 256
	DefaultTTL         = 12 * time.Hour
)

const (
	LogMsgSessionCreated = "Draw session created"
	LogMsgSessionReused  = "Draw session already initialized"
	LogMsgSessionDeleted = "Draw session deleted"
	LogMsgSessionEvicted = "Draw session evicted"
)

const (
	ErrContextInitSession = "failed to initialize session"
)
