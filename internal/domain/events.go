package domain

// Event type constants used for event bus subscriptions, SSE streaming and
// metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "draw.winner_drawn")
const (
	// EventTypeSessionCreated is published when a new draw session is initialised
	EventTypeSessionCreated = "session.created"

	// EventTypeSessionDeleted is published when a session is removed explicitly
	EventTypeSessionDeleted = "session.deleted"

	// EventTypeWinnerDrawn is published once per prize, after the winner is committed
	EventTypeWinnerDrawn = "draw.winner_drawn"

	// EventTypeGroupCompleted is published when the last prize of a group is drawn
	EventTypeGroupCompleted = "draw.group_completed"

	// EventTypeDrawFailed is published when a draw request is rejected
	EventTypeDrawFailed = "draw.failed"
)
