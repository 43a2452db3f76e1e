package stage

import "time"

// Connection settings
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// SendBuffer is the number of outgoing messages queued per connection
	SendBuffer = 32

	// ActionTimeout bounds one draw triggered from the stage
	ActionTimeout = 10 * time.Second
)

// Roles
const (
	RolePresenter = "presenter"
	RoleViewer    = "viewer"
)

// Actions a presenter can send
const (
	ActionDrawNext  = "draw_next"
	ActionDrawGroup = "draw_group"
	ActionGroups    = "groups"
)

// Outgoing message types
const (
	MsgTypeWelcome        = "welcome"
	MsgTypeGroups         = "groups"
	MsgTypeWinner         = "winner"
	MsgTypeGroupCompleted = "group_completed"
	MsgTypeError          = "error"
	MsgTypeClosed         = "closed"
)

// Query parameters
const (
	QueryParamRole = "role"
)

// Error messages sent to clients
const (
	ErrMsgViewerCannotAct = "only the presenter can draw"
	ErrMsgUnknownAction   = "unknown action"
	ErrMsgBadMessage      = "message must be a JSON object with an action"
)

// Log messages
const (
	LogMsgClientJoined      = "Stage client joined"
	LogMsgClientLeft        = "Stage client left"
	LogMsgHubStarted        = "Stage hub started"
	LogMsgHubClosed         = "Stage hub closed"
	LogMsgUpgradeFailed     = "Stage websocket upgrade failed"
	LogMsgActionReceived    = "Stage action received"
	LogMsgReadError         = "Stage read error"
	LogMsgSlowClient        = "Stage client too slow, disconnecting"
	LogMsgLedgerUnavailable = "Stage could not read winners ledger"
)
