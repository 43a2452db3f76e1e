package draw

// ============================================================================
// Log Messages
// ============================================================================

// Log operation identifiers
const (
	LogMsgDrawGroupCalled = "DrawGroup called"
	LogMsgDrawNextCalled  = "DrawNext called"
)

// Info/Warning messages
const (
	LogMsgWinnerDrawn      = "Winner drawn"
	LogMsgGroupExhausted   = "Group exhausted"
	LogMsgDrawRejected     = "Draw rejected"
	LogMsgDuplicateIDFixed = "Participant ID reassigned"
)

// ============================================================================
// Error Messages (local to draw engine)
// ============================================================================

// Error context messages for wrapped errors
const (
	ErrContextPickFailed     = "failed to pick winner"
	ErrContextPickOutOfRange = "picker returned out-of-range index"
)

// Validation and state error messages
const (
	ErrMsgEmptyGroupName = "group name must not be empty"
)
