package raffle

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgSessionReady      = "Draw session ready"
	LogMsgLoadingDatasets   = "Loading datasets"
	LogMsgDrawFailed        = "Draw failed"
	LogMsgGroupDrawn        = "Group drawn"
	LogMsgPrizeDrawn        = "Prize drawn"
	LogMsgPublishFailed     = "Failed to publish event"
	LogMsgServiceShutdown   = "Raffle service shutting down"
	LogMsgSessionDeleteFail = "Failed to delete session"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrContextLoadParticipants = "failed to load participants"
	ErrContextLoadPrizes       = "failed to load prizes"
	ErrContextDrawGroup        = "failed to draw group"
	ErrContextDrawNext         = "failed to draw next prize"
)

const (
	ErrMsgNoParticipants = "participants dataset is empty"
	ErrMsgNoPrizes       = "prizes dataset is empty"
)
