package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "luckydraw_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingLuckyDraw   = "Starting LuckyDraw"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgSSESubscriberRegistered        = "SSE subscriber registered"
)

// =============================================================================
// Draw Components
// =============================================================================

const (
	LogMsgSeededPicker      = "Using seeded picker, draws are reproducible"
	LogMsgSecurePicker      = "Using crypto/rand picker"
	LogMsgSessionExpired    = "Session left the store"
	LogMsgDatasetCheckError = "default dataset unreadable"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownLive           = "Closing live connections..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
