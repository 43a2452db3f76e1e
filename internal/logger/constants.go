package logger

// Level names accepted in LOG_LEVEL
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Output formats accepted in LOG_FORMAT
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// DefaultServiceName names the API server in log lines
const DefaultServiceName = "luckydraw"

// Environment names
const (
	EnvironmentDev        = "dev"
	EnvironmentStaging    = "staging"
	EnvironmentProduction = "prod"
	EnvironmentTest       = "test"
)

// Attribute keys added to every line, or to lines logged with a request
// or session context
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeySessionID   = "session_id"
)
