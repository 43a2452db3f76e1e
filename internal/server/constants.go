package server

import "github.com/osse101/LuckyDraw_Go/internal/handler"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth  = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertAuthLockout = "⚠️ SECURITY ALERT: Client locked out after repeated bad API keys"
	SecurityAlertHighRate    = "⚠️ SECURITY ALERT: Blocking high request rate"
	SecurityAlertDrawRate    = "⚠️ SECURITY ALERT: Blocking repeated draw requests"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgAuthDisabled     = "API key not configured, /api routes are unauthenticated"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// QueryParamAPIKey carries the key for clients that cannot set headers
// (EventSource and browser websockets).
const QueryParamAPIKey = "api_key"

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Public path prefixes that bypass authentication
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// quietPaths are not logged per request
var quietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

// Rate limiting. Draw requests count against both budgets.
const (
	RateWindowMinutes      = 5
	RateLimitPerWindow     = 1000
	DrawRateLimitPerWindow = 120
	FailedAuthAlertAtCount = 5
	FailedAuthLockoutCount = 20
)

// Draw routes, matched by suffix on POST requests
const (
	DrawPathSuffix     = "/draws"
	DrawNextPathSuffix = "/draws/next"
)

// MaxRequestBytes caps every request body; multipart uploads need headroom
// above the dataset limit for form boundaries.
const MaxRequestBytes = handler.MaxUploadBytes + 1<<20

// Server timeouts. Write timeout is left unset so SSE and websocket
// connections can stay open.
const (
	ReadHeaderTimeoutSeconds = 5
	IdleTimeoutSeconds       = 120
)
