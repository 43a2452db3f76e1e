package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric
const Namespace = "luckydraw"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Draw metric names
const (
	MetricNameDrawsTotal      = "draws_total"
	MetricNameDrawDuration    = "draw_duration_seconds"
	MetricNameWinnersDrawn    = "winners_drawn_total"
	MetricNameGroupsCompleted = "groups_completed_total"
	MetricNameSessionsCreated = "sessions_created_total"
	MetricNameSessionsActive  = "sessions_active"
	MetricNameLiveConnections = "live_connections"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Draw metric help text
const (
	HelpTextDrawsTotal      = "Total number of draw requests by mode and outcome"
	HelpTextDrawDuration    = "Time spent inside the draw engine in seconds"
	HelpTextWinnersDrawn    = "Total number of winners committed to a ledger"
	HelpTextGroupsCompleted = "Total number of prize groups fully drawn"
	HelpTextSessionsCreated = "Total number of draw sessions created"
	HelpTextSessionsActive  = "Current number of live draw sessions"
	HelpTextLiveConnections = "Current number of live SSE and stage connections"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelMode      = "mode"
	LabelOutcome   = "outcome"
	LabelTransport = "transport"
)

// Label values
const (
	ModeGroup = "group"
	ModeNext  = "next"

	OutcomeSuccess        = "success"
	OutcomeUnknownGroup   = "unknown_group"
	OutcomeInsufficient   = "insufficient_participants"
	OutcomeInProgress     = "group_in_progress"
	OutcomeRandomFailure  = "random_failure"
	OutcomeSessionMissing = "session_not_found"
	OutcomeError          = "error"

	TransportSSE   = "sse"
	TransportStage = "stage"

	// PathUnmatched labels requests that matched no route
	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// DrawLatencyBuckets covers draws from tens of microseconds to 100ms.
var DrawLatencyBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected type"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
