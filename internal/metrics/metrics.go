package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Draw Metrics
var (
	DrawsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameDrawsTotal,
			Help:      HelpTextDrawsTotal,
		},
		[]string{LabelMode, LabelOutcome},
	)

	DrawDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameDrawDuration,
			Help:      HelpTextDrawDuration,
			Buckets:   DrawLatencyBuckets,
		},
		[]string{LabelMode},
	)

	WinnersDrawn = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameWinnersDrawn,
			Help:      HelpTextWinnersDrawn,
		},
	)

	GroupsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameGroupsCompleted,
			Help:      HelpTextGroupsCompleted,
		},
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameSessionsCreated,
			Help:      HelpTextSessionsCreated,
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameSessionsActive,
			Help:      HelpTextSessionsActive,
		},
	)

	LiveConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameLiveConnections,
			Help:      HelpTextLiveConnections,
		},
		[]string{LabelTransport},
	)
)
