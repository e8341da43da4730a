// Package metrics defines and registers all custom Prometheus metrics for the
// library portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on GET /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portal"

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Labels:
//   - required: the role the route requires ("USER", "ADMIN")
//   - reason: "allowed", "unauthenticated" or "role_mismatch"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by required role and outcome.",
	},
	[]string{"required", "reason"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state changes.
// Labels:
//   - reason: "rehydrated", "logged_in", "logged_out" or "expired"
//   - role: the role that started or ended
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session transitions, by reason and role.",
	},
	[]string{"reason", "role"},
)

// SessionEventsDroppedTotal counts session events discarded because the
// dispatcher worker was saturated.
var SessionEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_dropped_total",
		Help:      "Total number of session events dropped on a full worker buffer.",
	},
)

// SessionEventsQueueDepth tracks the events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SessionEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_events_queue_depth",
		Help:      "Current number of session events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts outgoing backend requests.
// Labels:
//   - code: HTTP status code of the response
//   - method: HTTP method
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the library backend.",
	},
	[]string{"code", "method"},
)

// BackendRequestDuration measures backend round trips.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests sent to the library backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// InstrumentBackend wraps the backend transport with the request metrics.
func InstrumentBackend(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(BackendRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(BackendRequestDuration, next))
}

// RegisterLiveSessions exposes the number of sessions held in memory. It must
// be called at most once per process.
func RegisterLiveSessions(count func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_sessions",
		Help:      "Number of browser sessions currently held in memory.",
	}, func() float64 { return float64(count()) })
}
