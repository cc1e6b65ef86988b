// Package metrics defines and registers all custom Prometheus metrics for the
// skill swap API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation (promauto); the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillswap"

// Result label values shared by the counters below.
const (
	ResultOK        = "ok"
	ResultInvalid   = "invalid_transition"
	ResultForbidden = "forbidden"
	ResultConflict  = "conflict"
	ResultNotFound  = "not_found"
	ResultError     = "error"
	ResultCreated   = "created"
	ResultReplayed  = "replayed"
	ResultDuplicate = "duplicate"
	CacheHit        = "hit"
	CacheMiss       = "miss"
	CacheDisabled   = "disabled"
	CacheError      = "error"
)

// ── Swap lifecycle metrics ───────────────────────────────────────────────────

// SwapTransitionsTotal counts transition attempts.
// Labels:
//   - from: the stored state at the time of the attempt ("" when unknown)
//   - to: the requested state
//   - result: ok, invalid_transition, forbidden, conflict, not_found, error
var SwapTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swap_transitions_total",
		Help:      "Total number of swap state transition attempts, by outcome.",
	},
	[]string{"from", "to", "result"},
)

// SwapsCreatedTotal counts swap proposals.
// Label:
//   - result: created, replayed (idempotent replay) or duplicate (open swap exists)
var SwapsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swaps_created_total",
		Help:      "Total number of swap proposals, by outcome.",
	},
	[]string{"result"},
)

// ── Matching metrics ─────────────────────────────────────────────────────────

// MatchRequestsTotal counts match computations by cache outcome.
// Label:
//   - cache: hit, miss, disabled or error
var MatchRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_requests_total",
		Help:      "Total number of match requests, labelled by cache outcome.",
	},
	[]string{"cache"},
)

// MatchDuration measures a full matcher run (excluding cache hits).
var MatchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_duration_seconds",
		Help:      "Duration of a matcher run over the full skill catalog.",
		Buckets:   prometheus.DefBuckets,
	},
)

// MatchCandidates observes how many candidates a matcher run returned.
var MatchCandidates = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_candidates",
		Help:      "Number of candidates returned per matcher run.",
		Buckets:   []float64{0, 1, 2, 5, 10, 15, 20},
	},
)

// ── Event metrics ────────────────────────────────────────────────────────────

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of swap events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventProcessingDuration measures how long a single swap event takes to process.
// Label:
//   - to: the state the event moved the swap to, or "error" on failure
var EventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_processing_duration_seconds",
		Help:      "Duration of swap event processing from dequeue to audit write.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"to"},
)

// EventsErrorsTotal counts swap events that failed processing.
// Label:
//   - reason: "audit_insert" or "notify"
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of swap event processing failures.",
	},
	[]string{"reason"},
)
