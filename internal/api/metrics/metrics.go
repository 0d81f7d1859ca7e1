// Package metrics defines and registers all custom Prometheus metrics for the
// stress tracking API. It is the single source of truth for metric names,
// labels, and help strings. Metrics are registered with the default registry
// at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stresstrack"

// EntriesCreatedTotal counts daily entries successfully persisted.
var EntriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of daily entries persisted.",
	},
)

// PredictionsTotal counts prediction attempts at entry creation.
// Label:
//   - outcome: "attached" (prediction row written) or "unavailable"
//     (model service failure, entry kept without a prediction)
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of prediction attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// PredictionRequestDuration measures the latency of model service calls.
// Label:
//   - outcome: "attached" on success, "unavailable" on any failure
var PredictionRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_request_duration_seconds",
		Help:      "Duration of model service prediction calls.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"outcome"},
)

// PredictionCacheTotal counts prediction cache decisions.
// Label:
//   - result: "hit" (remote call skipped) or "miss"
var PredictionCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_cache_total",
		Help:      "Total number of prediction cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
