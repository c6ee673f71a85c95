// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed metrics track the outcome of feed assembly per tenant.
var (
	// FeedRequestsTotal counts feed requests by tenant and result
	// (personalized, fallback, error).
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed requests",
		},
		[]string{"tenant", "result"},
	)

	// FeedRequestDuration measures end-to-end feed assembly duration in seconds.
	// Buckets are tuned for a pipeline whose budget is tens of milliseconds.
	FeedRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_request_duration_seconds",
			Help:    "Feed assembly duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"tenant"},
	)

	// FeedFallbackTotal counts degraded responses by the reason the pipeline
	// fell back (kill_switch, flag_disabled, rollout, breaker_open,
	// dependency_failure, tenant_config).
	FeedFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fallback_total",
			Help: "Total number of fallback feed responses by reason",
		},
		[]string{"tenant", "reason"},
	)

	// FeedItemsReturned measures how many items each response carried.
	FeedItemsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_items_returned",
			Help:    "Number of items returned per feed response",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		},
	)
)

// Resilience metrics expose circuit breaker and cache behavior.
var (
	// CircuitBreakerState exposes the breaker state as a gauge
	// (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"circuit"},
	)

	// CacheOperationsTotal counts cache lookups by cache name and result (hit, miss).
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache lookups by result",
		},
		[]string{"cache", "result"},
	)

	// CacheEntriesSwept counts entries removed by the background janitor.
	CacheEntriesSwept = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_entries_swept_total",
			Help: "Total number of expired cache entries removed by the janitor",
		},
		[]string{"cache"},
	)
)
