package metrics

import (
	"time"

	"github.com/sony/gobreaker"
)

// RecordFeedServed records the outcome of one feed request.
func RecordFeedServed(tenantID string, personalized bool, items int, duration time.Duration) {
	result := "fallback"
	if personalized {
		result = "personalized"
	}
	FeedRequestsTotal.WithLabelValues(tenantID, result).Inc()
	FeedRequestDuration.WithLabelValues(tenantID).Observe(duration.Seconds())
	FeedItemsReturned.Observe(float64(items))
}

// RecordFeedError records a feed request that surfaced an explicit error.
func RecordFeedError(tenantID string) {
	FeedRequestsTotal.WithLabelValues(tenantID, "error").Inc()
}

// RecordFallback records why a request degraded to the fallback feed.
func RecordFallback(tenantID, reason string) {
	FeedFallbackTotal.WithLabelValues(tenantID, reason).Inc()
}

// RecordCacheLookup records a cache hit or miss for the named cache.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheOperationsTotal.WithLabelValues(cache, result).Inc()
}

// RecordCacheSweep records entries reclaimed by the janitor.
func RecordCacheSweep(cache string, removed int) {
	if removed > 0 {
		CacheEntriesSwept.WithLabelValues(cache).Add(float64(removed))
	}
}

// UpdateBreakerState publishes the current breaker state as a gauge.
func UpdateBreakerState(circuit string, state gobreaker.State) {
	var v float64
	switch state {
	case gobreaker.StateClosed:
		v = 0
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	CircuitBreakerState.WithLabelValues(circuit).Set(v)
}
