// Package resilience provides reliability and fault tolerance patterns for the application.
//
// It currently contains the circuit breaker guarding the personalization
// pipeline's ranking dependency. Retry logic deliberately does not live here:
// the feed pipeline reports a single failure to the breaker and degrades to
// the fallback feed instead of retrying; any retry policy belongs to callers
// outside the core.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.RankingConfig())
//	done, ok := cb.Allow()
//	if !ok {
//	    return fallback()
//	}
//	result, err := rank(ctx)
//	done(err == nil)
package resilience
