// Package feed assembles the personalized feed for one (tenant, user) request.
// It orchestrates tenant config resolution, the feature-flag gate, the circuit
// breaker, cached candidate and signal fetches, ranking, and the trending
// fallback, always producing a usable feed when the request itself is valid.
package feed

import "errors"

// Sentinel errors for feed assembly. Dependency failures are not represented
// here: the assembler recovers from them by serving the fallback feed.
var (
	// ErrInvalidLimit indicates the requested page size is zero, negative, or
	// above the configured maximum. Returned before any dependency is called.
	ErrInvalidLimit = errors.New("invalid feed limit")

	// ErrTenantNotFound indicates the tenant has no configuration. Unknown
	// tenants are a caller error, not a degradation.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrNoCandidates indicates the tenant's candidate pool is empty. An empty
	// inventory is a business condition, not a dependency failure.
	ErrNoCandidates = errors.New("no candidates available")
)
