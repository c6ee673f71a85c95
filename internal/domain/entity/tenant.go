package entity

import "time"

// Default tenant configuration values, applied when a tenant config omits a field.
const (
	DefaultRecencyHalfLife = 12 * time.Hour
	DefaultRecencyWeight   = 1.0
	DefaultAffinityWeight  = 1.0
	DefaultCacheTTL        = 30 * time.Second

	// DefaultStrategy is the scoring strategy used when a tenant does not name one.
	DefaultStrategy = "weighted"

	// DefaultFallbackStrategy orders the degraded feed by popularity.
	DefaultFallbackStrategy = "popularity"
)

// TenantConfig holds a tenant's ranking rules. One config exists per tenant and
// is read-only during a request.
type TenantConfig struct {
	TenantID string

	// RecencyHalfLife controls how fast the recency component decays:
	// a candidate this old scores half the recency weight.
	RecencyHalfLife time.Duration

	// RecencyWeight and AffinityWeight are the multipliers applied to the
	// recency and affinity score components.
	RecencyWeight  float64
	AffinityWeight float64

	// Strategy names the scoring strategy for this tenant. Unknown names
	// resolve to the default strategy at orchestration time.
	Strategy string

	// FallbackStrategy names the ordering used when personalization is
	// unavailable. Only "popularity" is currently implemented.
	FallbackStrategy string

	// CacheTTL bounds how long this tenant's candidates and signals may be
	// served from cache.
	CacheTTL time.Duration

	// ExcludeTags removes candidates carrying any of these tags before ranking.
	ExcludeTags []string

	// EditorialBoosts pins candidate IDs to fixed positions in the ranked feed.
	EditorialBoosts map[string]int
}

// DefaultTenantConfig returns a usable config for a tenant. It is used both to
// fill unset fields and as the degraded-mode config when the tenant store is
// unreachable.
func DefaultTenantConfig(tenantID string) TenantConfig {
	return TenantConfig{
		TenantID:         tenantID,
		RecencyHalfLife:  DefaultRecencyHalfLife,
		RecencyWeight:    DefaultRecencyWeight,
		AffinityWeight:   DefaultAffinityWeight,
		Strategy:         DefaultStrategy,
		FallbackStrategy: DefaultFallbackStrategy,
		CacheTTL:         DefaultCacheTTL,
	}
}

// Normalize fills zero-valued fields with defaults and returns the result.
// Weights of exactly zero are preserved: a tenant may deliberately disable a
// component, so only negative values are replaced.
func (c TenantConfig) Normalize() TenantConfig {
	if c.RecencyHalfLife <= 0 {
		c.RecencyHalfLife = DefaultRecencyHalfLife
	}
	if c.RecencyWeight < 0 {
		c.RecencyWeight = DefaultRecencyWeight
	}
	if c.AffinityWeight < 0 {
		c.AffinityWeight = DefaultAffinityWeight
	}
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}
	if c.FallbackStrategy == "" {
		c.FallbackStrategy = DefaultFallbackStrategy
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	return c
}

// Excludes reports whether the candidate carries a tag this tenant filters out.
func (c TenantConfig) Excludes(cand Candidate) bool {
	for _, tag := range c.ExcludeTags {
		if cand.HasTag(tag) {
			return true
		}
	}
	return false
}
