package ranking

// Strategy names resolvable through a Registry.
const (
	StrategyWeighted  = "weighted"
	StrategyFreshness = "freshness"
)

// Registry resolves scoring strategies by name. Adding a strategy means
// registering it here; the feed assembler's contract never changes.
type Registry struct {
	scorers  map[string]Scorer
	fallback Scorer
}

// NewRegistry creates a registry with the built-in strategies registered and
// WeightedScorer as the fallback for unknown names.
func NewRegistry() *Registry {
	r := &Registry{
		scorers:  make(map[string]Scorer),
		fallback: WeightedScorer{},
	}
	r.Register(StrategyWeighted, WeightedScorer{})
	r.Register(StrategyFreshness, FreshnessScorer{})
	return r
}

// Register adds or replaces a named strategy.
func (r *Registry) Register(name string, s Scorer) {
	r.scorers[name] = s
}

// Resolve returns the scorer for name, or the default strategy when the name
// is unknown or empty. Tenant configs may reference strategies that were
// removed; resolution must still produce a usable scorer.
func (r *Registry) Resolve(name string) Scorer {
	if s, ok := r.scorers[name]; ok {
		return s
	}
	return r.fallback
}
