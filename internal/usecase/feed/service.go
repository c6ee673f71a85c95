package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"feedrank/internal/domain/entity"
	"feedrank/internal/featureflag"
	"feedrank/internal/observability/logging"
	"feedrank/internal/observability/metrics"
	"feedrank/internal/observability/tracing"
	"feedrank/internal/repository"
	"feedrank/internal/resilience/circuitbreaker"
	"feedrank/internal/usecase/ranking"
	"feedrank/pkg/cache"
)

// Default assembly settings. Timeout budgets are per stage: the config stage
// runs under CacheTimeout, the fetch-and-rank stage under RankingTimeout, so
// the worst-case total is their sum.
const (
	DefaultRankingTimeout  = 500 * time.Millisecond
	DefaultCacheTimeout    = 200 * time.Millisecond
	DefaultMaxLimit        = 50
	DefaultLimit           = 20
	DefaultSignalTTL       = 30 * time.Second
	DefaultTenantConfigTTL = time.Minute
)

// Fallback reasons recorded on metrics and logs.
const (
	reasonKillSwitch   = "kill_switch"
	reasonFlagDisabled = "flag_disabled"
	reasonRollout      = "rollout_excluded"
	reasonBreakerOpen  = "breaker_open"
	reasonFetchFailed  = "fetch_failed"
	reasonConfigFailed = "config_unavailable"
)

// Query identifies one feed request.
type Query struct {
	TenantID string
	UserID   string
	Limit    int
	Cursor   string
}

// Feed is the assembled result. Personalized is false whenever the ranking
// pipeline was bypassed; Degraded is true only when a personalization attempt
// was made against the dependency path and failed.
type Feed struct {
	Items        []entity.ScoredCandidate
	Personalized bool
	Degraded     bool
	NextCursor   string
	HasMore      bool
}

// Config tunes the assembler. Zero values fall back to the package defaults.
type Config struct {
	RankingTimeout  time.Duration
	CacheTimeout    time.Duration
	MaxLimit        int
	SignalTTL       time.Duration
	TenantConfigTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.RankingTimeout <= 0 {
		c.RankingTimeout = DefaultRankingTimeout
	}
	if c.CacheTimeout <= 0 {
		c.CacheTimeout = DefaultCacheTimeout
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = DefaultMaxLimit
	}
	if c.SignalTTL <= 0 {
		c.SignalTTL = DefaultSignalTTL
	}
	if c.TenantConfigTTL <= 0 {
		c.TenantConfigTTL = DefaultTenantConfigTTL
	}
	return c
}

// Deps are the collaborators the assembler orchestrates.
type Deps struct {
	Candidates repository.CandidateRepository
	Signals    repository.SignalRepository
	Tenants    repository.TenantConfigRepository
	Breaker    *circuitbreaker.CircuitBreaker
	Flags      *featureflag.Gate
	Scorers    *ranking.Registry
	Clock      cache.Clock
}

// Service assembles feeds. Safe for concurrent use.
type Service struct {
	deps Deps
	cfg  Config

	candidateCache *cache.Cache[[]entity.Candidate]
	signalCache    *cache.Cache[entity.UserSignal]
	tenantCache    *cache.Cache[entity.TenantConfig]
}

// NewService wires an assembler. Caches share the injected clock so tests can
// control expiry.
func NewService(deps Deps, cfg Config) *Service {
	cfg = cfg.withDefaults()
	if deps.Clock == nil {
		deps.Clock = &cache.SystemClock{}
	}
	if deps.Scorers == nil {
		deps.Scorers = ranking.NewRegistry()
	}
	return &Service{
		deps: deps,
		cfg:  cfg,
		candidateCache: cache.New[[]entity.Candidate](cache.Config{
			DefaultTTL: entity.DefaultCacheTTL,
			Clock:      deps.Clock,
		}),
		signalCache: cache.New[entity.UserSignal](cache.Config{
			DefaultTTL: cfg.SignalTTL,
			Clock:      deps.Clock,
		}),
		tenantCache: cache.New[entity.TenantConfig](cache.Config{
			DefaultTTL: cfg.TenantConfigTTL,
			Clock:      deps.Clock,
		}),
	}
}

// MaintainedCache is the maintenance view of an assembler cache.
type MaintainedCache interface {
	Sweep() int
	Len() int
}

// Caches exposes the assembler's caches for sweeps and health reporting.
func (s *Service) Caches() map[string]MaintainedCache {
	return map[string]MaintainedCache{
		"candidates": s.candidateCache,
		"signals":    s.signalCache,
		"tenants":    s.tenantCache,
	}
}

// GetFeed returns a ranked feed for the query. Dependency failures never
// surface to the caller: the result degrades to the trending fallback instead.
// The only errors returned are ErrInvalidLimit, ErrTenantNotFound, and
// ErrNoCandidates.
func (s *Service) GetFeed(ctx context.Context, q Query) (*Feed, error) {
	start := s.deps.Clock.Now()
	ctx, span := tracing.StartFeedSpan(ctx, q.TenantID, q.UserID)
	defer span.End()
	log := logging.FromContext(ctx).With("tenant_id", q.TenantID, "user_id", q.UserID)

	if q.Limit <= 0 || q.Limit > s.cfg.MaxLimit {
		metrics.RecordFeedError(q.TenantID)
		return nil, fmt.Errorf("%w: limit %d must be in 1..%d", ErrInvalidLimit, q.Limit, s.cfg.MaxLimit)
	}

	cfg, err := s.tenantConfig(ctx, q.TenantID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			metrics.RecordFeedError(q.TenantID)
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, q.TenantID)
		}
		// Transient config-store failure: serve the fallback under default
		// tuning rather than fail the request.
		log.Warn("tenant config unavailable, serving fallback", "error", err)
		cfg = entity.DefaultTenantConfig(q.TenantID)
		return s.fallback(ctx, q, cfg, reasonConfigFailed, true, start), nil
	}

	if reason, ok := s.gated(q); ok {
		return s.fallback(ctx, q, cfg, reason, false, start), nil
	}

	done, ok := s.deps.Breaker.Allow()
	if !ok {
		log.Warn("circuit breaker open, serving fallback")
		return s.fallback(ctx, q, cfg, reasonBreakerOpen, true, start), nil
	}

	candidates, sig, err := s.fetch(ctx, q.TenantID, q.UserID, cfg)
	if err != nil {
		done(false)
		metrics.UpdateBreakerState(s.deps.Breaker.Name(), s.deps.Breaker.State())
		log.Warn("personalization fetch failed, serving fallback", "error", err)
		return s.fallback(ctx, q, cfg, reasonFetchFailed, true, start), nil
	}
	done(true)
	metrics.UpdateBreakerState(s.deps.Breaker.Name(), s.deps.Breaker.State())

	if len(candidates) == 0 {
		metrics.RecordFeedError(q.TenantID)
		return nil, fmt.Errorf("%w: tenant %s", ErrNoCandidates, q.TenantID)
	}

	scorer := s.deps.Scorers.Resolve(cfg.Strategy)
	ranked := ranking.Rank(candidates, sig, cfg, scorer, s.deps.Clock.Now())

	feed := paginate(ranked, decodeCursor(q.Cursor), q.Limit)
	feed.Personalized = true

	metrics.RecordFeedServed(q.TenantID, true, len(feed.Items), s.deps.Clock.Now().Sub(start))
	log.Info("feed served",
		"personalized", true,
		"items", len(feed.Items),
		"strategy", cfg.Strategy,
	)
	return feed, nil
}

// gated reports whether personalization is disabled for this request and why.
func (s *Service) gated(q Query) (string, bool) {
	switch {
	case s.deps.Flags == nil:
		return "", false
	case s.deps.Flags.KillSwitchActive():
		return reasonKillSwitch, true
	case !s.deps.Flags.Enabled(q.TenantID, featureflag.FlagPersonalization):
		return reasonFlagDisabled, true
	case !s.deps.Flags.EnabledForUser(q.TenantID, q.UserID, featureflag.FlagPersonalization):
		return reasonRollout, true
	}
	return "", false
}

// tenantConfig resolves the tenant's config through the cache. The store call
// runs under the cache-stage budget.
func (s *Service) tenantConfig(ctx context.Context, tenantID string) (entity.TenantConfig, error) {
	if cfg, ok := s.tenantCache.Get(tenantID); ok {
		metrics.RecordCacheLookup("tenants", true)
		return cfg, nil
	}
	metrics.RecordCacheLookup("tenants", false)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.CacheTimeout)
	defer cancel()

	cfg, err := s.deps.Tenants.Get(ctx, tenantID)
	if err != nil {
		return entity.TenantConfig{}, err
	}
	cfg = cfg.Normalize()
	s.tenantCache.Set(tenantID, cfg, s.cfg.TenantConfigTTL)
	return cfg, nil
}

// fetch retrieves candidates and the user signal in parallel under the
// ranking-stage budget. Caches are consulted first and populated on a
// successful store read.
func (s *Service) fetch(ctx context.Context, tenantID, userID string, cfg entity.TenantConfig) ([]entity.Candidate, entity.UserSignal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RankingTimeout)
	defer cancel()

	var (
		candidates []entity.Candidate
		sig        entity.UserSignal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if cached, ok := s.candidateCache.Get(tenantID); ok {
			metrics.RecordCacheLookup("candidates", true)
			candidates = cached
			return nil
		}
		metrics.RecordCacheLookup("candidates", false)

		fetched, err := s.deps.Candidates.ListActive(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("list candidates: %w", err)
		}
		s.candidateCache.Set(tenantID, fetched, cfg.CacheTTL)
		candidates = fetched
		return nil
	})
	g.Go(func() error {
		if cached, ok := s.signalCache.Get(userID); ok {
			metrics.RecordCacheLookup("signals", true)
			sig = cached
			return nil
		}
		metrics.RecordCacheLookup("signals", false)

		fetched, err := s.deps.Signals.Get(gctx, userID)
		if err != nil {
			return fmt.Errorf("get signal: %w", err)
		}
		s.signalCache.Set(userID, fetched, s.cfg.SignalTTL)
		sig = fetched
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, entity.UserSignal{}, err
	}
	return candidates, sig, nil
}

// fallback serves the precomputed trending feed. It touches neither the
// breaker nor the ranking path, and a store failure here yields an empty feed
// rather than an error. Seen filtering is best effort from the signal cache.
func (s *Service) fallback(ctx context.Context, q Query, cfg entity.TenantConfig, reason string, degraded bool, start time.Time) *Feed {
	metrics.RecordFallback(q.TenantID, reason)
	if degraded {
		tracing.MarkDegraded(trace.SpanFromContext(ctx), reason)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RankingTimeout)
	defer cancel()

	sig := entity.EmptySignal(q.UserID)
	if cached, ok := s.signalCache.Get(q.UserID); ok {
		sig = cached
	}

	trending, err := s.deps.Candidates.ListTrending(ctx, q.TenantID)
	if err != nil {
		logging.FromContext(ctx).Warn("trending fetch failed, serving empty feed",
			"tenant_id", q.TenantID, "error", err)
		trending = nil
	}

	// Tenant content policy applies on the degraded path too.
	allowed := trending[:0]
	for _, c := range trending {
		if !cfg.Excludes(c) {
			allowed = append(allowed, c)
		}
	}

	items := ranking.FallbackOrder(allowed, sig)
	if len(items) > q.Limit {
		items = items[:q.Limit]
	}

	feed := &Feed{Items: items, Personalized: false, Degraded: degraded}
	metrics.RecordFeedServed(q.TenantID, false, len(feed.Items), s.deps.Clock.Now().Sub(start))
	return feed
}

// paginate slices the ranked list by cursor offset and limit.
func paginate(ranked []entity.ScoredCandidate, offset, limit int) *Feed {
	if offset >= len(ranked) {
		return &Feed{Items: []entity.ScoredCandidate{}}
	}

	end := offset + limit
	hasMore := end < len(ranked)
	if !hasMore {
		end = len(ranked)
	}

	feed := &Feed{
		Items:   ranked[offset:end],
		HasMore: hasMore,
	}
	if hasMore {
		feed.NextCursor = encodeCursor(end)
	}
	return feed
}
