// Package config loads the service configuration from environment variables
// and validates it at startup.
package config

import (
	"fmt"
	"time"

	"feedrank/pkg/config"
)

// Config is the full runtime configuration of the feed service.
type Config struct {
	// HTTPAddr is the listen address of the API server. Default: ":8080"
	HTTPAddr string

	// SeedFile is an optional YAML file loaded into the in-memory stores at
	// startup. Empty means the built-in demo dataset.
	SeedFile string

	Feed    FeedConfig
	Breaker BreakerConfig
	Flags   FlagConfig

	// RateLimitRPS is the per-client request budget per second. Default: 20
	RateLimitRPS float64
	// RateLimitBurst is the per-client burst headroom. Default: 40
	RateLimitBurst int

	// JanitorInterval is how often caches are swept and the trending lists
	// recomputed. Default: 30s
	JanitorInterval time.Duration
}

// FeedConfig tunes the feed assembler.
type FeedConfig struct {
	// RankingTimeout bounds the candidate and signal fetch plus ranking.
	// Default: 500ms
	RankingTimeout time.Duration
	// CacheTimeout bounds the tenant config resolution. Default: 200ms
	CacheTimeout time.Duration
	// MaxLimit is the largest accepted page size. Default: 50
	MaxLimit int
	// DefaultLimit is used when the request omits a limit. Default: 20
	DefaultLimit int
	// SignalTTL is the user-signal cache lifetime. Default: 30s
	SignalTTL time.Duration
	// TenantConfigTTL is the tenant-config cache lifetime. Default: 1m
	TenantConfigTTL time.Duration
}

// BreakerConfig tunes the ranking-path circuit breaker.
type BreakerConfig struct {
	// FailureThreshold is the consecutive-failure count that opens the
	// breaker. Default: 5
	FailureThreshold int
	// RecoveryTimeout is how long the breaker stays open before admitting a
	// probe. Default: 30s
	RecoveryTimeout time.Duration
}

// FlagConfig is the startup state of the feature-flag gate.
type FlagConfig struct {
	// KillSwitch disables personalization for every tenant when true.
	KillSwitch bool
	// PersonalizationEnabled is the global default of the personalization
	// flag. Default: true
	PersonalizationEnabled bool
	// RolloutPercentage is the share of users admitted to personalization,
	// 0..100. Default: 100
	RolloutPercentage int
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr: config.GetEnvString("HTTP_ADDR", ":8080"),
		SeedFile: config.GetEnvString("SEED_FILE", ""),
		Feed: FeedConfig{
			RankingTimeout:  config.GetEnvDuration("FEED_RANKING_TIMEOUT", 500*time.Millisecond),
			CacheTimeout:    config.GetEnvDuration("FEED_CACHE_TIMEOUT", 200*time.Millisecond),
			MaxLimit:        config.GetEnvInt("FEED_MAX_LIMIT", 50),
			DefaultLimit:    config.GetEnvInt("FEED_DEFAULT_LIMIT", 20),
			SignalTTL:       config.GetEnvDuration("SIGNAL_CACHE_TTL", 30*time.Second),
			TenantConfigTTL: config.GetEnvDuration("TENANT_CONFIG_CACHE_TTL", time.Minute),
		},
		Breaker: BreakerConfig{
			FailureThreshold: config.GetEnvInt("BREAKER_FAILURE_THRESHOLD", 5),
			RecoveryTimeout:  config.GetEnvDuration("BREAKER_RECOVERY_TIMEOUT", 30*time.Second),
		},
		Flags: FlagConfig{
			KillSwitch:             config.GetEnvBool("KILL_SWITCH_ACTIVE", false),
			PersonalizationEnabled: config.GetEnvBool("PERSONALIZATION_ENABLED", true),
			RolloutPercentage:      config.GetEnvInt("ROLLOUT_PERCENTAGE", 100),
		},
		RateLimitRPS:    config.GetEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  config.GetEnvInt("RATE_LIMIT_BURST", 40),
		JanitorInterval: config.GetEnvDuration("JANITOR_INTERVAL", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that would make the service misbehave at runtime.
func (c *Config) Validate() error {
	if err := config.ValidatePositiveDuration(c.Feed.RankingTimeout); err != nil {
		return fmt.Errorf("FEED_RANKING_TIMEOUT: %w", err)
	}
	if err := config.ValidatePositiveDuration(c.Feed.CacheTimeout); err != nil {
		return fmt.Errorf("FEED_CACHE_TIMEOUT: %w", err)
	}
	if err := config.ValidateDurationRange(c.Breaker.RecoveryTimeout, time.Second, time.Hour); err != nil {
		return fmt.Errorf("BREAKER_RECOVERY_TIMEOUT: %w", err)
	}
	if err := config.ValidatePositiveDuration(c.JanitorInterval); err != nil {
		return fmt.Errorf("JANITOR_INTERVAL: %w", err)
	}

	if c.Feed.MaxLimit <= 0 {
		return fmt.Errorf("FEED_MAX_LIMIT must be positive, got %d", c.Feed.MaxLimit)
	}
	if c.Feed.DefaultLimit <= 0 || c.Feed.DefaultLimit > c.Feed.MaxLimit {
		return fmt.Errorf("FEED_DEFAULT_LIMIT must be in 1..%d, got %d", c.Feed.MaxLimit, c.Feed.DefaultLimit)
	}
	if c.Breaker.FailureThreshold <= 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be positive, got %d", c.Breaker.FailureThreshold)
	}
	if c.Flags.RolloutPercentage < 0 || c.Flags.RolloutPercentage > 100 {
		return fmt.Errorf("ROLLOUT_PERCENTAGE must be in 0..100, got %d", c.Flags.RolloutPercentage)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}
