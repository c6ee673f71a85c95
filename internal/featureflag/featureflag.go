// Package featureflag evaluates feature flags for the feed pipeline.
//
// Evaluation is a pure function over configuration passed in at construction:
// a global kill switch, per-flag defaults, per-tenant overrides, and a
// percentage rollout with sticky per-user bucketing. The kill switch always
// wins, so a disabled flag can never be re-enabled by a tenant override.
package featureflag

import (
	"crypto/md5"
	"encoding/binary"
)

// FlagPersonalization gates the personalized ranking pipeline.
const FlagPersonalization = "personalization"

// Config holds the flag state evaluated by a Gate.
type Config struct {
	// KillSwitch forces every flag off regardless of defaults and overrides.
	KillSwitch bool

	// Defaults maps flag names to their global default value.
	Defaults map[string]bool

	// Overrides maps tenant ID to per-flag overrides for that tenant.
	Overrides map[string]map[string]bool

	// RolloutPercent is the share of users (0-100) admitted to flagged
	// behavior. 100 admits everyone.
	RolloutPercent int
}

// Gate resolves effective flag values. It is immutable after construction and
// safe for concurrent use.
type Gate struct {
	killSwitch     bool
	defaults       map[string]bool
	overrides      map[string]map[string]bool
	rolloutPercent int
}

// New creates a Gate from the given configuration.
func New(cfg Config) *Gate {
	percent := cfg.RolloutPercent
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return &Gate{
		killSwitch:     cfg.KillSwitch,
		defaults:       cfg.Defaults,
		overrides:      cfg.Overrides,
		rolloutPercent: percent,
	}
}

// Enabled resolves the effective value of a flag for a tenant.
// Precedence: kill switch, then tenant override, then global default,
// then false.
func (g *Gate) Enabled(tenantID, flag string) bool {
	if g.killSwitch {
		return false
	}
	if tenant, ok := g.overrides[tenantID]; ok {
		if v, ok := tenant[flag]; ok {
			return v
		}
	}
	return g.defaults[flag]
}

// EnabledForUser resolves a flag for a specific user, additionally applying
// the percentage rollout. Bucketing is a stable hash of the user ID, so a
// user's assignment does not flap between requests.
func (g *Gate) EnabledForUser(tenantID, userID, flag string) bool {
	if !g.Enabled(tenantID, flag) {
		return false
	}
	if g.rolloutPercent >= 100 {
		return true
	}
	return int(bucket(userID)) < g.rolloutPercent
}

// KillSwitchActive reports whether the global kill switch is engaged.
func (g *Gate) KillSwitchActive() bool {
	return g.killSwitch
}

// bucket maps a user ID to a stable value in [0,100).
func bucket(userID string) uint32 {
	sum := md5.Sum([]byte(userID))
	return binary.BigEndian.Uint32(sum[:4]) % 100
}
