// Package cache provides a framework-agnostic in-memory TTL cache.
//
// The cache fronts expensive lookups with short-lived entries. An entry is
// logically absent once its TTL has elapsed at read time, regardless of
// whether it has been physically removed; Sweep reclaims expired entries.
package cache

import (
	"sync"
	"time"
)

// Clock provides an abstraction for time operations to enable testing.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is a Clock implementation that uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// entry is a single cached value with its expiry deadline.
// A zero expiresAt means the entry never expires.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Cache is a thread-safe in-memory key/value store with per-entry TTLs.
//
// Reads take a read lock only, so a Get never serializes behind a Set of an
// unrelated key. Expired entries are treated as absent on read and removed
// physically by Sweep.
type Cache[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	defaultTTL time.Duration
	clock      Clock
}

// Config holds configuration for a Cache.
type Config struct {
	// DefaultTTL is applied when Set is called with a non-positive ttl.
	// Zero means entries without an explicit TTL never expire.
	DefaultTTL time.Duration

	// Clock provides time operations for testing. Default: SystemClock.
	Clock Clock
}

// New creates a cache with the given configuration.
func New[V any](cfg Config) *Cache[V] {
	if cfg.Clock == nil {
		cfg.Clock = &SystemClock{}
	}
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: cfg.DefaultTTL,
		clock:      cfg.Clock,
	}
}

// Get returns the value for key and whether it was present and unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || e.expired(c.clock.Now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. A non-positive ttl falls back to the cache's
// default TTL; if that is also zero the entry never expires.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.clock.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Delete removes key and reports whether it existed.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Sweep physically removes expired entries and returns the number removed.
// It is intended to be called periodically by a background janitor.
func (c *Cache[V]) Sweep() int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of physically retained entries, including any that
// have expired but not yet been swept.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
