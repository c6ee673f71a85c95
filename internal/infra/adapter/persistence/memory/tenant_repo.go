package memory

import (
	"context"
	"fmt"
	"sync"

	"feedrank/internal/domain/entity"
)

// TenantConfigRepo is an in-memory TenantConfigRepository.
type TenantConfigRepo struct {
	mu      sync.RWMutex
	configs map[string]entity.TenantConfig
}

// NewTenantConfigRepo creates an empty tenant config repository.
func NewTenantConfigRepo() *TenantConfigRepo {
	return &TenantConfigRepo{configs: make(map[string]entity.TenantConfig)}
}

// Get returns the tenant's config. Unknown tenants return an error wrapping
// entity.ErrNotFound so the caller can distinguish a missing tenant from a
// store failure.
func (r *TenantConfigRepo) Get(ctx context.Context, tenantID string) (entity.TenantConfig, error) {
	if err := ctx.Err(); err != nil {
		return entity.TenantConfig{}, err
	}

	r.mu.RLock()
	cfg, ok := r.configs[tenantID]
	r.mu.RUnlock()

	if !ok {
		return entity.TenantConfig{}, fmt.Errorf("tenant %q: %w", tenantID, entity.ErrNotFound)
	}
	return cfg, nil
}

// Put stores the config, normalized so defaults are filled in once at write time.
func (r *TenantConfigRepo) Put(cfg entity.TenantConfig) {
	r.mu.Lock()
	r.configs[cfg.TenantID] = cfg.Normalize()
	r.mu.Unlock()
}
