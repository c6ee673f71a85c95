package repository

import (
	"context"

	"feedrank/internal/domain/entity"
)

// TenantConfigRepository provides access to per-tenant ranking configuration.
type TenantConfigRepository interface {
	// Get returns the config for a tenant. Unknown tenants return an error
	// wrapping entity.ErrNotFound.
	Get(ctx context.Context, tenantID string) (entity.TenantConfig, error)
}
