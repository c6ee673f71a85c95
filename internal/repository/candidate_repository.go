// Package repository defines the data-access contracts consumed by the use cases.
// Implementations live under internal/infra/adapter/persistence; the in-memory
// adapter is the default and a networked store can be swapped in behind the
// same interfaces.
package repository

import (
	"context"

	"feedrank/internal/domain/entity"
)

// CandidateRepository provides access to the pool of video candidates per tenant.
type CandidateRepository interface {
	// ListActive returns all candidates currently eligible for the tenant's feed.
	// The returned slice is a snapshot safe for the caller to retain.
	ListActive(ctx context.Context, tenantID string) ([]entity.Candidate, error)

	// ListTrending returns the precomputed popularity-ordered list used for the
	// fallback feed. It must not depend on the personalization pipeline.
	ListTrending(ctx context.Context, tenantID string) ([]entity.Candidate, error)
}
