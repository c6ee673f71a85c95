// Package memory provides in-memory implementations of the repository
// interfaces. They serve as the default stores for development and tests and
// model the access patterns of the networked stores they stand in for: every
// read returns a snapshot copy and honors context cancellation.
package memory

import (
	"context"
	"sort"
	"sync"

	"feedrank/internal/domain/entity"
)

// trendingSize is how many candidates the precomputed fallback feed keeps per tenant.
const trendingSize = 10

// CandidateRepo is an in-memory CandidateRepository.
type CandidateRepo struct {
	mu       sync.RWMutex
	active   map[string][]entity.Candidate
	trending map[string][]entity.Candidate
}

// NewCandidateRepo creates an empty candidate repository.
func NewCandidateRepo() *CandidateRepo {
	return &CandidateRepo{
		active:   make(map[string][]entity.Candidate),
		trending: make(map[string][]entity.Candidate),
	}
}

// ListActive returns a snapshot of the tenant's candidate pool.
// An unknown tenant yields an empty slice, not an error: inventory emptiness
// is a business condition decided by the caller.
func (r *CandidateRepo) ListActive(ctx context.Context, tenantID string) ([]entity.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return snapshot(r.active[tenantID]), nil
}

// ListTrending returns a snapshot of the precomputed popularity-ordered feed.
func (r *CandidateRepo) ListTrending(ctx context.Context, tenantID string) ([]entity.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return snapshot(r.trending[tenantID]), nil
}

// Put replaces the tenant's candidate pool and recomputes its trending list.
func (r *CandidateRepo) Put(tenantID string, candidates []entity.Candidate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active[tenantID] = snapshot(candidates)
	r.trending[tenantID] = computeTrending(candidates)
}

// RefreshTrending recomputes the trending list for every tenant from the
// current candidate pools. The janitor calls this periodically so the fallback
// feed tracks popularity changes.
func (r *CandidateRepo) RefreshTrending() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for tenantID, candidates := range r.active {
		r.trending[tenantID] = computeTrending(candidates)
	}
}

// computeTrending orders by popularity descending (ties by ID) and keeps the head.
func computeTrending(candidates []entity.Candidate) []entity.Candidate {
	top := snapshot(candidates)
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Popularity != top[j].Popularity {
			return top[i].Popularity > top[j].Popularity
		}
		return top[i].ID < top[j].ID
	})
	if len(top) > trendingSize {
		top = top[:trendingSize]
	}
	return top
}

func snapshot(candidates []entity.Candidate) []entity.Candidate {
	out := make([]entity.Candidate, len(candidates))
	copy(out, candidates)
	return out
}
