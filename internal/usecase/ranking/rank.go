package ranking

import (
	"sort"
	"time"

	"feedrank/internal/domain/entity"
)

// Rank filters, scores and orders candidates for one request.
//
// Candidates the user has already seen and candidates carrying a tenant-excluded
// tag are dropped before scoring. The result is a total order: score descending,
// ties broken by popularity descending, then by candidate ID ascending, so
// identical inputs always produce identical output. Editorial position boosts
// from the tenant config are applied after sorting.
func Rank(candidates []entity.Candidate, sig entity.UserSignal, cfg entity.TenantConfig, scorer Scorer, now time.Time) []entity.ScoredCandidate {
	scored := make([]entity.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if sig.HasSeen(c.ID) || cfg.Excludes(c) {
			continue
		}
		score, breakdown := scorer.Score(c, sig, cfg, now)
		scored = append(scored, entity.ScoredCandidate{
			Candidate: c,
			Score:     score,
			Breakdown: breakdown,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Candidate.Popularity != scored[j].Candidate.Popularity {
			return scored[i].Candidate.Popularity > scored[j].Candidate.Popularity
		}
		return scored[i].Candidate.ID < scored[j].Candidate.ID
	})

	return applyEditorialBoosts(scored, cfg.EditorialBoosts)
}

// FallbackOrder produces the non-personalized ordering: popularity descending,
// ties broken by candidate ID ascending, with the user's seen candidates
// removed. It must stay independent of scorers, caches and the circuit breaker
// so a cascading failure cannot prevent a response.
func FallbackOrder(candidates []entity.Candidate, sig entity.UserSignal) []entity.ScoredCandidate {
	out := make([]entity.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if sig.HasSeen(c.ID) {
			continue
		}
		out = append(out, entity.ScoredCandidate{Candidate: c, Score: c.Popularity})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Candidate.Popularity != out[j].Candidate.Popularity {
			return out[i].Candidate.Popularity > out[j].Candidate.Popularity
		}
		return out[i].Candidate.ID < out[j].Candidate.ID
	})
	return out
}

// applyEditorialBoosts pins configured candidate IDs at fixed positions.
// Boosted candidates are pulled out of the ranked list and reinserted at their
// configured position (clamped to the list length), lowest position first.
func applyEditorialBoosts(scored []entity.ScoredCandidate, boosts map[string]int) []entity.ScoredCandidate {
	if len(boosts) == 0 {
		return scored
	}

	type pinned struct {
		position int
		item     entity.ScoredCandidate
	}

	var pins []pinned
	remaining := make([]entity.ScoredCandidate, 0, len(scored))
	for _, sc := range scored {
		if pos, ok := boosts[sc.Candidate.ID]; ok {
			pins = append(pins, pinned{position: pos, item: sc})
			continue
		}
		remaining = append(remaining, sc)
	}
	if len(pins) == 0 {
		return scored
	}

	sort.SliceStable(pins, func(i, j int) bool { return pins[i].position < pins[j].position })

	result := remaining
	for _, p := range pins {
		idx := p.position
		if idx < 0 {
			idx = 0
		}
		if idx > len(result) {
			idx = len(result)
		}
		result = append(result, entity.ScoredCandidate{})
		copy(result[idx+1:], result[idx:])
		result[idx] = p.item
	}
	return result
}
