// Package ranking implements the scoring strategies and ordering rules for the
// personalized feed. Scoring is pure: a candidate's score is fully determined
// by (candidate, signal, tenant config, now), with no I/O and no hidden state.
package ranking

import (
	"math"
	"time"

	"feedrank/internal/domain/entity"
)

// Scorer computes a score for one candidate. Implementations must be pure,
// never block, and never panic for well-formed input.
type Scorer interface {
	Score(c entity.Candidate, sig entity.UserSignal, cfg entity.TenantConfig, now time.Time) (float64, entity.ScoreBreakdown)
}

// WeightedScorer is the default strategy: a weighted sum of recency decay and
// user affinity match.
//
//	score = recencyWeight * recencyDecay(age, halfLife)
//	      + affinityWeight * affinityMatch(tags, affinities)
type WeightedScorer struct{}

// Score implements Scorer.
func (WeightedScorer) Score(c entity.Candidate, sig entity.UserSignal, cfg entity.TenantConfig, now time.Time) (float64, entity.ScoreBreakdown) {
	breakdown := entity.ScoreBreakdown{
		Recency:  cfg.RecencyWeight * recencyDecay(now.Sub(c.PublishedAt), cfg.RecencyHalfLife),
		Affinity: cfg.AffinityWeight * affinityMatch(c.Tags, sig),
	}
	return breakdown.Recency + breakdown.Affinity, breakdown
}

// FreshnessScorer ranks purely by recency, ignoring user affinity. Tenants
// whose inventory turns over fast (breaking news) select it by name.
type FreshnessScorer struct{}

// Score implements Scorer.
func (FreshnessScorer) Score(c entity.Candidate, _ entity.UserSignal, cfg entity.TenantConfig, now time.Time) (float64, entity.ScoreBreakdown) {
	breakdown := entity.ScoreBreakdown{
		Recency: cfg.RecencyWeight * recencyDecay(now.Sub(c.PublishedAt), cfg.RecencyHalfLife),
	}
	return breakdown.Recency, breakdown
}

// recencyDecay returns 2^(-age/halfLife), clamped to [0,1]. A non-positive age
// scores 1.0, which defends against clock skew and future publish timestamps.
func recencyDecay(age, halfLife time.Duration) float64 {
	if age <= 0 {
		return 1.0
	}
	if halfLife <= 0 {
		halfLife = entity.DefaultRecencyHalfLife
	}
	decay := math.Exp2(-age.Seconds() / halfLife.Seconds())
	return math.Min(1.0, math.Max(0.0, decay))
}

// affinityMatch sums the user's affinity weights for tags the candidate
// carries, normalized by the user's total affinity weight so the result lands
// in [0,1]. A missing or empty signal contributes 0, not an error: cold-start
// users simply get no affinity boost.
func affinityMatch(tags []string, sig entity.UserSignal) float64 {
	total := sig.TotalAffinity()
	if total <= 0 {
		return 0.0
	}

	var matched float64
	for _, tag := range tags {
		matched += sig.Affinities[tag]
	}
	return math.Min(1.0, matched/total)
}
