package ranking

import (
	"math"
	"testing"
	"time"

	"feedrank/internal/domain/entity"
)

func baseConfig() entity.TenantConfig {
	return entity.DefaultTenantConfig("tenant_sports")
}

func TestRecencyDecayAtZeroAge(t *testing.T) {
	for _, age := range []time.Duration{0, -time.Hour, -24 * time.Hour} {
		if got := recencyDecay(age, 12*time.Hour); got != 1.0 {
			t.Errorf("recencyDecay(%v) = %v, want 1.0", age, got)
		}
	}
}

func TestRecencyDecayHalfLife(t *testing.T) {
	halfLife := 12 * time.Hour

	got := recencyDecay(halfLife, halfLife)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("decay at one half-life = %v, want 0.5", got)
	}

	got = recencyDecay(2*halfLife, halfLife)
	if math.Abs(got-0.25) > 1e-9 {
		t.Errorf("decay at two half-lives = %v, want 0.25", got)
	}
}

func TestRecencyDecayMonotonic(t *testing.T) {
	halfLife := 6 * time.Hour

	prev := recencyDecay(0, halfLife)
	for age := time.Hour; age <= 96*time.Hour; age += time.Hour {
		cur := recencyDecay(age, halfLife)
		if cur > prev {
			t.Fatalf("decay increased from %v to %v at age %v", prev, cur, age)
		}
		if cur < 0 || cur > 1 {
			t.Fatalf("decay %v out of [0,1] at age %v", cur, age)
		}
		prev = cur
	}
}

func TestAffinityMatchNormalized(t *testing.T) {
	sig := entity.UserSignal{
		UserID:     "user_sporty",
		Affinities: map[string]float64{"sports": 0.9, "football": 0.8, "strategy": 0.1},
	}

	tests := []struct {
		name string
		tags []string
		want float64
	}{
		{"full match", []string{"sports", "football", "strategy"}, 1.0},
		{"partial match", []string{"sports"}, 0.9 / 1.8},
		{"no match", []string{"news"}, 0.0},
		{"no tags", nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := affinityMatch(tt.tags, sig)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("affinityMatch(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestAffinityMatchColdStart(t *testing.T) {
	if got := affinityMatch([]string{"sports"}, entity.EmptySignal("user_new")); got != 0.0 {
		t.Errorf("affinityMatch for cold-start user = %v, want 0", got)
	}
}

func TestWeightedScorerDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := entity.Candidate{
		ID:          "v1",
		Tags:        []string{"sports"},
		Popularity:  95,
		PublishedAt: now.Add(-2 * time.Hour),
	}
	sig := entity.UserSignal{UserID: "u", Affinities: map[string]float64{"sports": 1.0}}
	cfg := baseConfig()

	first, firstBD := WeightedScorer{}.Score(c, sig, cfg, now)
	for i := 0; i < 5; i++ {
		score, bd := WeightedScorer{}.Score(c, sig, cfg, now)
		if score != first || bd != firstBD {
			t.Fatal("score changed across identical calls")
		}
	}

	if math.Abs(first-(firstBD.Recency+firstBD.Affinity)) > 1e-9 {
		t.Errorf("score %v does not equal sum of breakdown components %+v", first, firstBD)
	}
}

func TestWeightedScorerAppliesWeights(t *testing.T) {
	now := time.Now()
	c := entity.Candidate{ID: "v1", Tags: []string{"sports"}, PublishedAt: now}
	sig := entity.UserSignal{UserID: "u", Affinities: map[string]float64{"sports": 1.0}}

	cfg := baseConfig()
	cfg.RecencyWeight = 2.0
	cfg.AffinityWeight = 3.0

	score, bd := WeightedScorer{}.Score(c, sig, cfg, now)
	if math.Abs(bd.Recency-2.0) > 1e-9 {
		t.Errorf("recency component = %v, want 2.0 (fresh candidate, weight 2)", bd.Recency)
	}
	if math.Abs(bd.Affinity-3.0) > 1e-9 {
		t.Errorf("affinity component = %v, want 3.0 (full match, weight 3)", bd.Affinity)
	}
	if math.Abs(score-5.0) > 1e-9 {
		t.Errorf("score = %v, want 5.0", score)
	}
}

func TestFreshnessScorerIgnoresAffinity(t *testing.T) {
	now := time.Now()
	c := entity.Candidate{ID: "v1", Tags: []string{"sports"}, PublishedAt: now.Add(-time.Hour)}
	cfg := baseConfig()

	hot := entity.UserSignal{UserID: "a", Affinities: map[string]float64{"sports": 1.0}}
	cold := entity.EmptySignal("b")

	hotScore, _ := FreshnessScorer{}.Score(c, hot, cfg, now)
	coldScore, _ := FreshnessScorer{}.Score(c, cold, cfg, now)
	if hotScore != coldScore {
		t.Errorf("freshness scores differ by signal: %v vs %v", hotScore, coldScore)
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Resolve(StrategyWeighted).(WeightedScorer); !ok {
		t.Error("expected WeightedScorer for weighted")
	}
	if _, ok := r.Resolve(StrategyFreshness).(FreshnessScorer); !ok {
		t.Error("expected FreshnessScorer for freshness")
	}
	if _, ok := r.Resolve("no_such_strategy").(WeightedScorer); !ok {
		t.Error("unknown strategy should resolve to the default scorer")
	}
	if _, ok := r.Resolve("").(WeightedScorer); !ok {
		t.Error("empty strategy should resolve to the default scorer")
	}
}
