package entity

import (
	"errors"
	"testing"
	"time"
)

func TestCandidateHasTag(t *testing.T) {
	c := Candidate{ID: "v1", Tags: []string{"sports", "football"}}

	if !c.HasTag("sports") {
		t.Error("expected HasTag(sports)=true")
	}
	if c.HasTag("news") {
		t.Error("expected HasTag(news)=false")
	}

	empty := Candidate{ID: "v2"}
	if empty.HasTag("sports") {
		t.Error("expected HasTag on tagless candidate to be false")
	}
}

func TestUserSignalColdStart(t *testing.T) {
	tests := []struct {
		name string
		sig  UserSignal
		want bool
	}{
		{"empty signal", EmptySignal("user_new"), true},
		{"has affinities", UserSignal{UserID: "u", Affinities: map[string]float64{"sports": 1}}, false},
		{"has seen only", UserSignal{UserID: "u", Seen: map[string]struct{}{"v1": {}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sig.ColdStart(); got != tt.want {
				t.Errorf("ColdStart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserSignalTotalAffinity(t *testing.T) {
	sig := UserSignal{
		UserID:     "user_sporty",
		Affinities: map[string]float64{"sports": 0.9, "football": 0.8, "strategy": 0.1},
	}

	got := sig.TotalAffinity()
	want := 1.8
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("TotalAffinity() = %v, want %v", got, want)
	}

	if EmptySignal("u").TotalAffinity() != 0 {
		t.Error("expected zero total affinity for empty signal")
	}
}

func TestTenantConfigNormalize(t *testing.T) {
	cfg := TenantConfig{TenantID: "tenant_sports"}.Normalize()

	if cfg.RecencyHalfLife != DefaultRecencyHalfLife {
		t.Errorf("RecencyHalfLife = %v, want default %v", cfg.RecencyHalfLife, DefaultRecencyHalfLife)
	}
	if cfg.Strategy != DefaultStrategy {
		t.Errorf("Strategy = %q, want %q", cfg.Strategy, DefaultStrategy)
	}
	if cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v, want default %v", cfg.CacheTTL, DefaultCacheTTL)
	}
}

func TestTenantConfigNormalizeKeepsZeroWeights(t *testing.T) {
	// A tenant may deliberately disable a score component with a zero weight.
	cfg := TenantConfig{
		TenantID:        "t",
		RecencyHalfLife: time.Hour,
		RecencyWeight:   0,
		AffinityWeight:  2.0,
	}.Normalize()

	if cfg.RecencyWeight != 0 {
		t.Errorf("RecencyWeight = %v, want 0 preserved", cfg.RecencyWeight)
	}
	if cfg.AffinityWeight != 2.0 {
		t.Errorf("AffinityWeight = %v, want 2.0", cfg.AffinityWeight)
	}
}

func TestTenantConfigExcludes(t *testing.T) {
	cfg := TenantConfig{TenantID: "tenant_sports", ExcludeTags: []string{"politics"}}

	if !cfg.Excludes(Candidate{ID: "n1", Tags: []string{"politics", "news"}}) {
		t.Error("expected politics candidate to be excluded")
	}
	if cfg.Excludes(Candidate{ID: "v1", Tags: []string{"sports"}}) {
		t.Error("expected sports candidate to pass the filter")
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "limit", Message: "must be positive"}

	want := "validation error on field 'limit': must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var ve *ValidationError
	if !errors.As(error(err), &ve) {
		t.Error("expected errors.As to match ValidationError")
	}
}
