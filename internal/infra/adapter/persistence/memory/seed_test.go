package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"feedrank/internal/domain/entity"
)

func applySeed(t *testing.T, seed *Seed) (*CandidateRepo, *SignalRepo, *TenantConfigRepo) {
	t.Helper()
	candidates := NewCandidateRepo()
	signals := NewSignalRepo()
	tenants := NewTenantConfigRepo()
	if err := seed.Apply(time.Now(), candidates, signals, tenants); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	return candidates, signals, tenants
}

func TestDefaultSeedApply(t *testing.T) {
	candidates, signals, tenants := applySeed(t, DefaultSeed())
	ctx := context.Background()

	cfg, err := tenants.Get(ctx, "tenant_sports")
	if err != nil {
		t.Fatalf("Get(tenant_sports) error = %v", err)
	}
	if cfg.RecencyWeight != 1.5 || cfg.AffinityWeight != 2.0 {
		t.Errorf("tenant_sports weights = (%v, %v), want (1.5, 2.0)", cfg.RecencyWeight, cfg.AffinityWeight)
	}
	if len(cfg.ExcludeTags) != 1 || cfg.ExcludeTags[0] != "politics" {
		t.Errorf("tenant_sports ExcludeTags = %v, want [politics]", cfg.ExcludeTags)
	}

	pool, err := candidates.ListActive(ctx, "tenant_sports")
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(pool) != 5 {
		t.Errorf("tenant_sports pool size = %d, want 5", len(pool))
	}
	for _, c := range pool {
		if !c.PublishedAt.Before(time.Now().Add(time.Second)) {
			t.Errorf("candidate %s published in the future: %v", c.ID, c.PublishedAt)
		}
	}

	sig, err := signals.Get(ctx, "user_sporty")
	if err != nil {
		t.Fatalf("Get(user_sporty) error = %v", err)
	}
	if !sig.HasSeen("v2") {
		t.Error("user_sporty should have seen v2")
	}

	fresh, err := signals.Get(ctx, "user_new")
	if err != nil {
		t.Fatalf("Get(user_new) error = %v", err)
	}
	if !fresh.ColdStart() {
		t.Errorf("user_new signal = %+v, want cold start", fresh)
	}
}

func TestLoadSeedFromFile(t *testing.T) {
	raw := `
tenants:
  - id: tenant_demo
    recency_half_life: 3h
    recency_weight: 0.5
    strategy: freshness
    candidates:
      - id: d1
        title: Demo Video
        popularity: 42
        tags: [demo]
        age: 90m
users:
  - id: user_demo
    affinities:
      demo: 0.7
    seen: [d1]
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	seed, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}

	now := time.Now()
	candidates, signals, tenants := applySeed(t, seed)

	cfg, err := tenants.Get(context.Background(), "tenant_demo")
	if err != nil {
		t.Fatalf("Get(tenant_demo) error = %v", err)
	}
	if cfg.RecencyHalfLife != 3*time.Hour || cfg.Strategy != "freshness" {
		t.Errorf("config = %+v, want 3h half-life and freshness strategy", cfg)
	}
	if cfg.RecencyWeight != 0.5 {
		t.Errorf("RecencyWeight = %v, want 0.5", cfg.RecencyWeight)
	}

	pool, err := candidates.ListActive(context.Background(), "tenant_demo")
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(pool) != 1 || pool[0].ID != "d1" {
		t.Fatalf("pool = %+v, want single candidate d1", pool)
	}
	age := now.Sub(pool[0].PublishedAt)
	if age < 89*time.Minute || age > 91*time.Minute {
		t.Errorf("candidate age = %v, want ~90m", age)
	}

	sig, err := signals.Get(context.Background(), "user_demo")
	if err != nil {
		t.Fatalf("Get(user_demo) error = %v", err)
	}
	if sig.Affinities["demo"] != 0.7 || !sig.HasSeen("d1") {
		t.Errorf("signal = %+v, want demo affinity 0.7 and d1 seen", sig)
	}
}

func TestLoadSeedMissingFile(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing seed file")
	}
}

func TestSeedApplyRejectsBadDuration(t *testing.T) {
	seed := &Seed{Tenants: []SeedTenant{{ID: "t", RecencyHalfLife: "soon"}}}
	err := seed.Apply(time.Now(), NewCandidateRepo(), NewSignalRepo(), NewTenantConfigRepo())
	if err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestSeedApplyRejectsMissingTenantID(t *testing.T) {
	seed := &Seed{Tenants: []SeedTenant{{}}}
	err := seed.Apply(time.Now(), NewCandidateRepo(), NewSignalRepo(), NewTenantConfigRepo())
	var vErr *entity.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}
