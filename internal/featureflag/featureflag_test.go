package featureflag

import (
	"fmt"
	"testing"
)

func TestEnabledDefault(t *testing.T) {
	gate := New(Config{
		Defaults:       map[string]bool{FlagPersonalization: true},
		RolloutPercent: 100,
	})

	if !gate.Enabled("tenant_sports", FlagPersonalization) {
		t.Error("expected flag enabled by global default")
	}
	if gate.Enabled("tenant_sports", "unknown_flag") {
		t.Error("expected unknown flag to resolve to false")
	}
}

func TestTenantOverride(t *testing.T) {
	gate := New(Config{
		Defaults: map[string]bool{FlagPersonalization: true},
		Overrides: map[string]map[string]bool{
			"tenant_news": {FlagPersonalization: false},
		},
		RolloutPercent: 100,
	})

	if gate.Enabled("tenant_news", FlagPersonalization) {
		t.Error("tenant override should disable the flag")
	}
	if !gate.Enabled("tenant_sports", FlagPersonalization) {
		t.Error("other tenants should keep the default")
	}
}

func TestKillSwitchAlwaysWins(t *testing.T) {
	gate := New(Config{
		KillSwitch: true,
		Defaults:   map[string]bool{FlagPersonalization: true},
		Overrides: map[string]map[string]bool{
			// An explicit tenant opt-in must not beat the kill switch.
			"tenant_sports": {FlagPersonalization: true},
		},
		RolloutPercent: 100,
	})

	for _, tenant := range []string{"tenant_sports", "tenant_news", "unknown"} {
		if gate.Enabled(tenant, FlagPersonalization) {
			t.Errorf("kill switch did not win for tenant %q", tenant)
		}
		if gate.EnabledForUser(tenant, "user_sporty", FlagPersonalization) {
			t.Errorf("kill switch did not win for user path, tenant %q", tenant)
		}
	}
	if !gate.KillSwitchActive() {
		t.Error("KillSwitchActive() = false, want true")
	}
}

func TestRolloutDeterministic(t *testing.T) {
	gate := New(Config{
		Defaults:       map[string]bool{FlagPersonalization: true},
		RolloutPercent: 50,
	})

	first := gate.EnabledForUser("t", "user_sporty", FlagPersonalization)
	for i := 0; i < 10; i++ {
		if got := gate.EnabledForUser("t", "user_sporty", FlagPersonalization); got != first {
			t.Fatal("rollout assignment flapped between evaluations")
		}
	}
}

func TestRolloutBounds(t *testing.T) {
	full := New(Config{Defaults: map[string]bool{"f": true}, RolloutPercent: 100})
	none := New(Config{Defaults: map[string]bool{"f": true}, RolloutPercent: 0})

	for i := 0; i < 50; i++ {
		user := fmt.Sprintf("user-%d", i)
		if !full.EnabledForUser("t", user, "f") {
			t.Errorf("100%% rollout excluded user %q", user)
		}
		if none.EnabledForUser("t", user, "f") {
			t.Errorf("0%% rollout admitted user %q", user)
		}
	}
}

func TestRolloutClampsPercent(t *testing.T) {
	over := New(Config{Defaults: map[string]bool{"f": true}, RolloutPercent: 250})
	under := New(Config{Defaults: map[string]bool{"f": true}, RolloutPercent: -10})

	if !over.EnabledForUser("t", "anyone", "f") {
		t.Error("percent above 100 should clamp to full rollout")
	}
	if under.EnabledForUser("t", "anyone", "f") {
		t.Error("negative percent should clamp to zero rollout")
	}
}

func TestRolloutSplitsPopulation(t *testing.T) {
	gate := New(Config{Defaults: map[string]bool{"f": true}, RolloutPercent: 50})

	admitted := 0
	const users = 1000
	for i := 0; i < users; i++ {
		if gate.EnabledForUser("t", fmt.Sprintf("user-%d", i), "f") {
			admitted++
		}
	}

	// Hash bucketing should land near the configured percentage.
	if admitted < 400 || admitted > 600 {
		t.Errorf("50%% rollout admitted %d/%d users", admitted, users)
	}
}
