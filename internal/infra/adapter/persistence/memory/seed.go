package memory

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"feedrank/internal/domain/entity"
)

// Seed describes the initial contents of the in-memory stores. Candidate ages
// are relative durations so seed data stays fresh no matter when the process
// starts.
type Seed struct {
	Tenants []SeedTenant `yaml:"tenants"`
	Users   []SeedUser   `yaml:"users"`
}

// SeedTenant holds one tenant's config and candidate pool.
type SeedTenant struct {
	ID              string          `yaml:"id"`
	RecencyHalfLife string          `yaml:"recency_half_life"`
	RecencyWeight   *float64        `yaml:"recency_weight"`
	AffinityWeight  *float64        `yaml:"affinity_weight"`
	Strategy        string          `yaml:"strategy"`
	CacheTTL        string          `yaml:"cache_ttl"`
	ExcludeTags     []string        `yaml:"exclude_tags"`
	EditorialBoosts map[string]int  `yaml:"editorial_boosts"`
	Candidates      []SeedCandidate `yaml:"candidates"`
}

// SeedCandidate is one candidate entry. Age is a Go duration string ("2h").
type SeedCandidate struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Popularity float64  `yaml:"popularity"`
	Tags       []string `yaml:"tags"`
	Age        string   `yaml:"age"`
}

// SeedUser is one user's signal.
type SeedUser struct {
	ID         string             `yaml:"id"`
	Affinities map[string]float64 `yaml:"affinities"`
	Seen       []string           `yaml:"seen"`
}

// LoadSeed reads and parses a seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

// Apply loads the seed into the given stores. now anchors relative candidate ages.
func (s *Seed) Apply(now time.Time, candidates *CandidateRepo, signals *SignalRepo, tenants *TenantConfigRepo) error {
	for _, st := range s.Tenants {
		if st.ID == "" {
			return &entity.ValidationError{Field: "tenants.id", Message: "is required"}
		}

		cfg := entity.DefaultTenantConfig(st.ID)
		if st.RecencyHalfLife != "" {
			d, err := time.ParseDuration(st.RecencyHalfLife)
			if err != nil {
				return fmt.Errorf("tenant %s: parse recency_half_life: %w", st.ID, err)
			}
			cfg.RecencyHalfLife = d
		}
		if st.CacheTTL != "" {
			d, err := time.ParseDuration(st.CacheTTL)
			if err != nil {
				return fmt.Errorf("tenant %s: parse cache_ttl: %w", st.ID, err)
			}
			cfg.CacheTTL = d
		}
		if st.RecencyWeight != nil {
			cfg.RecencyWeight = *st.RecencyWeight
		}
		if st.AffinityWeight != nil {
			cfg.AffinityWeight = *st.AffinityWeight
		}
		if st.Strategy != "" {
			cfg.Strategy = st.Strategy
		}
		cfg.ExcludeTags = st.ExcludeTags
		cfg.EditorialBoosts = st.EditorialBoosts
		tenants.Put(cfg)

		pool := make([]entity.Candidate, 0, len(st.Candidates))
		for _, sc := range st.Candidates {
			age, err := time.ParseDuration(sc.Age)
			if sc.Age != "" && err != nil {
				return fmt.Errorf("tenant %s: candidate %s: parse age: %w", st.ID, sc.ID, err)
			}
			pool = append(pool, entity.Candidate{
				ID:          sc.ID,
				Title:       sc.Title,
				Popularity:  sc.Popularity,
				Tags:        sc.Tags,
				PublishedAt: now.Add(-age),
			})
		}
		candidates.Put(st.ID, pool)
	}

	for _, su := range s.Users {
		seen := make(map[string]struct{}, len(su.Seen))
		for _, id := range su.Seen {
			seen[id] = struct{}{}
		}
		sig := entity.UserSignal{UserID: su.ID, Affinities: su.Affinities, Seen: seen}
		if err := signals.Save(context.Background(), sig); err != nil {
			return fmt.Errorf("seed user %s: %w", su.ID, err)
		}
	}
	return nil
}

// DefaultSeed returns the built-in demo dataset: a sports tenant and a news
// tenant with a handful of candidates and three users at different stages of
// history.
func DefaultSeed() *Seed {
	w := func(v float64) *float64 { return &v }
	return &Seed{
		Tenants: []SeedTenant{
			{
				ID:              "tenant_sports",
				RecencyHalfLife: "12h",
				RecencyWeight:   w(1.5),
				AffinityWeight:  w(2.0),
				ExcludeTags:     []string{"politics"},
				Candidates: []SeedCandidate{
					{ID: "v1", Title: "Amazing Goal Messi", Popularity: 95, Tags: []string{"sports", "football", "viral"}, Age: "2h"},
					{ID: "v2", Title: "Tennis Highlights", Popularity: 80, Tags: []string{"sports", "tennis"}, Age: "24h"},
					{ID: "v3", Title: "Chess Championship", Popularity: 60, Tags: []string{"strategy", "board_games"}, Age: "48h"},
					{ID: "v4", Title: "Funny Cat Fails", Popularity: 85, Tags: []string{"viral", "animals"}, Age: "12h"},
					{ID: "v5", Title: "Live: Stadium Construction", Popularity: 40, Tags: []string{"news", "construction"}, Age: "1h"},
				},
			},
			{
				ID:              "tenant_news",
				RecencyHalfLife: "6h",
				RecencyWeight:   w(2.0),
				AffinityWeight:  w(0.5),
				Candidates: []SeedCandidate{
					{ID: "n1", Title: "Election Results", Popularity: 99, Tags: []string{"politics", "news"}, Age: "1h"},
					{ID: "n2", Title: "Weather Forecast", Popularity: 70, Tags: []string{"news", "weather"}, Age: "4h"},
					{ID: "n3", Title: "Tech Stock Crash", Popularity: 88, Tags: []string{"finance", "tech"}, Age: "10h"},
					{ID: "n4", Title: "Cute Panda Born", Popularity: 92, Tags: []string{"animals", "positive"}, Age: "72h"},
				},
			},
		},
		Users: []SeedUser{
			{ID: "user_sporty", Affinities: map[string]float64{"sports": 0.9, "football": 0.8, "strategy": 0.1}, Seen: []string{"v2"}},
			{ID: "user_newsy", Affinities: map[string]float64{"politics": 0.9, "finance": 0.7}, Seen: []string{"n1"}},
			{ID: "user_new"},
		},
	}
}
