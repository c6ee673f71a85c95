package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedrank/internal/featureflag"
	"feedrank/internal/infra/adapter/persistence/memory"
	"feedrank/internal/resilience/circuitbreaker"
	feedUC "feedrank/internal/usecase/feed"
)

func newHandler(t *testing.T) GetHandler {
	t.Helper()

	candidates := memory.NewCandidateRepo()
	signals := memory.NewSignalRepo()
	tenants := memory.NewTenantConfigRepo()
	if err := memory.DefaultSeed().Apply(time.Now(), candidates, signals, tenants); err != nil {
		t.Fatalf("apply seed: %v", err)
	}

	svc := feedUC.NewService(feedUC.Deps{
		Candidates: candidates,
		Signals:    signals,
		Tenants:    tenants,
		Breaker:    circuitbreaker.New(circuitbreaker.RankingConfig()),
		Flags: featureflag.New(featureflag.Config{
			Defaults:       map[string]bool{featureflag.FlagPersonalization: true},
			RolloutPercent: 100,
		}),
	}, feedUC.Config{})

	return GetHandler{Svc: svc, DefaultLimit: 20}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetFeedHandlerValidation(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"missing tenant", "/v1/feed?user_id=u", http.StatusBadRequest},
		{"missing user", "/v1/feed?tenant_id=tenant_sports", http.StatusBadRequest},
		{"non-numeric limit", "/v1/feed?tenant_id=tenant_sports&user_id=u&limit=abc", http.StatusBadRequest},
		{"limit above max", "/v1/feed?tenant_id=tenant_sports&user_id=u&limit=999", http.StatusBadRequest},
		{"zero limit", "/v1/feed?tenant_id=tenant_sports&user_id=u&limit=0", http.StatusBadRequest},
		{"unknown tenant", "/v1/feed?tenant_id=nope&user_id=u", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.code, rec.Body.String())
			}
		})
	}
}

func TestGetFeedHandlerOK(t *testing.T) {
	h := newHandler(t)

	rec := get(t, h, "/v1/feed?tenant_id=tenant_sports&user_id=user_sporty")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var body DTO
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Personalized {
		t.Error("expected personalized=true")
	}
	if body.Degraded {
		t.Error("expected degraded=false")
	}
	if len(body.Items) == 0 {
		t.Fatal("expected feed items")
	}
	for _, it := range body.Items {
		if it.ID == "v2" {
			t.Error("seen candidate v2 must not appear in the feed")
		}
	}
	if body.Items[0].Score <= 0 {
		t.Errorf("top item score = %v, want > 0", body.Items[0].Score)
	}
}

func TestGetFeedHandlerPagination(t *testing.T) {
	h := newHandler(t)

	rec := get(t, h, "/v1/feed?tenant_id=tenant_news&user_id=user_new&limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page1 DTO
	if err := json.NewDecoder(rec.Body).Decode(&page1); err != nil {
		t.Fatalf("decode page 1: %v", err)
	}
	if len(page1.Items) != 2 || !page1.HasMore || page1.NextCursor == "" {
		t.Fatalf("page 1 = %d items, hasMore %v, cursor %q", len(page1.Items), page1.HasMore, page1.NextCursor)
	}

	rec = get(t, h, "/v1/feed?tenant_id=tenant_news&user_id=user_new&limit=2&cursor="+page1.NextCursor)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page2 DTO
	if err := json.NewDecoder(rec.Body).Decode(&page2); err != nil {
		t.Fatalf("decode page 2: %v", err)
	}
	for _, a := range page1.Items {
		for _, b := range page2.Items {
			if a.ID == b.ID {
				t.Errorf("candidate %s appears on both pages", a.ID)
			}
		}
	}
}

func TestGetFeedHandlerKillSwitch(t *testing.T) {
	candidates := memory.NewCandidateRepo()
	signals := memory.NewSignalRepo()
	tenants := memory.NewTenantConfigRepo()
	if err := memory.DefaultSeed().Apply(time.Now(), candidates, signals, tenants); err != nil {
		t.Fatalf("apply seed: %v", err)
	}

	svc := feedUC.NewService(feedUC.Deps{
		Candidates: candidates,
		Signals:    signals,
		Tenants:    tenants,
		Breaker:    circuitbreaker.New(circuitbreaker.RankingConfig()),
		Flags:      featureflag.New(featureflag.Config{KillSwitch: true}),
	}, feedUC.Config{})
	h := GetHandler{Svc: svc, DefaultLimit: 20}

	rec := get(t, h, "/v1/feed?tenant_id=tenant_sports&user_id=user_sporty")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body DTO
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Personalized {
		t.Error("kill switch must disable personalization")
	}
	if len(body.Items) == 0 {
		t.Error("kill switch must still serve the trending fallback")
	}
}
