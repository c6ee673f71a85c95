// Package feed provides the HTTP handler for the personalized feed endpoint.
package feed

import (
	"time"

	"feedrank/internal/domain/entity"
	feedUC "feedrank/internal/usecase/feed"
)

// BreakdownDTO exposes the score components for debugging ranking decisions.
type BreakdownDTO struct {
	Recency  float64 `json:"recency" example:"0.84"`
	Affinity float64 `json:"affinity" example:"0.61"`
}

// ItemDTO is one feed entry.
type ItemDTO struct {
	ID          string       `json:"id" example:"v1"`
	Title       string       `json:"title" example:"Amazing Goal Messi"`
	Tags        []string     `json:"tags" example:"sports,football"`
	Popularity  float64      `json:"popularity" example:"95"`
	PublishedAt time.Time    `json:"published_at" example:"2026-08-31T10:00:00Z"`
	Score       float64      `json:"score" example:"2.48"`
	Breakdown   BreakdownDTO `json:"breakdown"`
}

// DTO is the JSON structure of a feed response.
type DTO struct {
	Items        []ItemDTO `json:"items"`
	Personalized bool      `json:"personalized"`
	Degraded     bool      `json:"degraded"`
	NextCursor   string    `json:"next_cursor,omitempty"`
	HasMore      bool      `json:"has_more"`
}

func toDTO(f *feedUC.Feed) DTO {
	items := make([]ItemDTO, 0, len(f.Items))
	for _, it := range f.Items {
		items = append(items, toItemDTO(it))
	}
	return DTO{
		Items:        items,
		Personalized: f.Personalized,
		Degraded:     f.Degraded,
		NextCursor:   f.NextCursor,
		HasMore:      f.HasMore,
	}
}

func toItemDTO(sc entity.ScoredCandidate) ItemDTO {
	return ItemDTO{
		ID:          sc.Candidate.ID,
		Title:       sc.Candidate.Title,
		Tags:        sc.Candidate.Tags,
		Popularity:  sc.Candidate.Popularity,
		PublishedAt: sc.Candidate.PublishedAt,
		Score:       sc.Score,
		Breakdown: BreakdownDTO{
			Recency:  sc.Breakdown.Recency,
			Affinity: sc.Breakdown.Affinity,
		},
	}
}
