// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Candidate, UserSignal and
// TenantConfig, along with their validation rules and domain-specific errors.
package entity

import "time"

// Candidate represents a video that is eligible for inclusion in a feed.
// It carries the metadata the ranking engine needs: content tags, publish time,
// and a base popularity score. A Candidate is immutable once retrieved for a request.
type Candidate struct {
	ID          string
	Title       string
	Tags        []string
	Popularity  float64
	PublishedAt time.Time
}

// HasTag reports whether the candidate carries the given content tag.
func (c Candidate) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ScoreBreakdown records the per-component contributions to a candidate's score.
// It is attached to every ScoredCandidate so ordering decisions stay explainable.
type ScoreBreakdown struct {
	Recency  float64
	Affinity float64
}

// ScoredCandidate pairs a candidate with its computed score for one request.
// Instances are created per request and discarded after the response.
type ScoredCandidate struct {
	Candidate Candidate
	Score     float64
	Breakdown ScoreBreakdown
}
