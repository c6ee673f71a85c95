package entity

// UserSignal is a user's historical interaction data: per-category affinity
// weights and the set of candidate IDs the user has already seen.
// Signals are mutated only by the signal store; the ranking pipeline treats
// them as read-only snapshots for the duration of a request.
type UserSignal struct {
	UserID     string
	Affinities map[string]float64
	Seen       map[string]struct{}
}

// EmptySignal returns the default signal for an unknown (cold-start) user.
func EmptySignal(userID string) UserSignal {
	return UserSignal{UserID: userID}
}

// ColdStart reports whether the user has no recorded history.
func (s UserSignal) ColdStart() bool {
	return len(s.Affinities) == 0 && len(s.Seen) == 0
}

// HasSeen reports whether the user has already watched the given candidate.
func (s UserSignal) HasSeen(candidateID string) bool {
	_, ok := s.Seen[candidateID]
	return ok
}

// TotalAffinity returns the sum of all affinity weights. It is the maximum
// affinity sum any single candidate could attain for this user, used to
// normalize affinity contributions into [0,1].
func (s UserSignal) TotalAffinity() float64 {
	var total float64
	for _, w := range s.Affinities {
		total += w
	}
	return total
}
