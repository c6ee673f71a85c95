package memory

import (
	"context"
	"maps"
	"sync"

	"feedrank/internal/domain/entity"
)

// SignalRepo is an in-memory SignalRepository.
type SignalRepo struct {
	mu      sync.RWMutex
	signals map[string]entity.UserSignal
}

// NewSignalRepo creates an empty signal repository.
func NewSignalRepo() *SignalRepo {
	return &SignalRepo{signals: make(map[string]entity.UserSignal)}
}

// Get returns a snapshot of the user's signal. Unknown users get the default
// empty signal: cold start is not an error.
func (r *SignalRepo) Get(ctx context.Context, userID string) (entity.UserSignal, error) {
	if err := ctx.Err(); err != nil {
		return entity.UserSignal{}, err
	}

	r.mu.RLock()
	sig, ok := r.signals[userID]
	r.mu.RUnlock()

	if !ok {
		return entity.EmptySignal(userID), nil
	}
	return copySignal(sig), nil
}

// Save persists a snapshot of the signal.
func (r *SignalRepo) Save(ctx context.Context, signal entity.UserSignal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if signal.UserID == "" {
		return &entity.ValidationError{Field: "userID", Message: "is required"}
	}

	r.mu.Lock()
	r.signals[signal.UserID] = copySignal(signal)
	r.mu.Unlock()
	return nil
}

// copySignal deep-copies the signal's maps so callers cannot observe
// concurrent mutation through a shared reference.
func copySignal(sig entity.UserSignal) entity.UserSignal {
	out := entity.UserSignal{UserID: sig.UserID}
	if sig.Affinities != nil {
		out.Affinities = maps.Clone(sig.Affinities)
	}
	if sig.Seen != nil {
		out.Seen = maps.Clone(sig.Seen)
	}
	return out
}
