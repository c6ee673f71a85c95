package repository

import (
	"context"

	"feedrank/internal/domain/entity"
)

// SignalRepository provides access to user interaction signals.
type SignalRepository interface {
	// Get returns the signal for a user. Unknown users yield a default empty
	// signal, never an error: cold start is a normal condition.
	Get(ctx context.Context, userID string) (entity.UserSignal, error)

	// Save persists a user's signal.
	Save(ctx context.Context, signal entity.UserSignal) error
}
