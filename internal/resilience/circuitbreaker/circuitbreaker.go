// Package circuitbreaker provides the circuit breaker guarding the personalization
// pipeline. It uses the github.com/sony/gobreaker library to prevent cascading failures.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name is the circuit breaker name for logging and metrics
	Name string

	// FailureThreshold is the number of consecutive failures that trips the
	// circuit from closed to open
	FailureThreshold uint32

	// RecoveryTimeout is how long the circuit stays open before a single
	// half-open probe is admitted
	RecoveryTimeout time.Duration
}

// DefaultConfig returns a default configuration for circuit breakers.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
	}
}

// RankingConfig returns configuration for the ranking dependency breaker.
// Opens after 5 consecutive failures, admits a probe after 30 seconds.
func RankingConfig() Config {
	return Config{
		Name:             "ranking",
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
	}
}

// CircuitBreaker wraps gobreaker.TwoStepCircuitBreaker with a check-then-report
// contract: Allow gates the call, and the returned done callback reports the
// outcome exactly once.
//
// State machine: closed counts consecutive failures and trips to open at the
// configured threshold; any success while closed resets the count. Open rejects
// every call until RecoveryTimeout elapses, then half-open admits exactly one
// probe. A successful probe closes the circuit with counters reset; a failed
// probe reopens it and restarts the recovery timer.
type CircuitBreaker struct {
	breaker *gobreaker.TwoStepCircuitBreaker
	name    string
}

// New creates a new circuit breaker with the given configuration.
func New(cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.RecoveryTimeout <= 0 {
		cfg.RecoveryTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name: cfg.Name,
		// A single probe is admitted in the half-open state.
		MaxRequests: 1,
		Timeout:     cfg.RecoveryTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewTwoStepCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Allow reports whether a call to the guarded dependency may proceed.
// When it returns ok=true the caller must invoke done exactly once with the
// outcome of the call; when ok=false the dependency must not be called.
func (cb *CircuitBreaker) Allow() (done func(success bool), ok bool) {
	done, err := cb.breaker.Allow()
	if err != nil {
		return nil, false
	}
	return done, true
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}
