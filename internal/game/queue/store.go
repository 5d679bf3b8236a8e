package queue

import (
	"context"
	"errors"
)

// ErrStepNotFound is returned when a step id is absent from the store.
var ErrStepNotFound = errors.New("resolution step not found")

// Store holds pending resolution steps per game. Steps have no TTL: the
// consumer owns any timeout or default-choice policy.
type Store interface {
	// AddStep appends a pending step for its game.
	AddStep(ctx context.Context, step Step) error
	// Pending returns a game's pending steps in the order they were added.
	Pending(ctx context.Context, gameID string) ([]Step, error)
	// Get returns one step by id.
	Get(ctx context.Context, gameID, stepID string) (Step, error)
	// Remove deletes a step once it has been answered.
	Remove(ctx context.Context, gameID, stepID string) error
	// Clear drops every pending step for a game.
	Clear(ctx context.Context, gameID string) error
}
