package queue

import (
	"context"
)

// MemoryStore keeps pending steps in process memory. It is confined to the
// match session's writer goroutine and carries no internal locking.
type MemoryStore struct {
	steps map[string][]Step
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{steps: make(map[string][]Step)}
}

func (s *MemoryStore) AddStep(_ context.Context, step Step) error {
	s.steps[step.GameID] = append(s.steps[step.GameID], step)
	return nil
}

func (s *MemoryStore) Pending(_ context.Context, gameID string) ([]Step, error) {
	pending := s.steps[gameID]
	out := make([]Step, len(pending))
	copy(out, pending)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, gameID, stepID string) (Step, error) {
	for _, step := range s.steps[gameID] {
		if step.ID == stepID {
			return step, nil
		}
	}
	return Step{}, ErrStepNotFound
}

func (s *MemoryStore) Remove(_ context.Context, gameID, stepID string) error {
	pending := s.steps[gameID]
	for i, step := range pending {
		if step.ID == stepID {
			s.steps[gameID] = append(pending[:i], pending[i+1:]...)
			return nil
		}
	}
	return ErrStepNotFound
}

func (s *MemoryStore) Clear(_ context.Context, gameID string) error {
	delete(s.steps, gameID)
	return nil
}
