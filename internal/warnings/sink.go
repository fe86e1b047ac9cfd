// Package warnings carries the out-of-band channel for remote persistence
// failures under the local-wins policy.
package warnings

import (
	"sync"

	"chickey-pos/internal/domain"
)

// Sink collects persistence warnings. It is append-only on purpose: result
// handlers of failed remote writes may report here, but nothing in this type
// lets them touch the already-committed local state.
type Sink struct {
	mu   sync.Mutex
	list []domain.PersistenceWarning
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Report(w domain.PersistenceWarning) {
	s.mu.Lock()
	s.list = append(s.list, w)
	s.mu.Unlock()
}

// List returns a copy of the collected warnings without clearing them.
func (s *Sink) List() []domain.PersistenceWarning {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PersistenceWarning, len(s.list))
	copy(out, s.list)
	return out
}

// Drain returns all collected warnings and clears the sink.
func (s *Sink) Drain() []domain.PersistenceWarning {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.list
	s.list = nil
	return out
}

func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}
