package experiment

import (
	"context"
	"sync"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
)

// MemoryStore keeps assignments in process memory. With maxEntries > 0 the
// oldest assignment is dropped once the cap is reached; a dropped key is simply
// recomputed to the same variant on its next lookup.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[domain.AssignmentKey]domain.Variant
	order      []domain.AssignmentKey
	maxEntries int
}

// NewMemoryStore creates an in-memory store; maxEntries <= 0 means unbounded
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &MemoryStore{
		entries:    make(map[domain.AssignmentKey]domain.Variant),
		maxEntries: maxEntries,
	}
}

func (s *MemoryStore) Get(_ context.Context, key domain.AssignmentKey) (domain.Variant, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *MemoryStore) PutIfAbsent(_ context.Context, key domain.AssignmentKey, variant domain.Variant) (domain.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[key]; ok {
		return existing, nil
	}

	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}

	s.entries[key] = variant
	if s.maxEntries > 0 {
		s.order = append(s.order, key)
	}
	return variant, nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}
