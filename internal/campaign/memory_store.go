package campaign

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps campaigns in process memory
type MemoryStore struct {
	mu        sync.RWMutex
	campaigns map[string]Campaign
	now       func() time.Time
}

// NewMemoryStore creates a store holding the given campaigns
func NewMemoryStore(now func() time.Time, seed ...Campaign) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	s := &MemoryStore{
		campaigns: make(map[string]Campaign, len(seed)),
		now:       now,
	}
	for _, c := range seed {
		s.campaigns[c.ID] = c
	}
	return s
}

func (s *MemoryStore) GetCampaign(_ context.Context, id string) (*Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, ErrNotFound)
	}
	return &c, nil
}

func (s *MemoryStore) ApplyDonation(_ context.Context, id string, amount float64) (*Campaign, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, ErrNotFound)
	}

	c.CurrentRaised += amount
	c.UpdatedAt = s.now()
	s.campaigns[id] = c

	return &c, nil
}
