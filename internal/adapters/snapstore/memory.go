package snapstore

import (
	"context"
	"sync"

	"github.com/okian/chestboard/internal/domain/model"
)

// MemoryStore implements Store in process memory, for tests and redis-less
// deployments. It runs the snapshot through the same serialized shape as the
// Redis store so both paths are exercised identically.
type MemoryStore struct {
	mu      sync.RWMutex
	payload []byte
}

// NewMemoryStore builds an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save persists the snapshot.
func (s *MemoryStore) Save(_ context.Context, snap *model.Snapshot) error {
	payload, err := encode(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = payload
	return nil
}

// Load returns the persisted snapshot, or ok=false when none was saved.
func (s *MemoryStore) Load(_ context.Context) (*model.Snapshot, bool, error) {
	s.mu.RLock()
	payload := s.payload
	s.mu.RUnlock()
	if payload == nil {
		return nil, false, nil
	}
	snap, err := decode(payload)
	if err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

// Clear removes the persisted snapshot.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = nil
	return nil
}
