package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// Store keeps session snapshots in a map. Snapshots are cloned on the way
// in and out, so a caller holding one never sees another caller's edits.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.Snapshot
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{snapshots: map[string]*domain.Snapshot{}}
}

func (s *Store) Save(_ context.Context, sessionID string, snap *domain.Snapshot) error {
	kept := snap.Clone()

	s.mu.Lock()
	s.snapshots[sessionID] = kept
	s.mu.Unlock()
	return nil
}

func (s *Store) Load(_ context.Context, sessionID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	kept, ok := s.snapshots[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return kept.Clone(), nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.snapshots, sessionID)
	s.mu.Unlock()
	return nil
}

// List returns the stored session ids in lexical order.
func (s *Store) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.snapshots)), nil
}
