package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/seqline/pkg/domain"
)

// Store implements ports.LayoutStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Layout
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Layout),
	}
}

// Save stores a copy of the layout, so later changes by the caller are not seen.
func (s *Store) Save(ctx context.Context, id string, layout *domain.Layout) error {
	copied := layout.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load returns a copy of the stored layout.
func (s *Store) Load(ctx context.Context, id string) (*domain.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layout, ok := s.data[id]
	if !ok {
		return nil, domain.ErrLayoutNotFound
	}
	return layout.Clone(), nil
}

// Delete removes the layout. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored ids in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
