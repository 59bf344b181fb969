package store

import (
	"context"
	"sort"
	"sync"

	"github.com/gridrack/gridrack/pkg/errors"
)

// MemoryStore is an in-memory layout set store for development and testing.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string]*LayoutSet
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]*LayoutSet)}
}

// Get retrieves a layout set by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*LayoutSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeLayoutNotFound, "no layout set named %q", name)
	}
	return set.Clone(), nil
}

// Save stores a layout set, replacing any set with the same name.
func (s *MemoryStore) Save(ctx context.Context, set *LayoutSet) error {
	if err := prepare(set); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[set.Name] = set.Clone()
	return nil
}

// Delete removes a layout set by name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sets[name]; !ok {
		return errors.New(errors.ErrCodeLayoutNotFound, "no layout set named %q", name)
	}
	delete(s.sets, name)
	return nil
}

// List returns the names of all stored layout sets, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.sets))
	for name := range s.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
