package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/sketchbomb/runorder/pkg/errors"
)

// MemoryStore keeps shows in a map. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	shows map[uuid.UUID]*Show
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{shows: make(map[uuid.UUID]*Show)}
}

// Get retrieves a show by ID.
func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Show, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.shows[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeShowNotFound, "show not found: %s", id.String())
	}
	cp := *s
	return &cp, nil
}

// List returns all shows ordered by creation time, oldest first.
func (m *MemoryStore) List(ctx context.Context) ([]*Show, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Show, 0, len(m.shows))
	for _, s := range m.shows {
		cp := *s
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *Show) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

// Put inserts or replaces a show.
func (m *MemoryStore) Put(ctx context.Context, s *Show) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	m.shows[s.ID] = &cp
	return nil
}

// Delete removes a show.
func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.shows[id]; !ok {
		return errors.New(errors.ErrCodeShowNotFound, "show not found: %s", id.String())
	}
	delete(m.shows, id)
	return nil
}

// Close does nothing for the memory store.
func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
