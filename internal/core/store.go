package core

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a schema ID is unknown to the store.
var ErrNotFound = errors.New("schema not found")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Store persists inference results.
type Store interface {
	Save(ctx context.Context, res *SchemaResult) error
	Get(ctx context.Context, id uuid.UUID) (*SchemaResult, error)
	// List returns the most recent results first.
	List(ctx context.Context, limit int) ([]*SchemaResult, error)
}

// MemoryStore keeps results in process memory. Used when no database is
// configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*SchemaResult
	ordered []uuid.UUID
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[uuid.UUID]*SchemaResult)}
}

func (m *MemoryStore) Save(_ context.Context, res *SchemaResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[res.ID]; !exists {
		m.ordered = append(m.ordered, res.ID)
	}
	cp := *res
	m.byID[res.ID] = &cp
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*SchemaResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (m *MemoryStore) List(_ context.Context, limit int) ([]*SchemaResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*SchemaResult, 0, min(limit, len(m.ordered)))
	for i := len(m.ordered) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *m.byID[m.ordered[i]]
		out = append(out, &cp)
	}
	return out, nil
}
