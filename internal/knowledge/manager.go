package knowledge

import (
	"errors"
	"sync"
	"sync/atomic"
)

var ErrNotLoaded = errors.New("knowledge base not loaded")

// Manager holds the current knowledge base. Readers never block, updates swap the whole snapshot.
type Manager struct {
	current atomic.Pointer[Base]
	mu      sync.Mutex
}

func NewManager(initial *Base) *Manager {
	m := &Manager{}
	if initial != nil {
		m.current.Store(initial)
	}
	return m
}

// Get returns the current snapshot or ErrNotLoaded.
func (m *Manager) Get() (*Base, error) {
	b := m.current.Load()
	if b == nil {
		return nil, ErrNotLoaded
	}
	return b, nil
}

// Update replaces the current snapshot. It reports whether the content changed.
func (m *Manager) Update(next *Base) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.current.Load()
	m.current.Store(next)
	return prev == nil || prev.Version != next.Version
}
