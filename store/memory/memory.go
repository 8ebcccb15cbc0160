// Package memory provides an in-memory attendance.Store for testing/dev.
package memory

import (
	"context"
	"sync"

	"github.com/warp/attendance-engine/attendance"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Store keeps the persisted state as a deep copy, so callers observe the same
// load/save boundary the file and SQLite stores have.
type Store struct {
	mu    sync.RWMutex
	state *attendance.State
	saves int
}

func New() *Store {
	return &Store{}
}

// Load returns a copy of the last saved state, or nil when nothing has been
// saved yet (the service starts empty in that case).
func (m *Store) Load(_ context.Context) (*attendance.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == nil {
		return nil, nil
	}
	return m.state.Clone(), nil
}

// Save stores a copy of the state.
func (m *Store) Save(_ context.Context, state *attendance.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = state.Clone()
	m.saves++
	return nil
}

// Saves reports how many times Save has been called. Tests use it to assert
// the persist-after-every-mutation contract.
func (m *Store) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
