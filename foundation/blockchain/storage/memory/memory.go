// Package memory implements the ability to persist the ledger in memory.
package memory

import (
	"encoding/json"
	"sync"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// Memory represents the serialization implementation for storing the ledger
// in memory. This implements the database.Storage interface.
type Memory struct {
	mu   sync.RWMutex
	data []byte
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Save replaces the stored snapshot. The snapshot is kept in its encoded form
// so later changes made by the caller don't leak in.
func (m *Memory) Save(snapshot database.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = data
	return nil
}

// Load returns the stored snapshot or database.ErrNotFound if nothing has
// been saved yet.
func (m *Memory) Load() (database.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return database.Snapshot{}, database.ErrNotFound
	}

	var snapshot database.Snapshot
	if err := json.Unmarshal(m.data, &snapshot); err != nil {
		return database.Snapshot{}, err
	}

	return snapshot, nil
}

// Reset will clear out the stored snapshot.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	return nil
}
