package testutil

import (
	"errors"
	"sync"

	"nestegg/internal/state"
)

// MemStore is an in-memory state.Store for tests that do not need a database.
type MemStore struct {
	mu    sync.Mutex
	slots map[string][]byte

	// FailSaves makes every Save return an error, for persistence-failure paths.
	FailSaves bool
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{slots: make(map[string][]byte)}
}

func (m *MemStore) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.slots[key]
	if !ok {
		return nil, state.ErrSlotNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemStore) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves {
		return errors.New("save disabled")
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.slots[key] = stored
	return nil
}
