package storage

import (
	"encoding/json"
	"fmt"
)

// MemoryStore is an in-memory Store implementation. It backs tests and
// throwaway sessions; values round-trip through JSON so callers get the same
// copy semantics as the SQLite store.
type MemoryStore struct {
	values map[string]json.RawMessage
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]json.RawMessage)}
}

// Load decodes the value stored under key into out.
func (m *MemoryStore) Load(key string, out any) (bool, error) {
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode value for key %q: %w", key, err)
	}
	return true, nil
}

// Save encodes value and stores it under key.
func (m *MemoryStore) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}
	m.values[key] = data
	return nil
}

// Delete removes the value stored under key.
func (m *MemoryStore) Delete(key string) error {
	delete(m.values, key)
	return nil
}
