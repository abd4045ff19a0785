// internal/settings/memory.go
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps settings groups in process memory. Used by tests and by
// the preview binary when no database is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Group][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Group][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, group Group, out interface{}) error {
	m.mu.RLock()
	raw, ok := m.data[group]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal group %s: %w", group, err)
	}
	return nil
}

func (m *MemoryStore) Put(_ context.Context, group Group, record interface{}) error {
	data, err := marshalRecord(record)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[group] = data
	m.mu.Unlock()
	return nil
}
