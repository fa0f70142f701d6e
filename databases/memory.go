package databases

import (
	"context"
	"fmt"
	"sync"

	"github.com/advocate-tools/legal-case-manager/models"
)

// MemoryStore is an in-memory Store. Tests use it as the injectable fake; it
// applies the same quota rule as the sqlite backend when MaxValueBytes is set.
type MemoryStore struct {
	mu            sync.RWMutex
	data          map[string]string
	MaxValueBytes int64
}

// NewMemoryStore returns an empty in-memory store with no quota
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the stored value, or the empty string for an absent key
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

// Set replaces the value stored under key
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	if m.MaxValueBytes > 0 && int64(len(value)) > m.MaxValueBytes {
		return fmt.Errorf("%w: %d bytes for key %s", models.ErrQuotaExceeded, len(value), key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete removes the key; deleting an absent key is not an error
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
