// internal/store/memory.go
//
// In-memory implementation of KV.
// Used for ephemeral sessions, primarily in development/testing, or when
// durability is not required.
//
// Characteristics:
//   - Values stored by key in a map, copied on Set and Get.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// memory is an in-memory map-based KV implementation.
type memory struct {
	mu     sync.RWMutex      // guards values
	values map[string][]byte // keyed by full key
}

// NewMemory constructs a new in-memory KV.
func NewMemory() KV {
	return &memory{values: make(map[string][]byte)}
}

// Get looks up key. A missing key is not an error.
func (m *memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set adds or replaces the value for key.
func (m *memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memory) Close() error { return nil }
