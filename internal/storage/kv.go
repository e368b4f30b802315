// ABOUTME: Key-value backend contract shared by SQLite, Badger, Charm and memory stores.
// ABOUTME: Values are opaque bytes; the Adapter layers JSON on top.
package storage

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by Get when a key has never been written or was deleted.
var ErrNotFound = errors.New("key not found")

// KV is a durable key-value store.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// MemoryKV keeps everything in a map. Used by tests and the "memory" backend.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// Compile-time checks that every backend implements KV.
var (
	_ KV = (*MemoryKV)(nil)
	_ KV = (*SQLiteKV)(nil)
	_ KV = (*BadgerKV)(nil)
	_ KV = (*CharmKV)(nil)
)

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value.
func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key; deleting a missing key is not an error.
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns all keys in sorted order.
func (m *MemoryKV) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op.
func (m *MemoryKV) Close() error {
	return nil
}
