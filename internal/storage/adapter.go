// ABOUTME: JSON persistence adapter over a KV backend.
// ABOUTME: Namespaces keys, discards malformed state, and logs write failures.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Persisted state keys.
const (
	KeyHabits     = "data"
	KeyMissedDays = "missedDays"
	KeyTodos      = "todo"
	KeyHabitTodos = "todoinhabit"
)

// StateKeys lists every key the application persists.
var StateKeys = []string{KeyHabits, KeyMissedDays, KeyTodos, KeyHabitTodos}

// Adapter reads and writes JSON documents under a namespace.
type Adapter struct {
	kv        KV
	namespace string
	logger    *log.Logger
}

// NewAdapter wraps kv. An empty namespace stores keys unprefixed.
func NewAdapter(kv KV, namespace string, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{kv: kv, namespace: namespace, logger: logger}
}

// NamespacedKey returns the backend key for a state key.
func NamespacedKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}

// KV returns the underlying backend.
func (a *Adapter) KV() KV {
	return a.kv
}

// Namespace returns the key prefix.
func (a *Adapter) Namespace() string {
	return a.namespace
}

// Save marshals v and writes it under key. Failures are logged and returned.
func (a *Adapter) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("failed to encode state", "key", key, "err", err)
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := a.kv.Set(NamespacedKey(a.namespace, key), data); err != nil {
		a.logger.Error("failed to save state", "key", key, "err", err)
		return fmt.Errorf("save %s: %w", key, err)
	}
	a.logger.Debug("saved state", "key", key, "bytes", len(data))
	return nil
}

// Remove deletes key. Failures are logged and returned.
func (a *Adapter) Remove(key string) error {
	if err := a.kv.Delete(NamespacedKey(a.namespace, key)); err != nil {
		a.logger.Error("failed to remove state", "key", key, "err", err)
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Load reads key into a fresh T. It reports false when the key is missing,
// unreadable, or malformed; malformed entries are deleted so the next start is clean.
func Load[T any](a *Adapter, key string) (T, bool) {
	var zero T

	data, err := a.kv.Get(NamespacedKey(a.namespace, key))
	if errors.Is(err, ErrNotFound) {
		return zero, false
	}
	if err != nil {
		a.logger.Error("failed to read state", "key", key, "err", err)
		return zero, false
	}

	result, err := unmarshalJSON[T](data)
	if err != nil {
		a.logger.Warn("discarding malformed state", "key", key, "err", err)
		_ = a.Remove(key)
		return zero, false
	}
	return *result, true
}

// unmarshalJSON is a helper to unmarshal JSON data.
func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
