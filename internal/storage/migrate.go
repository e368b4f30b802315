// ABOUTME: Data migration between habit storage backends.
// ABOUTME: Copies every persisted state key from source to destination.

package storage

import (
	"errors"
	"fmt"
)

// MigrateSummary holds counts of migrated entries.
type MigrateSummary struct {
	Keys    int
	Bytes   int
	Skipped int
}

// MigrateData copies the application state keys under namespace from src to dst.
// Keys absent in src are skipped. Existing values in dst are overwritten.
func MigrateData(src, dst KV, namespace string) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, key := range StateKeys {
		full := NamespacedKey(namespace, key)
		value, err := src.Get(full)
		if errors.Is(err, ErrNotFound) {
			summary.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", full, err)
		}
		if err := dst.Set(full, value); err != nil {
			return nil, fmt.Errorf("write destination %s: %w", full, err)
		}
		summary.Keys++
		summary.Bytes += len(value)
	}

	return summary, nil
}

// HasState reports whether kv holds any state key under namespace.
func HasState(kv KV, namespace string) (bool, error) {
	for _, key := range StateKeys {
		_, err := kv.Get(NamespacedKey(namespace, key))
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return false, err
		}
	}
	return false, nil
}
