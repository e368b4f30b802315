// ABOUTME: Charm KV backend with optional automatic cloud sync.
// ABOUTME: Guards writes when another process holds the database read-only.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
)

// DefaultCharmHost is used when the config does not name a server.
const DefaultCharmHost = "charm.2389.dev"

// ErrReadOnly is returned by writes while another process holds the lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// CharmKV stores values in a Charm KV database.
type CharmKV struct {
	kv       *kv.KV
	name     string
	autoSync bool
	mu       sync.RWMutex
}

// OpenCharm opens the named Charm KV database against host.
func OpenCharm(name, host string) (*CharmKV, error) {
	if host == "" {
		host = DefaultCharmHost
	}
	// Set server before opening KV
	if err := os.Setenv("CHARM_HOST", host); err != nil {
		return nil, fmt.Errorf("set charm host: %w", err)
	}

	db, err := kv.OpenWithDefaultsFallback(name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	c := &CharmKV{kv: db, name: name, autoSync: true}

	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return c, nil
}

// Name returns the Charm database name.
func (c *CharmKV) Name() string {
	return c.name
}

// IsReadOnly returns true if the database is open in read-only mode.
func (c *CharmKV) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// SetAutoSync enables or disables sync after every write.
func (c *CharmKV) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// Sync synchronizes local state with Charm Cloud.
func (c *CharmKV) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// ID returns the Charm user ID for the current account.
func (c *CharmKV) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *CharmKV) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Get returns the value stored under key.
func (c *CharmKV) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	val, err := c.kv.Get([]byte(key))
	if err != nil {
		// The backend's missing-key error is not exported consistently; confirm via Keys.
		if !c.hasKey(key) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return val, nil
}

// Set stores value under key and syncs if enabled.
func (c *CharmKV) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Delete removes key and syncs if enabled.
func (c *CharmKV) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if !c.hasKey(key) {
		return nil
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Keys lists every stored key.
func (c *CharmKV) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, string(k))
	}
	return keys, nil
}

// Close closes the KV database.
func (c *CharmKV) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// syncIfEnabled calls Sync if autoSync is enabled. Caller holds mu.
func (c *CharmKV) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// hasKey reports whether key exists. Caller holds mu.
func (c *CharmKV) hasKey(key string) bool {
	keys, err := c.kv.Keys()
	if err != nil {
		return false
	}
	want := []byte(key)
	for _, k := range keys {
		if bytes.Equal(k, want) {
			return true
		}
	}
	return false
}
