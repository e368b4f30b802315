// ABOUTME: Habits configuration management with backend selection.
// ABOUTME: Handles settings, defaults, and the storage backend factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/debounce"
	"github.com/harperreed/habits/internal/storage"
)

// Backends lists the accepted values for Config.Backend.
var Backends = []string{"sqlite", "badger", "charm", "memory"}

// Keys lists the settable config keys in display order.
var Keys = []string{"backend", "data_dir", "namespace", "debounce_ms", "log_level", "charm_host"}

// Config stores habits tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger", "charm", or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local storage.
	// SQLite puts habits.db here; Badger uses a badger/ subdirectory.
	// Supports ~ expansion. Defaults to ~/.local/share/habits.
	DataDir string `json:"data_dir,omitempty"`

	// Namespace prefixes every stored key.
	Namespace string `json:"namespace,omitempty"`

	// DebounceMS is the write debounce window. Nil means the default; 0 writes immediately.
	DebounceMS *int `json:"debounce_ms,omitempty"`

	LogLevel  string `json:"log_level,omitempty"`
	CharmHost string `json:"charm_host,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetNamespace returns the key namespace, defaulting to "habits".
func (c *Config) GetNamespace() string {
	if c.Namespace == "" {
		return "habits"
	}
	return c.Namespace
}

// GetDebounce returns the write debounce window.
func (c *Config) GetDebounce() time.Duration {
	if c.DebounceMS == nil {
		return debounce.DefaultWindow
	}
	return time.Duration(max(0, *c.DebounceMS)) * time.Millisecond
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() log.Level {
	if c.LogLevel == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// GetCharmHost returns the charm server host.
func (c *Config) GetCharmHost() string {
	if c.CharmHost == "" {
		return storage.DefaultCharmHost
	}
	return c.CharmHost
}

// Get returns the effective value of key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "backend":
		return c.GetBackend(), nil
	case "data_dir":
		return c.GetDataDir(), nil
	case "namespace":
		return c.GetNamespace(), nil
	case "debounce_ms":
		return strconv.FormatInt(c.GetDebounce().Milliseconds(), 10), nil
	case "log_level":
		return c.GetLogLevel().String(), nil
	case "charm_host":
		return c.GetCharmHost(), nil
	default:
		return "", fmt.Errorf("unknown config key: %q", key)
	}
}

// Set validates and assigns value to key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "backend":
		if !slices.Contains(Backends, value) {
			return fmt.Errorf("unknown backend: %q (want one of %s)", value, strings.Join(Backends, ", "))
		}
		c.Backend = value
	case "data_dir":
		c.DataDir = value
	case "namespace":
		c.Namespace = value
	case "debounce_ms":
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			return fmt.Errorf("debounce_ms must be a non-negative integer, got %q", value)
		}
		c.DebounceMS = &ms
	case "log_level":
		if _, err := log.ParseLevel(value); err != nil {
			return fmt.Errorf("invalid log level %q: %w", value, err)
		}
		c.LogLevel = value
	case "charm_host":
		c.CharmHost = value
	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a KV backend based on the configured backend.
func (c *Config) OpenStorage() (storage.KV, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend using this config's paths and hosts.
func (c *Config) OpenBackend(backend string) (storage.KV, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case "sqlite":
		return storage.OpenSQLite(filepath.Join(dataDir, "habits.db"))
	case "badger":
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case "charm":
		return storage.OpenCharm(c.GetNamespace(), c.GetCharmHost())
	case "memory":
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "habits", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
