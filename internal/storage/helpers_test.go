// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides isolated backends and a discarding logger.
package storage

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func setupTestSQLite(t *testing.T) *SQLiteKV {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	kv, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func setupTestBadger(t *testing.T) *BadgerKV {
	t.Helper()
	kv, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory badger: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

// failingKV rejects every write.
type failingKV struct {
	*MemoryKV
}

var errWriteFailed = errors.New("disk full")

func (f failingKV) Set(string, []byte) error { return errWriteFailed }
