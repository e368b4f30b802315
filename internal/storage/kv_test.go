// ABOUTME: Contract tests run against every local KV backend.
// ABOUTME: Verifies get/set/delete/keys semantics and not-found reporting.
package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]KV {
	return map[string]KV{
		"memory": NewMemoryKV(),
		"sqlite": setupTestSQLite(t),
		"badger": setupTestBadger(t),
	}
}

func TestKVContract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Get("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}

			if err := kv.Set("habits:data", []byte(`[]`)); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := kv.Set("habits:todo", []byte(`[1]`)); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := kv.Set("habits:data", []byte(`[2]`)); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}

			got, err := kv.Get("habits:data")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(got) != `[2]` {
				t.Errorf("Get() = %s, want [2]", got)
			}

			keys, err := kv.Keys()
			if err != nil {
				t.Fatalf("Keys failed: %v", err)
			}
			if len(keys) != 2 || keys[0] != "habits:data" || keys[1] != "habits:todo" {
				t.Errorf("Keys() = %v", keys)
			}

			if err := kv.Delete("habits:data"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, err := kv.Get("habits:data"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
			}
			if err := kv.Delete("never-set"); err != nil {
				t.Errorf("Delete of missing key should not error: %v", err)
			}
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "habits.db")

	kv, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := kv.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	kv.Close()

	kv, err = OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer kv.Close()

	got, err := kv.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}
	if kv.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", kv.Path(), dbPath)
	}
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	kv, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	if err := kv.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	kv, err = OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer kv.Close()

	got, err := kv.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	buf := []byte("abc")
	kv.Set("k", buf)
	buf[0] = 'z'

	got, _ := kv.Get("k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller buffer: %q", got)
	}
}

func TestDataDirXDG(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	if got, want := DataDir(), filepath.Join(tmpDir, "habits"); got != want {
		t.Errorf("DataDir() = %s, want %s", got, want)
	}
	if got, want := DefaultDBPath(), filepath.Join(tmpDir, "habits", "habits.db"); got != want {
		t.Errorf("DefaultDBPath() = %s, want %s", got, want)
	}
}
