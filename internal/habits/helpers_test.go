// ABOUTME: Shared fixtures for habit store tests.
// ABOUTME: Builds a store over in-memory storage with a fixed clock and a manual debouncer.
package habits

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/days"
	"github.com/harperreed/habits/internal/debounce"
	"github.com/harperreed/habits/internal/storage"
)

type fixture struct {
	store   *Store
	kv      *storage.MemoryKV
	adapter *storage.Adapter
	sched   *debounce.Debouncer
	clock   *days.FixedClock
}

// day0 is a Monday morning in local time.
var day0 = time.Date(2025, time.January, 6, 9, 30, 0, 0, time.Local)

func setupStore(t *testing.T) *fixture {
	t.Helper()
	kv := storage.NewMemoryKV()
	return setupStoreOn(t, kv)
}

func setupStoreOn(t *testing.T, kv *storage.MemoryKV) *fixture {
	t.Helper()
	logger := log.New(io.Discard)
	adapter := storage.NewAdapter(kv, "habits", logger)
	sched := debounce.New(time.Hour)
	clock := days.NewFixedClock(day0)
	t.Cleanup(sched.Stop)

	s := New(adapter, sched, clock, logger)
	s.Load()
	return &fixture{store: s, kv: kv, adapter: adapter, sched: sched, clock: clock}
}

func mustCreate(t *testing.T, s *Store, name, desc string, n int) {
	t.Helper()
	if _, err := s.Create(name, desc, n); err != nil {
		t.Fatalf("Create(%q) error = %v", name, err)
	}
}

func mustComplete(t *testing.T, s *Store, name string) {
	t.Helper()
	if _, err := s.CompleteToday(name); err != nil {
		t.Fatalf("CompleteToday(%q) error = %v", name, err)
	}
}

func ptr[T any](v T) *T { return &v }
