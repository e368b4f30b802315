// ABOUTME: Tests for todo list operations, id assignment, and confirmation gating.
// ABOUTME: Uses in-memory storage and a manually flushed debouncer.
package todos

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/debounce"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
)

func setupTodos(t *testing.T, confirm Confirmer) (*Store, *storage.MemoryKV, *debounce.Debouncer) {
	t.Helper()
	kv := storage.NewMemoryKV()
	logger := log.New(io.Discard)
	sched := debounce.New(time.Hour)
	t.Cleanup(sched.Stop)

	s := New(storage.NewAdapter(kv, "habits", logger), sched, confirm, logger)
	s.Load()
	return s, kv, sched
}

func ids(items []models.Todo) []int {
	out := make([]int, 0, len(items))
	for _, t := range items {
		out = append(out, t.ID)
	}
	return out
}

func TestIDAssignment(t *testing.T) {
	s, _, _ := setupTodos(t, AlwaysConfirm)
	l := s.General

	a, _ := l.Add("A", "", "")
	b, _ := l.Add("B", "", "")
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", a.ID, b.ID)
	}

	if !l.Remove(1) {
		t.Fatal("Remove(1) = false")
	}
	c, _ := l.Add("C", "", "")
	if c.ID != 3 {
		t.Errorf("next id = %d, want 3", c.ID)
	}

	l.Remove(2)
	l.Remove(3)
	d, _ := l.Add("D", "", "")
	if d.ID != 1 {
		t.Errorf("id on empty list = %d, want 1", d.ID)
	}
}

func TestAddIgnoresBlankText(t *testing.T) {
	s, _, sched := setupTodos(t, AlwaysConfirm)

	if _, ok := s.General.Add("   ", "2025-01-01", ""); ok {
		t.Error("Add(blank) = true, want false")
	}
	if len(s.General.Items()) != 0 {
		t.Error("blank todo was stored")
	}
	if sched.Pending() != 0 {
		t.Error("blank add scheduled a write")
	}
}

func TestAddStoresDueDateAndHabit(t *testing.T) {
	s, _, _ := setupTodos(t, AlwaysConfirm)

	todo, ok := s.Habit.Add(" buy shoes ", "2025-02-01", "Run")
	if !ok {
		t.Fatal("Add() = false")
	}
	if todo.Text != "buy shoes" || todo.DueDate == nil || *todo.DueDate != "2025-02-01" || todo.HabitName != "Run" {
		t.Errorf("todo = %+v", todo)
	}

	undated, _ := s.General.Add("call mom", "", "")
	if undated.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", *undated.DueDate)
	}
}

func TestToggleAndUpdate(t *testing.T) {
	s, _, _ := setupTodos(t, AlwaysConfirm)
	l := s.General
	l.Add("A", "", "")

	if !l.Toggle(1) {
		t.Fatal("Toggle(1) = false")
	}
	if got, _ := l.Get(1); !got.Done {
		t.Error("todo not done after toggle")
	}
	l.Toggle(1)
	if got, _ := l.Get(1); got.Done {
		t.Error("todo still done after second toggle")
	}

	if !l.Update(1, "A2") {
		t.Fatal("Update(1) = false")
	}
	if got, _ := l.Get(1); got.Text != "A2" {
		t.Errorf("Text = %q, want A2", got.Text)
	}

	if l.Toggle(99) || l.Update(99, "x") || l.Remove(99) {
		t.Error("operations on a missing id reported success")
	}
	if _, err := l.Get(99); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Get(99) error = %v, want ErrNotFound", err)
	} else if err.Error() != "todo 99: not found" {
		t.Errorf("Get(99) error = %q, want %q", err, "todo 99: not found")
	}
}

func TestUpdateReplacesTextAsGiven(t *testing.T) {
	s, _, sched := setupTodos(t, AlwaysConfirm)
	l := s.General
	l.Add("A", "", "")
	sched.Flush()

	if !l.Update(1, "") {
		t.Fatal("Update(1, \"\") = false")
	}
	if got, _ := l.Get(1); got.Text != "" {
		t.Errorf("Text = %q, want empty", got.Text)
	}
	if sched.Pending() != 1 {
		t.Errorf("pending writes = %d, want 1", sched.Pending())
	}
}

func TestConfirmerMayReadTheList(t *testing.T) {
	var s *Store
	var seen []int
	peek := ConfirmFunc(func(string) bool {
		seen = append(seen, len(s.General.Items())+len(s.Habit.ForHabit("Run")))
		return true
	})
	s, _, _ = setupTodos(t, peek)
	s.General.Add("A", "", "")
	s.General.Add("B", "", "")
	s.Habit.Add("shoes", "", "Run")

	done := make(chan struct{})
	var removed, cleared, purged int
	go func() {
		defer close(done)
		if s.General.Remove(1) {
			removed = 1
		}
		cleared = s.General.RemoveAll()
		purged = s.Habit.RemoveAllForHabit("Run")
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("removal blocked while the confirmer read the list")
	}

	if removed != 1 || cleared != 1 || purged != 1 {
		t.Errorf("removed=%d cleared=%d purged=%d, want 1 each", removed, cleared, purged)
	}
	if want := []int{3, 2, 1}; len(seen) != 3 || seen[0] != want[0] || seen[1] != want[1] || seen[2] != want[2] {
		t.Errorf("list sizes seen by confirmer = %v, want %v", seen, want)
	}
}

func TestConfirmationGatesRemoval(t *testing.T) {
	var prompts []string
	deny := ConfirmFunc(func(p string) bool {
		prompts = append(prompts, p)
		return false
	})
	s, _, _ := setupTodos(t, deny)
	s.General.Add("A", "", "")
	s.Habit.Add("shoes", "", "Run")

	if s.General.Remove(1) {
		t.Error("Remove() = true after decline")
	}
	if n := s.General.RemoveAll(); n != 0 {
		t.Errorf("RemoveAll() = %d after decline", n)
	}
	if n := s.Habit.RemoveAllForHabit("Run"); n != 0 {
		t.Errorf("RemoveAllForHabit() = %d after decline", n)
	}
	if len(s.General.Items()) != 1 || len(s.Habit.Items()) != 1 {
		t.Error("declined removals changed state")
	}
	if len(prompts) != 3 {
		t.Errorf("prompts = %v, want 3", prompts)
	}
}

func TestRemoveAllForHabit(t *testing.T) {
	s, _, _ := setupTodos(t, AlwaysConfirm)
	s.Habit.Add("shoes", "", "Run")
	s.Habit.Add("route", "", "Run")
	s.Habit.Add("book", "", "Read")

	if n := s.Habit.RemoveAllForHabit("Run"); n != 2 {
		t.Errorf("removed %d, want 2", n)
	}
	if got := s.Habit.ForHabit("Read"); len(got) != 1 {
		t.Errorf("ForHabit(Read) = %v", got)
	}
	if n := s.Habit.RemoveAllForHabit("Run"); n != 0 {
		t.Errorf("second purge removed %d", n)
	}
}

func TestListsPersistIndependently(t *testing.T) {
	s, kv, sched := setupTodos(t, AlwaysConfirm)
	s.General.Add("A", "", "")
	s.Habit.Add("shoes", "", "Run")
	sched.Flush()

	raw, err := kv.Get("habits:todo")
	if err != nil {
		t.Fatalf("general list not saved: %v", err)
	}
	var general []models.Todo
	if err := json.Unmarshal(raw, &general); err != nil {
		t.Fatal(err)
	}
	if len(general) != 1 || general[0].Text != "A" {
		t.Errorf("persisted general = %+v", general)
	}
	if _, err := kv.Get("habits:todoinhabit"); err != nil {
		t.Errorf("habit list not saved: %v", err)
	}

	reloaded := New(storage.NewAdapter(kv, "habits", log.New(io.Discard)), sched, AlwaysConfirm, nil)
	reloaded.Load()
	if got := ids(reloaded.Habit.Items()); len(got) != 1 || got[0] != 1 {
		t.Errorf("reloaded habit ids = %v", got)
	}
}

func TestListFor(t *testing.T) {
	s, _, _ := setupTodos(t, AlwaysConfirm)
	if s.ListFor("") != s.General || s.ListFor("Run") != s.Habit {
		t.Error("ListFor picked the wrong list")
	}
}
