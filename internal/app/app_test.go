// ABOUTME: Integration tests for the wired application.
// ABOUTME: Exercises full workflows over real SQLite and Badger backends.
package app

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/days"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
	"github.com/harperreed/habits/internal/todos"
)

var start = time.Date(2025, time.April, 7, 8, 0, 0, 0, time.Local)

func testOptions(clock days.Clock) Options {
	return Options{Clock: clock, Logger: log.New(io.Discard)}
}

func openTestApp(t *testing.T, cfg *config.Config, clock days.Clock) *App {
	t.Helper()
	a, err := Open(cfg, testOptions(clock))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return a
}

func TestFullWorkflowPersistsAcrossRestart(t *testing.T) {
	for _, backend := range []string{"sqlite", "badger"} {
		t.Run(backend, func(t *testing.T) {
			cfg := &config.Config{Backend: backend, DataDir: t.TempDir()}
			clock := days.NewFixedClock(start)

			a := openTestApp(t, cfg, clock)
			if _, err := a.Habits.Create("Run", "5k", 3); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if _, err := a.Habits.CompleteToday("Run"); err != nil {
				t.Fatalf("CompleteToday() error = %v", err)
			}
			a.Todos.General.Add("buy milk", "2025-04-08", "")
			a.Todos.Habit.Add("new shoes", "", "Run")
			if err := a.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			b := openTestApp(t, cfg, clock)
			defer b.Close()

			h, err := b.Habits.Get("Run")
			if err != nil {
				t.Fatalf("Get() after reopen error = %v", err)
			}
			if h.RemainingDays != 2 || h.CompletedToday != days.Key(start) {
				t.Errorf("reloaded habit = %+v", h)
			}
			if got := b.Todos.General.Items(); len(got) != 1 || got[0].Text != "buy milk" {
				t.Errorf("general todos = %+v", got)
			}
			if got := b.Todos.Habit.ForHabit("Run"); len(got) != 1 {
				t.Errorf("habit todos = %+v", got)
			}
		})
	}
}

func TestDeleteHabitCascadesTodos(t *testing.T) {
	a := New(storage.NewMemoryKV(), "habits", 0, testOptions(days.NewFixedClock(start)))
	defer a.Close()

	a.Habits.Create("Run", "5k", 3)
	a.Habits.Create("Read", "pages", 3)
	a.Todos.Habit.Add("shoes", "", "Run")
	a.Todos.Habit.Add("route", "", "Run")
	a.Todos.Habit.Add("book", "", "Read")

	deleted, removed := a.DeleteHabit("Run")
	if !deleted || removed != 2 {
		t.Errorf("DeleteHabit() = %v, %d, want true, 2", deleted, removed)
	}
	if got := a.Todos.Habit.Items(); len(got) != 1 || got[0].HabitName != "Read" {
		t.Errorf("remaining habit todos = %+v", got)
	}

	if deleted, _ := a.DeleteHabit("Run"); deleted {
		t.Error("second DeleteHabit() = true")
	}
}

func TestDeleteHabitKeepsTodosWhenDeclined(t *testing.T) {
	opts := testOptions(days.NewFixedClock(start))
	opts.Confirm = todos.ConfirmFunc(func(string) bool { return false })
	a := New(storage.NewMemoryKV(), "habits", 0, opts)
	defer a.Close()

	a.Habits.Create("Run", "5k", 3)
	a.Todos.Habit.Add("shoes", "", "Run")

	deleted, removed := a.DeleteHabit("Run")
	if !deleted || removed != 0 {
		t.Errorf("DeleteHabit() = %v, %d, want true, 0", deleted, removed)
	}
	if len(a.Todos.Habit.Items()) != 1 {
		t.Error("declined purge removed todos")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	clock := days.NewFixedClock(start)
	src := New(storage.NewMemoryKV(), "habits", 0, testOptions(clock))
	defer src.Close()

	src.Habits.Create("Run", "5k", 5)
	src.Habits.CompleteToday("Run")
	clock.Advance(2)
	src.Todos.General.Add("call", "", "")
	src.Todos.Habit.Add("shoes", "2025-04-10", "Run")

	exported := src.Export()
	if got := exported.MissedDays["Run"]; len(got) != 2 {
		t.Errorf("exported missed days = %v, want 2 entries", got)
	}

	raw, err := exported.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	parsed, err := storage.ParseExport(raw)
	if err != nil {
		t.Fatalf("ParseExport() error = %v", err)
	}

	dst := New(storage.NewMemoryKV(), "other", 0, testOptions(clock))
	defer dst.Close()
	if err := dst.Import(parsed); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if got := dst.Habits.List(); len(got) != 1 || got[0].RemainingDays != 4 {
		t.Errorf("imported habits = %+v", got)
	}
	if got := dst.Todos.Habit.Items(); len(got) != 1 || *got[0].DueDate != "2025-04-10" {
		t.Errorf("imported habit todos = %+v", got)
	}
	if got, _ := dst.Habits.MissedDays("Run"); len(got) != 2 {
		t.Errorf("missed days after import = %v", got)
	}
}

func TestImportRejectsInvalidData(t *testing.T) {
	habit := func(name string, n int, completed ...string) models.Habit {
		h := models.NewHabit(name, "desc", n, start)
		h.RemainingDays = n - len(completed)
		h.CompletionDates = append(h.CompletionDates, completed...)
		return *h
	}
	todo := func(id int, text string) models.Todo { return models.Todo{ID: id, Text: text} }
	day := days.Key(start)

	tests := []struct {
		name    string
		mutate  func(d *storage.ExportData)
		wantErr error
	}{
		{"names differ only by case", func(d *storage.ExportData) {
			d.Habits = []models.Habit{habit("Run", 3), habit("run", 3)}
		}, models.ErrDuplicateName},
		{"zero days", func(d *storage.ExportData) {
			d.Habits = []models.Habit{habit("Run", 0)}
		}, models.ErrInvalidInput},
		{"blank name", func(d *storage.ExportData) {
			d.Habits = []models.Habit{habit(" ", 3)}
		}, models.ErrInvalidInput},
		{"negative remaining days", func(d *storage.ExportData) {
			h := habit("Run", 3)
			h.RemainingDays = -1
			d.Habits = []models.Habit{h}
		}, models.ErrInvalidInput},
		{"repeated completion day", func(d *storage.ExportData) {
			d.Habits = []models.Habit{habit("Run", 3, day, day)}
		}, models.ErrInvalidInput},
		{"repeated todo id", func(d *storage.ExportData) {
			d.Todos = []models.Todo{todo(1, "x"), todo(1, "y")}
		}, models.ErrInvalidInput},
		{"repeated habit todo id", func(d *storage.ExportData) {
			d.HabitTodos = []models.Todo{todo(2, "x"), todo(2, "y")}
		}, models.ErrInvalidInput},
		{"zero todo id", func(d *storage.ExportData) {
			d.Todos = []models.Todo{todo(0, "x")}
		}, models.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := days.NewFixedClock(start)
			a := New(storage.NewMemoryKV(), "habits", 0, testOptions(clock))
			defer a.Close()
			if _, err := a.Habits.Create("Keep", "existing", 4); err != nil {
				t.Fatal(err)
			}
			a.Todos.General.Add("existing", "", "")

			data := storage.NewExportData(start)
			tt.mutate(data)
			if err := a.Import(data); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Import() error = %v, want %v", err, tt.wantErr)
			}

			if got := a.Habits.List(); len(got) != 1 || got[0].Name != "Keep" {
				t.Errorf("habits after rejected import = %+v", got)
			}
			if got := a.Todos.General.Items(); len(got) != 1 || got[0].Text != "existing" {
				t.Errorf("todos after rejected import = %+v", got)
			}
		})
	}
}

func TestImportRejectsCaseDuplicatesAndRepeatedIDs(t *testing.T) {
	clock := days.NewFixedClock(start)
	a := New(storage.NewMemoryKV(), "habits", 0, testOptions(clock))
	defer a.Close()

	data := storage.NewExportData(start)
	data.Habits = []models.Habit{*models.NewHabit("Run", "5k", 3, start), *models.NewHabit("run", "5k", 3, start)}
	data.Todos = []models.Todo{{ID: 1, Text: "x"}, {ID: 1, Text: "y"}}

	if err := a.Import(data); !errors.Is(err, models.ErrDuplicateName) {
		t.Fatalf("Import() error = %v, want ErrDuplicateName", err)
	}
	if got := a.Habits.List(); len(got) != 0 {
		t.Errorf("habits after rejected import = %+v", got)
	}
	if got := a.Todos.General.Items(); len(got) != 0 {
		t.Errorf("todos after rejected import = %+v", got)
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	cfg := &config.Config{Backend: "floppy", DataDir: filepath.Join(t.TempDir(), "x")}
	if _, err := Open(cfg, testOptions(nil)); err == nil {
		t.Error("Open() with unknown backend should fail")
	}
}
