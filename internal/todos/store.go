// ABOUTME: Todo store pairing the general list with the habit-scoped list.
// ABOUTME: Both lists share one adapter and scheduler but persist under separate keys.
package todos

import (
	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/debounce"
	"github.com/harperreed/habits/internal/storage"
)

// Store holds the two todo lists.
type Store struct {
	General *List
	Habit   *List
}

// New creates both lists. Call Load to read persisted state.
func New(adapter *storage.Adapter, sched *debounce.Debouncer, confirm Confirmer, logger *log.Logger) *Store {
	return &Store{
		General: NewList(storage.KeyTodos, adapter, sched, confirm, logger),
		Habit:   NewList(storage.KeyHabitTodos, adapter, sched, confirm, logger),
	}
}

// Load reads both lists.
func (s *Store) Load() {
	s.General.Load()
	s.Habit.Load()
}

// ListFor picks the habit list when habitName is set, the general list otherwise.
func (s *Store) ListFor(habitName string) *List {
	if habitName != "" {
		return s.Habit
	}
	return s.General
}
