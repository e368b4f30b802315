// ABOUTME: Whole-state export and import through storage.ExportData.
// ABOUTME: Missed days are reconciled before export so the snapshot is current.
package app

import (
	"fmt"

	"github.com/harperreed/habits/internal/storage"
)

// Export captures all habits, missed days, and both todo lists.
func (a *App) Export() *storage.ExportData {
	data := storage.NewExportData(a.Clock.Now())

	data.Habits = a.Habits.List()
	for _, h := range data.Habits {
		if _, err := a.Habits.MissedDays(h.Name); err != nil {
			a.logger.Warn("skipping missed days", "habit", h.Name, "err", err)
		}
	}
	data.MissedDays = a.Habits.MissedSnapshot()
	data.Todos = a.Todos.General.Items()
	data.HabitTodos = a.Todos.Habit.Items()
	return data
}

// Import replaces all state with data. Writes follow the usual debounce.
// Invalid data is rejected before any state changes.
func (a *App) Import(data *storage.ExportData) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	a.Habits.Replace(data.Habits, data.MissedDays)
	a.Todos.General.Replace(data.Todos)
	a.Todos.Habit.Replace(data.HabitTodos)
	a.logger.Info("imported state",
		"habits", len(data.Habits),
		"todos", len(data.Todos),
		"habit_todos", len(data.HabitTodos))
	return nil
}
