// ABOUTME: Todo model shared by the general and habit-scoped lists.
// ABOUTME: HabitName is empty for general todos.
package models

import "time"

// Todo is a single task. DueDate is a YYYY-MM-DD string or nil for an undated task.
type Todo struct {
	ID        int     `json:"id" yaml:"id"`
	Text      string  `json:"text" yaml:"text"`
	DueDate   *string `json:"dueDate" yaml:"dueDate"`
	Done      bool    `json:"done" yaml:"done"`
	HabitName string  `json:"habitName,omitempty" yaml:"habitName,omitempty"`
}

// Due parses the due date, returning false for undated or unparseable todos.
func (t Todo) Due() (time.Time, bool) {
	if t.DueDate == nil || *t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation("2006-01-02", *t.DueDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Clone returns a copy that does not share the DueDate pointer.
func (t Todo) Clone() Todo {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
