// ABOUTME: Export and import functionality for habit data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/habits/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export.
const ExportVersion = "1.0"

// ExportData represents the full export format for habit data.
type ExportData struct {
	Version    string              `json:"version" yaml:"version"`
	ExportedAt time.Time           `json:"exported_at" yaml:"exported_at"`
	Tool       string              `json:"tool" yaml:"tool"`
	Habits     []models.Habit      `json:"habits" yaml:"habits"`
	MissedDays map[string][]string `json:"missed_days" yaml:"missed_days"`
	Todos      []models.Todo       `json:"todos" yaml:"todos"`
	HabitTodos []models.Todo       `json:"habit_todos" yaml:"habit_todos"`
}

// NewExportData stamps an empty export with version, tool and time.
func NewExportData(now time.Time) *ExportData {
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: now,
		Tool:       "habits",
		Habits:     []models.Habit{},
		MissedDays: map[string][]string{},
		Todos:      []models.Todo{},
		HabitTodos: []models.Todo{},
	}
}

// JSON renders the export as indented JSON.
func (d *ExportData) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML renders the export as YAML.
func (d *ExportData) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseExport decodes a JSON or YAML export.
func ParseExport(data []byte) (*ExportData, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty export")
	}

	var export ExportData
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &export); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &export); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}

	if export.Version == "" {
		return nil, fmt.Errorf("missing export version")
	}
	if export.MissedDays == nil {
		export.MissedDays = map[string][]string{}
	}
	return &export, nil
}

// Validate checks the invariants the stores rely on: habits pass creation
// rules, names are unique ignoring case, remaining days lie in [0, numberOfDays],
// completion days are not repeated, and todo ids are positive and unique per list.
func (d *ExportData) Validate() error {
	for i, h := range d.Habits {
		if err := models.ValidateHabitInput(h.Name, h.Description, h.NumberOfDays); err != nil {
			return fmt.Errorf("habit %d: %w", i+1, err)
		}
		if h.RemainingDays < 0 || h.RemainingDays > h.NumberOfDays {
			return fmt.Errorf("habit %q: %w: remaining days %d outside 0..%d",
				h.Name, models.ErrInvalidInput, h.RemainingDays, h.NumberOfDays)
		}
		for _, prev := range d.Habits[:i] {
			if models.NameMatches(prev.Name, h.Name) {
				return fmt.Errorf("habit %q: %w", h.Name, models.ErrDuplicateName)
			}
		}
		seen := make(map[string]struct{}, len(h.CompletionDates))
		for _, day := range h.CompletionDates {
			if _, dup := seen[day]; dup {
				return fmt.Errorf("habit %q: %w: completion day %q repeated", h.Name, models.ErrInvalidInput, day)
			}
			seen[day] = struct{}{}
		}
	}

	if err := validateTodoIDs("todos", d.Todos); err != nil {
		return err
	}
	return validateTodoIDs("habit todos", d.HabitTodos)
}

func validateTodoIDs(list string, items []models.Todo) error {
	seen := make(map[int]struct{}, len(items))
	for _, t := range items {
		if t.ID <= 0 {
			return fmt.Errorf("%s: %w: todo id %d is not positive", list, models.ErrInvalidInput, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%s: %w: todo id %d repeated", list, models.ErrInvalidInput, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
