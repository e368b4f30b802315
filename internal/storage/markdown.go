// ABOUTME: Markdown rendering of a habit export.
// ABOUTME: Produces habit, missed-day, and todo tables for sharing.

package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/habits/internal/models"
)

// Markdown renders the export as Markdown tables.
func (d *ExportData) Markdown() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Habits Export - %s\n\n", d.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", d.ExportedAt.Format(time.RFC3339)))

	sb.WriteString("## Habits\n\n")
	if len(d.Habits) == 0 {
		sb.WriteString("_No habits._\n\n")
	} else {
		sb.WriteString("| Habit | Description | Started | Days | Remaining | Completed | Missed |\n")
		sb.WriteString("|-------|-------------|---------|------|-----------|-----------|--------|\n")
		for _, h := range d.Habits {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %d | %d | %d |\n",
				escapeCell(h.Name), escapeCell(h.Description),
				h.StartDate.Local().Format("2006-01-02"),
				h.NumberOfDays, h.RemainingDays,
				len(h.CompletionDates), len(d.MissedDays[h.Name])))
		}
		sb.WriteString("\n")
	}

	writeTodoTable(&sb, "General Todos", d.Todos, false)

	// Group habit todos by habit for readability
	grouped := make(map[string][]models.Todo)
	for _, t := range d.HabitTodos {
		grouped[t.HabitName] = append(grouped[t.HabitName], t)
	}
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeTodoTable(&sb, "Todos: "+name, grouped[name], true)
	}

	return sb.String()
}

func writeTodoTable(sb *strings.Builder, title string, todos []models.Todo, skipEmpty bool) {
	if len(todos) == 0 && skipEmpty {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	if len(todos) == 0 {
		sb.WriteString("_No todos._\n\n")
		return
	}
	sb.WriteString("| ID | Done | Due | Task |\n")
	sb.WriteString("|----|------|-----|------|\n")
	for _, t := range todos {
		done := " "
		if t.Done {
			done = "x"
		}
		due := "general"
		if t.DueDate != nil && *t.DueDate != "" {
			due = *t.DueDate
		}
		sb.WriteString(fmt.Sprintf("| %d | [%s] | %s | %s |\n", t.ID, done, due, escapeCell(t.Text)))
	}
	sb.WriteString("\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
