// ABOUTME: Output helpers shared by the CLI commands.
// ABOUTME: Padding, truncation, progress bars, and habit lines.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/habits"
	"github.com/harperreed/habits/internal/models"
)

var faint = color.New(color.Faint)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// progressBar renders pct (0-100) as a fixed-width bar.
func progressBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// printHabit writes one summary line for h.
func printHabit(h models.Habit, doneToday bool) {
	mark := faint.Sprint("○")
	if doneToday {
		mark = color.GreenString("✓")
	}
	pct := habits.Progress(h)
	fmt.Printf("%s %s %s %3d%% %s\n",
		mark,
		padRight(truncate(h.Name, 24), 24),
		progressBar(pct, 20),
		pct,
		faint.Sprintf("%d/%d days left · %s", h.RemainingDays, h.NumberOfDays, truncate(h.Description, 40)))
}
