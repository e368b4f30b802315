// ABOUTME: CLI command for a month calendar of one habit.
// ABOUTME: Marks completed days green and missed days red.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/days"
	"github.com/harperreed/habits/internal/habits"
	"github.com/spf13/cobra"
)

var showMonth string

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a month calendar for a habit",
	Long: `Show a habit's details and a month calendar.

Completed days are green, missed days are red. Defaults to the current month.

EXAMPLES:

  habits show Run
  habits show Run --month 2025-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := habitsApp.Habits.Get(args[0])
		if err != nil {
			return err
		}
		missed, err := habitsApp.Habits.MissedDays(h.Name)
		if err != nil {
			return err
		}

		now := clock.Now()
		month := now
		if showMonth != "" {
			month, err = time.ParseInLocation("2006-01", showMonth, now.Location())
			if err != nil {
				return fmt.Errorf("invalid month: %s (use YYYY-MM)", showMonth)
			}
		}

		printHabit(*h, habitsApp.Habits.CompletedToday(*h))
		fmt.Printf("  %s\n\n", faint.Sprintf("started %s · %d%% complete", days.Key(h.StartDate.In(now.Location())), habits.Progress(*h)))

		completed := make(map[string]bool, len(h.CompletionDates))
		for _, d := range h.CompletionDates {
			completed[d] = true
		}
		missedSet := make(map[string]bool, len(missed))
		for _, d := range missed {
			missedSet[d] = true
		}

		fmt.Println(renderCalendar(month, func(day time.Time) string {
			label := fmt.Sprintf("%2d", day.Day())
			key := days.Key(day)
			switch {
			case completed[key]:
				return color.GreenString(label)
			case missedSet[key]:
				return color.RedString(label)
			case days.SameDay(day, now):
				return color.New(color.Bold).Sprint(label)
			default:
				return faint.Sprint(label)
			}
		}))
		return nil
	},
}

// calendarWeeks lays out a month as weeks starting on Sunday.
// Cells outside the month are zero.
func calendarWeeks(year int, month time.Month, loc *time.Location) [][]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1).Day()

	var weeks [][]int
	week := make([]int, 7)
	col := int(first.Weekday())
	for d := 1; d <= last; d++ {
		week[col] = d
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// renderCalendar draws the month containing month, styling each day with cell.
func renderCalendar(month time.Time, cell func(time.Time) string) string {
	var b strings.Builder
	title := month.Format("January 2006")
	fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", (20-len(title))/2), title)
	b.WriteString("Su Mo Tu We Th Fr Sa\n")

	for _, week := range calendarWeeks(month.Year(), month.Month(), month.Location()) {
		cells := make([]string, 7)
		for i, d := range week {
			if d == 0 {
				cells[i] = "  "
				continue
			}
			cells[i] = cell(time.Date(month.Year(), month.Month(), d, 0, 0, 0, 0, month.Location()))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func init() {
	showCmd.Flags().StringVar(&showMonth, "month", "", "month to show (YYYY-MM)")
	rootCmd.AddCommand(showCmd)
}
