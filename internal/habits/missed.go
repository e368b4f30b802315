// ABOUTME: Missed-day reconciliation between a habit's completions and its cached missed set.
// ABOUTME: Pure function; the store decides whether to persist the result.
package habits

import (
	"slices"
	"time"

	"github.com/harperreed/habits/internal/days"
	"github.com/harperreed/habits/internal/models"
)

// Reconcile merges the days from the habit's start through now into cached.
// Days without a completion are added, completed days are removed, and any
// other cached day is kept. The result is ordered earliest first, and dirty
// reports whether it differs from cached and therefore needs writing back.
func Reconcile(h *models.Habit, cached []string, now time.Time) (missed []string, dirty bool) {
	completed := make(map[string]struct{}, len(h.CompletionDates))
	for _, d := range h.CompletionDates {
		completed[d] = struct{}{}
	}

	missed = []string{}
	seen := make(map[string]struct{}, len(cached))
	add := func(day string) {
		if _, done := completed[day]; done {
			return
		}
		if _, dup := seen[day]; dup {
			return
		}
		seen[day] = struct{}{}
		missed = append(missed, day)
	}

	for _, day := range cached {
		add(day)
	}
	for _, day := range days.Range(h.StartDate.In(now.Location()), now) {
		add(day)
	}
	slices.SortStableFunc(missed, compareDays)

	return missed, !slices.Equal(missed, cached)
}

// compareDays orders day strings chronologically. Unparseable entries sort last.
func compareDays(a, b string) int {
	ta, errA := days.Parse(a)
	tb, errB := days.Parse(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return ta.Compare(tb)
}
