// ABOUTME: Read-only aggregates over the habit list.
// ABOUTME: Completion rate, per-habit progress, reminders, search, and summary counts.
package habits

import (
	"math"
	"strings"

	"github.com/harperreed/habits/internal/days"
	"github.com/harperreed/habits/internal/models"
)

// Summary counts finished and active habits.
type Summary struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Active         int `json:"active"`
	CompletionRate int `json:"completion_rate"`
}

// CompletionRate averages completions/target across habits as a rounded percentage.
// It is not clamped, so inconsistent data can exceed 100.
func (s *Store) CompletionRate() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return completionRate(s.habits)
}

func completionRate(habits []*models.Habit) int {
	if len(habits) == 0 {
		return 0
	}

	var total float64
	for _, h := range habits {
		if h.NumberOfDays <= 0 {
			continue
		}
		total += float64(len(h.CompletionDates)) / float64(h.NumberOfDays)
	}
	return int(math.Round(total / float64(len(habits)) * 100))
}

// Progress returns how far through its target duration a habit is, 0-100.
func Progress(h models.Habit) int {
	if h.NumberOfDays <= 0 {
		return 0
	}
	done := h.NumberOfDays - h.RemainingDays
	return int(math.Round(100 * float64(done) / float64(h.NumberOfDays)))
}

// Summary returns counts of finished and active habits with the completion rate.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{Total: len(s.habits), CompletionRate: completionRate(s.habits)}
	for _, h := range s.habits {
		if h.IsFinished() {
			sum.Completed++
		} else {
			sum.Active++
		}
	}
	return sum
}

// Reminders lists active habits not yet completed today.
func (s *Store) Reminders() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := days.Key(s.clock.Now())
	var out []models.Habit
	for _, h := range s.habits {
		if h.RemainingDays > 0 && h.CompletedToday != today {
			out = append(out, *h.Clone())
		}
	}
	return out
}

// Search matches query case-insensitively against names and descriptions.
// An empty query returns every habit.
func (s *Store) Search(query string) []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Habit
	for _, h := range s.habits {
		if q == "" ||
			strings.Contains(strings.ToLower(h.Name), q) ||
			strings.Contains(strings.ToLower(h.Description), q) {
			out = append(out, *h.Clone())
		}
	}
	return out
}

// CompletedToday reports whether h was completed on the store clock's current day.
func (s *Store) CompletedToday(h models.Habit) bool {
	return h.CompletedToday == days.Key(s.clock.Now())
}
