// ABOUTME: Habit model with target duration and per-day completion tracking.
// ABOUTME: JSON field names match the persisted "data" key layout.
package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Habit is a tracked goal with a fixed target duration in days.
type Habit struct {
	Name            string    `json:"habitName" yaml:"habitName"`
	Description     string    `json:"habitDescription" yaml:"habitDescription"`
	NumberOfDays    int       `json:"numberOfDays" yaml:"numberOfDays"`
	RemainingDays   int       `json:"remainingDays" yaml:"remainingDays"`
	StartDate       time.Time `json:"startDate" yaml:"startDate"`
	CompletedToday  string    `json:"completedToday" yaml:"completedToday"`
	CompletionDates []string  `json:"completionDates" yaml:"completionDates"`
}

// NewHabit creates a Habit starting at the given time with no completions.
// Name and description are trimmed; validation is left to ValidateHabitInput.
func NewHabit(name, description string, numberOfDays int, start time.Time) *Habit {
	return &Habit{
		Name:            strings.TrimSpace(name),
		Description:     strings.TrimSpace(description),
		NumberOfDays:    numberOfDays,
		RemainingDays:   numberOfDays,
		StartDate:       start,
		CompletionDates: []string{},
	}
}

// Clone returns a deep copy.
func (h *Habit) Clone() *Habit {
	c := *h
	c.CompletionDates = slices.Clone(h.CompletionDates)
	if c.CompletionDates == nil {
		c.CompletionDates = []string{}
	}
	return &c
}

// CompletedOn reports whether day is one of the completion dates.
func (h *Habit) CompletedOn(day string) bool {
	return slices.Contains(h.CompletionDates, day)
}

// IsFinished reports whether no days remain.
func (h *Habit) IsFinished() bool {
	return h.RemainingDays == 0
}

// NameMatches compares names the way uniqueness is enforced: trimmed, case-insensitive.
func NameMatches(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// HabitUpdate carries the fields an edit may change. Nil fields are left alone.
type HabitUpdate struct {
	Name         *string
	Description  *string
	NumberOfDays *int
}

// IsEmpty reports whether the update changes nothing.
func (u HabitUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.NumberOfDays == nil
}

// ValidateHabitInput checks the fields required to create a habit.
func ValidateHabitInput(name, description string, numberOfDays int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: habit name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: habit description is required", ErrInvalidInput)
	}
	if numberOfDays <= 0 {
		return fmt.Errorf("%w: number of days must be a positive integer", ErrInvalidInput)
	}
	return nil
}

// Validate checks only the fields present in the update.
func (u HabitUpdate) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fmt.Errorf("%w: habit name is required", ErrInvalidInput)
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return fmt.Errorf("%w: habit description is required", ErrInvalidInput)
	}
	if u.NumberOfDays != nil && *u.NumberOfDays <= 0 {
		return fmt.Errorf("%w: number of days must be a positive integer", ErrInvalidInput)
	}
	return nil
}
