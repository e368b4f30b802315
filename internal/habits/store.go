// ABOUTME: Habit store owning the habit list and the missed-day cache.
// ABOUTME: Mutations are synchronous; durable writes are debounced through the scheduler.
package habits

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/days"
	"github.com/harperreed/habits/internal/debounce"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
)

// Store holds every habit in memory and persists through an Adapter.
type Store struct {
	mu     sync.Mutex
	habits []*models.Habit
	missed map[string][]string

	adapter *storage.Adapter
	sched   *debounce.Debouncer
	clock   days.Clock
	logger  *log.Logger
}

// New creates an empty store. Call Load to read persisted state.
func New(adapter *storage.Adapter, sched *debounce.Debouncer, clock days.Clock, logger *log.Logger) *Store {
	if clock == nil {
		clock = days.SystemClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		missed:  make(map[string][]string),
		adapter: adapter,
		sched:   sched,
		clock:   clock,
		logger:  logger,
	}
}

// storedHabit accepts older records that carried createdAt instead of startDate.
type storedHabit struct {
	models.Habit
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Load replaces in-memory state with what is persisted. Malformed data is
// discarded by the adapter and the store starts empty.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.habits = nil
	s.missed = make(map[string][]string)

	stored, _ := storage.Load[[]storedHabit](s.adapter, storage.KeyHabits)
	now := s.clock.Now()
	for _, sh := range stored {
		h := sh.Habit
		if h.StartDate.IsZero() {
			if sh.CreatedAt != nil && !sh.CreatedAt.IsZero() {
				h.StartDate = *sh.CreatedAt
			} else {
				h.StartDate = now
			}
		}
		h.CompletionDates = dedupe(h.CompletionDates)
		if h.RemainingDays < 0 {
			h.RemainingDays = 0
		}
		s.habits = append(s.habits, &h)
	}

	if missed, ok := storage.Load[map[string][]string](s.adapter, storage.KeyMissedDays); ok && missed != nil {
		s.missed = missed
	}

	s.logger.Debug("loaded habits", "count", len(s.habits))
}

// Replace swaps in a whole new habit list and missed-day cache, e.g. from an import.
func (s *Store) Replace(habits []models.Habit, missed map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.habits = make([]*models.Habit, 0, len(habits))
	for i := range habits {
		h := habits[i].Clone()
		h.CompletionDates = dedupe(h.CompletionDates)
		s.habits = append(s.habits, h)
	}
	s.missed = make(map[string][]string, len(missed))
	for name, list := range missed {
		s.missed[name] = slices.Clone(list)
	}

	s.schedulePersist()
	s.persistMissed()
}

// List returns copies of all habits in creation order.
func (s *Store) List() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Get returns a copy of the habit with exactly this name.
func (s *Store) Get(name string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexExact(name)
	if idx < 0 {
		return nil, fmt.Errorf("get habit %q: %w", name, models.ErrNotFound)
	}
	return s.habits[idx].Clone(), nil
}

// Create adds a new habit starting now.
func (s *Store) Create(name, description string, numberOfDays int) (*models.Habit, error) {
	if err := models.ValidateHabitInput(name, description, numberOfDays); err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(name)
	if s.indexOfName(trimmed, -1) >= 0 {
		return nil, fmt.Errorf("create habit %q: %w", trimmed, models.ErrDuplicateName)
	}

	h := models.NewHabit(name, description, numberOfDays, s.clock.Now())
	s.habits = append(s.habits, h)
	s.schedulePersist()

	return h.Clone(), nil
}

// Edit applies update to the habit named name. The start date never changes.
// When the duration changes, remaining days are recomputed from completions
// and clamped at zero.
func (s *Store) Edit(name string, update models.HabitUpdate) (*models.Habit, error) {
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("edit habit %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexExact(name)
	if idx < 0 {
		return nil, fmt.Errorf("edit habit %q: %w", name, models.ErrNotFound)
	}

	updated := s.habits[idx].Clone()
	if update.Name != nil {
		newName := strings.TrimSpace(*update.Name)
		if s.indexOfName(newName, idx) >= 0 {
			return nil, fmt.Errorf("edit habit %q: %w", name, models.ErrDuplicateName)
		}
		updated.Name = newName
	}
	if update.Description != nil {
		updated.Description = strings.TrimSpace(*update.Description)
	}
	if update.NumberOfDays != nil {
		updated.NumberOfDays = *update.NumberOfDays
		updated.RemainingDays = max(0, updated.NumberOfDays-len(updated.CompletionDates))
	}

	old := s.habits[idx].Name
	s.habits[idx] = updated
	s.schedulePersist()

	if updated.Name != old {
		if cached, ok := s.missed[old]; ok {
			delete(s.missed, old)
			s.missed[updated.Name] = cached
			s.persistMissed()
		}
	}

	return updated.Clone(), nil
}

// CompleteToday marks the habit done for the current calendar day.
// Calling it again on the same day changes nothing.
func (s *Store) CompleteToday(name string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexExact(name)
	if idx < 0 {
		return nil, fmt.Errorf("complete habit %q: %w", name, models.ErrNotFound)
	}

	h := s.habits[idx]
	today := days.Key(s.clock.Now())
	if h.CompletedToday == today {
		return h.Clone(), nil
	}

	h.RemainingDays = max(0, h.RemainingDays-1)
	h.CompletedToday = today
	if !h.CompletedOn(today) {
		h.CompletionDates = append(h.CompletionDates, today)
	}
	s.schedulePersist()

	return h.Clone(), nil
}

// Delete removes the habit with exactly this name and reports whether it existed.
// Habit todos are not touched; the caller cascades.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexExact(name)
	if idx < 0 {
		return false
	}

	s.habits = slices.Delete(s.habits, idx, idx+1)
	s.schedulePersist()

	if _, ok := s.missed[name]; ok {
		delete(s.missed, name)
		s.persistMissed()
	}
	return true
}

// MissedDays reconciles and returns the missed days for the named habit.
// The reconciled set is written back to storage when it changed.
func (s *Store) MissedDays(name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexExact(name)
	if idx < 0 {
		return nil, fmt.Errorf("missed days %q: %w", name, models.ErrNotFound)
	}

	h := s.habits[idx]
	missed, dirty := Reconcile(h, s.missed[h.Name], s.clock.Now())
	if dirty {
		s.missed[h.Name] = missed
		s.persistMissed()
	}
	return slices.Clone(missed), nil
}

// MissedSnapshot returns a copy of the cached missed-day table without reconciling.
func (s *Store) MissedSnapshot() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]string, len(s.missed))
	for name, list := range s.missed {
		out[name] = slices.Clone(list)
	}
	return out
}

// snapshot deep-copies the habit list. Caller holds mu.
func (s *Store) snapshot() []models.Habit {
	out := make([]models.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		out = append(out, *h.Clone())
	}
	return out
}

// schedulePersist queues a debounced write of the full list. Caller holds mu.
func (s *Store) schedulePersist() {
	snap := s.snapshot()
	s.sched.Schedule(storage.KeyHabits, func() {
		_ = s.adapter.Save(storage.KeyHabits, snap)
	})
}

// persistMissed writes the missed-day table immediately. Caller holds mu.
func (s *Store) persistMissed() {
	_ = s.adapter.Save(storage.KeyMissedDays, maps.Clone(s.missed))
}

// indexExact finds a habit by exact name.
func (s *Store) indexExact(name string) int {
	return slices.IndexFunc(s.habits, func(h *models.Habit) bool { return h.Name == name })
}

// indexOfName finds a habit whose name matches case-insensitively, ignoring skip.
func (s *Store) indexOfName(name string, skip int) int {
	for i, h := range s.habits {
		if i != skip && models.NameMatches(h.Name, name) {
			return i
		}
	}
	return -1
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
