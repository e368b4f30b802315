// ABOUTME: A persisted todo list with sequential integer ids.
// ABOUTME: Mutations apply immediately and schedule a debounced write of this list only.
package todos

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/debounce"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
)

// List is one todo collection stored under a single key.
type List struct {
	mu    sync.Mutex
	key   string
	items []models.Todo

	adapter *storage.Adapter
	sched   *debounce.Debouncer
	confirm Confirmer
	logger  *log.Logger
}

// NewList creates an empty list persisted under key.
func NewList(key string, adapter *storage.Adapter, sched *debounce.Debouncer, confirm Confirmer, logger *log.Logger) *List {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	if logger == nil {
		logger = log.Default()
	}
	return &List{key: key, adapter: adapter, sched: sched, confirm: confirm, logger: logger}
}

// Key returns the storage key of this list.
func (l *List) Key() string { return l.key }

// Load replaces in-memory items with what is persisted.
func (l *List) Load() {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, _ := storage.Load[[]models.Todo](l.adapter, l.key)
	l.items = items
	l.logger.Debug("loaded todos", "key", l.key, "count", len(l.items))
}

// Items returns a copy of every todo in insertion order.
func (l *List) Items() []models.Todo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// ForHabit returns the todos tagged with habitName.
func (l *List) ForHabit(habitName string) []models.Todo {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.Todo
	for _, t := range l.items {
		if t.HabitName == habitName {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Get returns the todo with id.
func (l *List) Get(id int) (models.Todo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.index(id)
	if idx < 0 {
		return models.Todo{}, fmt.Errorf("todo %d: %w", id, models.ErrNotFound)
	}
	return l.items[idx].Clone(), nil
}

// Add appends a todo. Blank text is ignored and reported as false.
// dueDate is a YYYY-MM-DD string or empty for none.
func (l *List) Add(text, dueDate, habitName string) (models.Todo, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t := models.Todo{ID: l.nextID(), Text: text, HabitName: habitName}
	if due := strings.TrimSpace(dueDate); due != "" {
		t.DueDate = &due
	}
	l.items = append(l.items, t)
	l.schedulePersist()

	return t.Clone(), true
}

// Remove deletes the todo with id after confirmation.
// The prompt runs without holding the list lock.
func (l *List) Remove(id int) bool {
	t, err := l.Get(id)
	if err != nil {
		return false
	}
	if !l.confirm.Confirm(fmt.Sprintf("Delete %q?", t.Text)) {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.index(id)
	if idx < 0 {
		return false
	}
	l.items = slices.Delete(l.items, idx, idx+1)
	l.schedulePersist()
	return true
}

// Toggle flips the done flag of the todo with id.
func (l *List) Toggle(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.index(id)
	if idx < 0 {
		return false
	}
	l.items[idx].Done = !l.items[idx].Done
	l.schedulePersist()
	return true
}

// Update replaces the text of the todo with id. Callers validate the text.
func (l *List) Update(id int, text string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.index(id)
	if idx < 0 {
		return false
	}
	l.items[idx].Text = text
	l.schedulePersist()
	return true
}

// RemoveAllForHabit deletes every todo tagged with habitName after one
// confirmation and returns how many were removed.
func (l *List) RemoveAllForHabit(habitName string) int {
	n := len(l.ForHabit(habitName))
	if n == 0 {
		return 0
	}
	if !l.confirm.Confirm(fmt.Sprintf("Delete %d todos for %q?", n, habitName)) {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	before := len(l.items)
	l.items = slices.DeleteFunc(l.items, func(t models.Todo) bool { return t.HabitName == habitName })
	removed := before - len(l.items)
	if removed > 0 {
		l.schedulePersist()
	}
	return removed
}

// RemoveAll clears the list after confirmation and returns how many were removed.
func (l *List) RemoveAll() int {
	n := len(l.Items())
	if n == 0 {
		return 0
	}
	if !l.confirm.Confirm(fmt.Sprintf("Delete all %d todos?", n)) {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := len(l.items)
	if removed == 0 {
		return 0
	}
	l.items = nil
	l.schedulePersist()
	return removed
}

// Replace swaps in a new set of items, e.g. from an import.
func (l *List) Replace(items []models.Todo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make([]models.Todo, 0, len(items))
	for _, t := range items {
		l.items = append(l.items, t.Clone())
	}
	l.schedulePersist()
}

// nextID is one more than the highest id, or 1 for an empty list. Caller holds mu.
func (l *List) nextID() int {
	highest := 0
	for _, t := range l.items {
		highest = max(highest, t.ID)
	}
	return highest + 1
}

func (l *List) index(id int) int {
	return slices.IndexFunc(l.items, func(t models.Todo) bool { return t.ID == id })
}

func (l *List) snapshot() []models.Todo {
	out := make([]models.Todo, 0, len(l.items))
	for _, t := range l.items {
		out = append(out, t.Clone())
	}
	return out
}

// schedulePersist queues a write of a deep copy of the list. Caller holds mu.
func (l *List) schedulePersist() {
	snap := l.snapshot()
	key := l.key
	l.sched.Schedule(key, func() {
		_ = l.adapter.Save(key, snap)
	})
}
