// ABOUTME: Application wiring: backend, adapter, scheduler, and the habit and todo stores.
// ABOUTME: One App is built per process and shared by the CLI and the MCP server.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/days"
	"github.com/harperreed/habits/internal/debounce"
	"github.com/harperreed/habits/internal/habits"
	"github.com/harperreed/habits/internal/storage"
	"github.com/harperreed/habits/internal/todos"
)

// Options carries the injectable collaborators. Zero values pick defaults.
type Options struct {
	Clock   days.Clock
	Confirm todos.Confirmer
	Logger  *log.Logger
}

// App owns the storage backend and the stores built on it.
type App struct {
	KV      storage.KV
	Adapter *storage.Adapter
	Sched   *debounce.Debouncer
	Habits  *habits.Store
	Todos   *todos.Store
	Clock   days.Clock

	logger *log.Logger
}

// Open opens the configured backend and loads persisted state.
func Open(cfg *config.Config, opts Options) (*App, error) {
	kv, err := cfg.OpenStorage()
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.GetBackend(), err)
	}
	return New(kv, cfg.GetNamespace(), cfg.GetDebounce(), opts), nil
}

// New builds an App over an already open backend and loads state from it.
func New(kv storage.KV, namespace string, window time.Duration, opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = days.SystemClock{}
	}
	if opts.Confirm == nil {
		opts.Confirm = todos.AlwaysConfirm
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	adapter := storage.NewAdapter(kv, namespace, opts.Logger)
	sched := debounce.New(window)

	a := &App{
		KV:      kv,
		Adapter: adapter,
		Sched:   sched,
		Habits:  habits.New(adapter, sched, opts.Clock, opts.Logger),
		Todos:   todos.New(adapter, sched, opts.Confirm, opts.Logger),
		Clock:   opts.Clock,
		logger:  opts.Logger,
	}
	a.Habits.Load()
	a.Todos.Load()
	return a
}

// Flush writes every pending change now.
func (a *App) Flush() {
	a.Sched.Flush()
}

// Close flushes pending writes and closes the backend.
func (a *App) Close() error {
	a.Sched.Stop()
	a.logger.Debug("flushed pending writes")
	return a.KV.Close()
}

// DeleteHabit removes a habit and purges its habit-scoped todos.
// It reports whether the habit existed and how many todos were removed.
func (a *App) DeleteHabit(name string) (bool, int) {
	if !a.Habits.Delete(name) {
		return false, 0
	}
	return true, a.Todos.Habit.RemoveAllForHabit(name)
}

// Charm returns the backend as a CharmKV when sync is available.
func (a *App) Charm() (*storage.CharmKV, bool) {
	c, ok := a.KV.(*storage.CharmKV)
	return c, ok
}
