// ABOUTME: Per-key debounced task scheduler used to coalesce persistence writes.
// ABOUTME: Flush runs pending work synchronously so tests never wait on timers.
package debounce

import (
	"sort"
	"sync"
	"time"
)

// DefaultWindow is the quiescence delay used when none is configured.
const DefaultWindow = 300 * time.Millisecond

// Debouncer delays work until a key has been quiet for the configured window.
// Scheduling the same key again replaces the pending work and restarts its timer.
type Debouncer struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*task
	seq     uint64
	stopped bool

	runMu   sync.Mutex
	lastRun map[string]uint64
}

type task struct {
	key   string
	seq   uint64
	fn    func()
	timer *time.Timer
}

// New creates a Debouncer. A zero or negative window runs work immediately.
func New(window time.Duration) *Debouncer {
	return &Debouncer{
		window:  window,
		pending: make(map[string]*task),
		lastRun: make(map[string]uint64),
	}
}

// Window returns the configured quiescence delay.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Schedule arranges for fn to run once key has been quiet for the window.
// After Stop, or with a zero window, fn runs before Schedule returns.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	d.seq++
	t := &task{key: key, seq: d.seq, fn: fn}

	if old, ok := d.pending[key]; ok {
		old.timer.Stop()
		delete(d.pending, key)
	}

	if d.stopped || d.window <= 0 {
		d.mu.Unlock()
		d.run(t)
		return
	}

	d.pending[key] = t
	t.timer = time.AfterFunc(d.window, func() { d.fire(t) })
	d.mu.Unlock()
}

// Pending returns the number of keys waiting to run.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush runs all pending work now, in key order, and waits for it to finish.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	tasks := make([]*task, 0, len(d.pending))
	for key, t := range d.pending {
		t.timer.Stop()
		tasks = append(tasks, t)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].key < tasks[j].key })
	for _, t := range tasks {
		d.run(t)
	}
}

// Stop flushes pending work. Later calls to Schedule run synchronously.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	d.Flush()
}

func (d *Debouncer) fire(t *task) {
	d.mu.Lock()
	if d.pending[t.key] != t {
		// Replaced or flushed while the timer was firing.
		d.mu.Unlock()
		return
	}
	delete(d.pending, t.key)
	d.mu.Unlock()

	d.run(t)
}

// run executes t unless a newer task for the same key already ran.
func (d *Debouncer) run(t *task) {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	if t.seq <= d.lastRun[t.key] {
		return
	}
	d.lastRun[t.key] = t.seq
	t.fn()
}
