// ABOUTME: Clock abstraction so stores can be driven by a fixed time in tests.
// ABOUTME: SystemClock reads local wall time; FixedClock is settable.
package days

import (
	"sync"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall-clock time.
type SystemClock struct{}

// Now returns time.Now in the local zone.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the time it was last set to.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixedClock creates a clock pinned to t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

// Now returns the pinned time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// Advance moves the clock by n calendar days. Negative n moves it back.
func (c *FixedClock) Advance(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.AddDate(0, 0, n)
}
