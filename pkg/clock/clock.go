// Package clock provides injectable time sources for state machines whose
// transitions depend on elapsed time.
//
// The execution engine itself never reads a clock; timeout policy lives in
// user-supplied guards that consult a Timer built from a shared Clock. The
// ManualClock lets tests and simulations advance time deterministically.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time. Implementations must be safe to share
// across goroutines; values are shared by reference.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when told to. It starts at the
// zero time and is internally synchronized, so one ManualClock may drive
// any number of machines concurrently with the test advancing it.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a ManualClock at the zero time.
func NewManual() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AdvanceBy moves the clock forward by d. Panics if d is not positive:
// a manual clock never goes backwards.
func (c *ManualClock) AdvanceBy(d time.Duration) {
	if d <= 0 {
		panic("clock: AdvanceBy requires a positive duration")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceTo sets the clock to an absolute instant.
func (c *ManualClock) AdvanceTo(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
