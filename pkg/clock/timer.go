package clock

import "time"

// Stopwatch measures time elapsed since it was created or last reset.
type Stopwatch struct {
	clock Clock
	start time.Time
}

// NewStopwatch starts a stopwatch on the given clock.
func NewStopwatch(c Clock) *Stopwatch {
	return &Stopwatch{clock: c, start: c.Now()}
}

// Elapsed returns the time since the last reset.
func (s *Stopwatch) Elapsed() time.Duration {
	return s.clock.Now().Sub(s.start)
}

// Reset restarts the measurement from now.
func (s *Stopwatch) Reset() {
	s.start = s.clock.Now()
}

// Timer composes a clock and a fixed delay into a timeout check.
// Typical use is a state payload whose guard asks IsTimeout.
type Timer struct {
	stopwatch *Stopwatch
	delay     time.Duration
}

// NewTimer starts a timer that times out after delay.
func NewTimer(c Clock, delay time.Duration) *Timer {
	return &Timer{stopwatch: NewStopwatch(c), delay: delay}
}

// IsTimeout reports whether the configured delay has elapsed.
func (t *Timer) IsTimeout() bool {
	return t.stopwatch.Elapsed() >= t.delay
}

// Elapsed returns the time since the timer was started or reset.
func (t *Timer) Elapsed() time.Duration {
	return t.stopwatch.Elapsed()
}

// Reset restarts the timeout window.
func (t *Timer) Reset() {
	t.stopwatch.Reset()
}
