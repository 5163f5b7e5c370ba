package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualClock_AdvanceIsVisibleToAllReaders(t *testing.T) {
	c := NewManual()

	type component struct{ times []time.Duration }
	read := func(comp *component) {
		comp.times = append(comp.times, c.Now().Sub(time.Time{}))
	}

	var a, b component

	read(&a) // t=0
	c.AdvanceBy(1 * time.Second)
	read(&a) // t=1
	read(&b) // t=1
	c.AdvanceBy(2 * time.Second)
	read(&a) // t=3
	c.AdvanceBy(1 * time.Second)
	read(&a) // t=4
	read(&b) // t=4

	assert.Equal(t, []time.Duration{0, time.Second, 3 * time.Second, 4 * time.Second}, a.times)
	assert.Equal(t, []time.Duration{time.Second, 4 * time.Second}, b.times)
}

func TestManualClock_AdvanceByRejectsNonPositive(t *testing.T) {
	c := NewManual()
	assert.Panics(t, func() { c.AdvanceBy(0) })
	assert.Panics(t, func() { c.AdvanceBy(-time.Second) })
}

func TestManualClock_AdvanceTo(t *testing.T) {
	c := NewManual()
	target := time.Time{}.Add(90 * time.Second)
	c.AdvanceTo(target)
	assert.Equal(t, target, c.Now())
}

func TestManualClock_ConcurrentReaders(t *testing.T) {
	c := NewManual()
	c.AdvanceBy(time.Second)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = c.Now()
			}
		}()
	}
	for range 10 {
		c.AdvanceBy(time.Millisecond)
	}
	wg.Wait()

	require.Equal(t, time.Second+10*time.Millisecond, c.Now().Sub(time.Time{}))
}

func TestTimer_TimeoutAndReset(t *testing.T) {
	c := NewManual()
	timer := NewTimer(c, 5*time.Second)

	assert.False(t, timer.IsTimeout())

	c.AdvanceBy(4 * time.Second)
	assert.False(t, timer.IsTimeout())
	assert.Equal(t, 4*time.Second, timer.Elapsed())

	c.AdvanceBy(1 * time.Second)
	assert.True(t, timer.IsTimeout())

	timer.Reset()
	assert.False(t, timer.IsTimeout())
	assert.Equal(t, time.Duration(0), timer.Elapsed())

	c.AdvanceBy(5 * time.Second)
	assert.True(t, timer.IsTimeout())
}

func TestStopwatch(t *testing.T) {
	c := NewManual()
	sw := NewStopwatch(c)
	c.AdvanceBy(42 * time.Millisecond)
	assert.Equal(t, 42*time.Millisecond, sw.Elapsed())
	sw.Reset()
	assert.Equal(t, time.Duration(0), sw.Elapsed())
}
