package automata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalsustr/automata/pkg/clock"
)

// Circuit breaker: trips open after a threshold of failures, probes again
// after a cooldown driven by a manual clock.
const breakerSrc = `
inputs(Success, Fail),
states(Closed, Open, HalfOpen),
transitions(
  (Closed, Success) -> (Closed) = reset_failures,
  (Closed, Fail) -> (Closed) : below_threshold = count_failure,
  (Closed, Fail) -> (Open) : !below_threshold = trip,
  (Open) -> (Open) : !cooled_down,
  (Open) -> (HalfOpen) : cooled_down,
  (HalfOpen, Fail) -> (Open) = trip,
  (HalfOpen, Success) -> (Closed) = reset_failures,
)
`

type breakerData struct {
	failures  int
	threshold int
	cooldown  *clock.Timer
}

func newBreaker(t *testing.T, c clock.Clock) *Machine[breakerData] {
	t.Helper()
	prog, err := Compile("CircuitBreaker", breakerSrc)
	require.NoError(t, err)

	data := &breakerData{
		threshold: 3,
		cooldown:  clock.NewTimer(c, 30*time.Second),
	}
	bindings := NewBindings[breakerData]().
		Guard("below_threshold", func(d *breakerData, _ Value) bool {
			return d.failures+1 < d.threshold
		}).
		Guard("cooled_down", func(d *breakerData, _ Value) bool {
			return d.cooldown.IsTimeout()
		}).
		Call("count_failure", func(d *breakerData) { d.failures++ }).
		Call("reset_failures", func(d *breakerData) { d.failures = 0 }).
		Call("trip", func(d *breakerData) {
			d.failures = 0
			d.cooldown.Reset()
		})

	m, err := New(prog, data, bindings)
	require.NoError(t, err)
	return m
}

func TestBreaker_TripsAfterThreshold(t *testing.T) {
	c := clock.NewManual()
	m := newBreaker(t, c)

	fail := Value{Name: "Fail"}
	require.NoError(t, m.Consume(fail))
	require.NoError(t, m.Consume(fail))
	assert.Equal(t, "Closed", m.State().Name)
	assert.Equal(t, 2, m.Data().failures)

	// Third failure reaches the threshold and trips the breaker.
	require.NoError(t, m.Consume(fail))
	assert.Equal(t, "Open", m.State().Name)
	assert.Equal(t, 0, m.Data().failures, "trip resets the counter")
}

func TestBreaker_CooldownThenProbe(t *testing.T) {
	c := clock.NewManual()
	m := newBreaker(t, c)

	fail := Value{Name: "Fail"}
	for i := 0; i < 3; i++ {
		require.NoError(t, m.Consume(fail))
	}
	require.Equal(t, "Open", m.State().Name)

	// While the cooldown runs, stepping keeps the breaker open.
	c.AdvanceBy(10 * time.Second)
	require.NoError(t, m.Step())
	assert.Equal(t, "Open", m.State().Name)

	c.AdvanceBy(25 * time.Second)
	require.NoError(t, m.Step())
	assert.Equal(t, "HalfOpen", m.State().Name)

	// A failed probe trips again and restarts the cooldown.
	require.NoError(t, m.Consume(fail))
	assert.Equal(t, "Open", m.State().Name)
	require.NoError(t, m.Step())
	assert.Equal(t, "Open", m.State().Name, "fresh cooldown after the probe failure")

	c.AdvanceBy(31 * time.Second)
	require.NoError(t, m.Step())
	require.Equal(t, "HalfOpen", m.State().Name)
	require.NoError(t, m.Consume(Value{Name: "Success"}))
	assert.Equal(t, "Closed", m.State().Name)
}

func TestBreaker_SuccessResetsCounter(t *testing.T) {
	c := clock.NewManual()
	m := newBreaker(t, c)

	fail := Value{Name: "Fail"}
	require.NoError(t, m.Consume(fail))
	require.NoError(t, m.Consume(fail))
	require.NoError(t, m.Consume(Value{Name: "Success"}))
	assert.Equal(t, 0, m.Data().failures)

	// The count starts over: two more failures do not trip.
	require.NoError(t, m.Consume(fail))
	require.NoError(t, m.Consume(fail))
	assert.Equal(t, "Closed", m.State().Name)
}
