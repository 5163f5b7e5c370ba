package takeable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeable_BasicOperations(t *testing.T) {
	tk := New(42)
	assert.True(t, tk.Usable())
	assert.Equal(t, 42, tk.Get())

	tk.Set(43)
	assert.Equal(t, 43, tk.Get())

	tk.Transform(func(n int) int { return n + 1 })
	assert.Equal(t, 44, tk.Get())

	out := Result(tk, func(n int) (int, int) { return n + 1, n })
	assert.Equal(t, 44, out)
	assert.Equal(t, 45, tk.Get())
}

func TestTakeable_TakeInvalidates(t *testing.T) {
	tk := New("torch")
	require.Equal(t, "torch", tk.Take())
	assert.False(t, tk.Usable())

	assert.Panics(t, func() { tk.Get() })
	assert.Panics(t, func() { tk.Set("again") })
	assert.Panics(t, func() { tk.Take() })
	assert.Panics(t, func() { tk.Transform(func(s string) string { return s }) })

	// Usable must stay callable on a dead container.
	assert.NotPanics(t, func() { tk.Usable() })
}

func TestTakeable_PanicDuringTransformPoisons(t *testing.T) {
	tk := New(1)

	require.Panics(t, func() {
		tk.Transform(func(int) int { panic("handler blew up") })
	})

	assert.False(t, tk.Usable())
	assert.Panics(t, func() { tk.Get() })
	assert.Panics(t, func() { tk.Transform(func(n int) int { return n }) })
}

func TestTakeable_NormalTransformKeepsExactlyOneValue(t *testing.T) {
	tk := New([]int{1, 2})
	tk.Transform(func(v []int) []int { return append(v, 3) })
	require.True(t, tk.Usable())
	assert.Equal(t, []int{1, 2, 3}, tk.Get())
}
