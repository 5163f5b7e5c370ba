// Package takeable provides a single-slot container that always holds a
// value, except while a transformation of that value is in flight.
//
// The container exists so that a value can be handed into user code which
// owns it exclusively for the duration of the call, and a replacement value
// installed afterwards, without ever exposing a half-updated slot. If the
// transformation panics, the container is permanently invalidated: every
// later access panics immediately, except Usable, which never panics.
package takeable

// Message used when panicking because the container has been invalidated.
const panicMessage = "takeable: the value has already been removed"

// Takeable holds exactly one value of type T.
//
// The zero Takeable is unusable; construct with New.
type Takeable[T any] struct {
	value T
	held  bool
}

// New constructs a Takeable holding value.
func New[T any](value T) *Takeable[T] {
	return &Takeable[T]{value: value, held: true}
}

// Get returns the held value. Panics if the container is unusable.
func (t *Takeable[T]) Get() T {
	if !t.held {
		panic(panicMessage)
	}
	return t.value
}

// Set replaces the held value. Panics if the container is unusable:
// a poisoned container must not be silently revived.
func (t *Takeable[T]) Set(value T) {
	if !t.held {
		panic(panicMessage)
	}
	t.value = value
}

// Take moves the value out and permanently invalidates the container.
// Panics if the value has already been removed.
func (t *Takeable[T]) Take() T {
	if !t.held {
		panic(panicMessage)
	}
	t.held = false
	var zero T
	value := t.value
	t.value = zero
	return value
}

// Transform removes the held value, applies f and installs the result.
//
// While f runs the slot is empty. If f panics, the panic propagates and
// the container stays empty: all later calls except Usable panic.
func (t *Takeable[T]) Transform(f func(T) T) {
	Result(t, func(v T) (T, struct{}) {
		return f(v), struct{}{}
	})
}

// Result is Transform for transformations that also produce a result.
func Result[T, R any](t *Takeable[T], f func(T) (T, R)) R {
	old := t.Take()
	next, result := f(old)
	t.value = next
	t.held = true
	return result
}

// Usable reports whether the container still holds a value. It is the only
// method that is safe to call on an invalidated container.
func (t *Takeable[T]) Usable() bool {
	return t.held
}
