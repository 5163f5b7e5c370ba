// Package automata compiles declarative finite-state machine
// specifications and executes them as deterministic Mealy transducers.
//
// A machine is described either in a small textual DSL or in YAML: three
// symbol alphabets (states, inputs, outputs) and an ordered list of
// transition rules, each optionally carrying a guard expression and a
// handler name. Compile turns such a specification into an immutable
// Program; New binds guards and handlers to Go functions over an instance
// data type D and returns a runnable Machine[D].
//
// Dispatch is deterministic: for a given state and input, the first rule in
// declaration order whose guard passes fires. When no rule matches, the
// machine enters the reserved Failure state and stays there. Liveness
// queries (CanStep, CanConsume, ...) use the exact same selection walk as
// the mutating operations, so a true answer means the corresponding
// operation will fire that rule.
//
// The current state lives in a takeable.Takeable container: while a handler
// runs it exclusively owns the state value, and a panicking handler leaves
// the machine permanently unusable rather than half-updated.
//
// Machines are not safe for concurrent use; callers sharing one must
// synchronize externally.
package automata
