package automata

import (
	"errors"
	"fmt"
)

// ErrMachineFailed is returned by every mutating operation after the
// machine has entered the Failure state or its state container has been
// poisoned by a panicking handler.
var ErrMachineFailed = errors.New("automata: machine has failed")

// InvalidTransitionError reports that no rule matched the current state and
// input. The machine has entered the Failure state.
type InvalidTransitionError struct {
	From  string
	Input string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("automata: no transition from state %s on input %s", e.From, e.Input)
}

// UnexpectedOutputError reports that the rule selected for a Produce or
// Relay call would emit a different output than the caller expected. The
// machine has entered the Failure state; the selected handler did not run.
type UnexpectedOutputError struct {
	Want string
	Got  string
}

func (e *UnexpectedOutputError) Error() string {
	return fmt.Sprintf("automata: expected output %s, selected rule emits %s", e.Want, e.Got)
}
