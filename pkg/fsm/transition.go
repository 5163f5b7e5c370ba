package fsm

import "fmt"

// Placeholders used when rendering a transition whose optional parts are
// absent. Diagnostics rely on this exact canonical form.
const (
	NoInput   = "NoInput"
	NoOutput  = "NoOutput"
	NoGuard   = "NoGuard"
	NoHandler = "NoHandler"
)

// Transition is one declarative rule of a machine specification.
//
// Input and Output may be empty: an absent input means the rule fires on
// Nothing (unconditional or timer-driven transitions), an absent output
// means the rule produces Nothing. Guard and Handler are optional.
type Transition struct {
	From    string
	Input   string
	To      string
	Output  string
	Guard   GuardExpr
	Handler string

	// Line is the 1-based source line of the rule, when parsed from text.
	Line int
}

// String renders the rule in the canonical diagnostic form
// "(from,input) -> (to,output) : guard = handler" with No* placeholders
// for absent parts.
func (t Transition) String() string {
	input := t.Input
	if input == "" {
		input = NoInput
	}
	output := t.Output
	if output == "" {
		output = NoOutput
	}
	guard := NoGuard
	if t.Guard != nil {
		guard = t.Guard.String()
	}
	handler := t.Handler
	if handler == "" {
		handler = NoHandler
	}
	return fmt.Sprintf("(%s,%s) -> (%s,%s) : %s = %s", t.From, input, t.To, output, guard, handler)
}

// dsl renders the rule in re-parseable DSL form (placeholders omitted).
func (t Transition) dsl() string {
	lhs := "(" + t.From
	if t.Input != "" {
		lhs += ", " + t.Input
	}
	lhs += ")"
	rhs := "(" + t.To
	if t.Output != "" {
		rhs += ", " + t.Output
	}
	rhs += ")"
	s := lhs + " -> " + rhs
	if t.Guard != nil {
		s += " : " + t.Guard.String()
	}
	if t.Handler != "" {
		s += " = " + t.Handler
	}
	return s
}
