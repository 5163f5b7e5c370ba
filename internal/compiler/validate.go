// Package compiler validates abstract machine specifications and lowers
// them into immutable dispatch programs. It is a pure compile-time pass:
// nothing here mutates machine state or invokes user code.
package compiler

import (
	"fmt"
	"strings"

	"github.com/michalsustr/automata/pkg/fsm"
)

// Diagnostic is one semantic problem found in a specification. When the
// problem is tied to a rule, Transition names it in canonical form.
type Diagnostic struct {
	Transition *fsm.Transition
	Message    string
}

func (d Diagnostic) String() string {
	if d.Transition != nil {
		return fmt.Sprintf("%s in %s", d.Message, d.Transition)
	}
	return d.Message
}

// Diagnostics is the full list of problems. Any non-empty list makes the
// specification invalid; partial compilation is never attempted.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid specification: %d problem(s)", len(ds))
	for _, d := range ds {
		sb.WriteString("\n  - " + d.String())
	}
	return sb.String()
}

// Validate checks the specification and returns every diagnostic found.
// Checks are independent; none short-circuits the others.
func Validate(spec *fsm.Spec) Diagnostics {
	var diags Diagnostics

	if len(spec.States) == 0 {
		diags = append(diags, Diagnostic{Message: "no states are defined"})
	}

	states := symbolSet(spec.States, fsm.States, &diags)
	inputs := symbolSet(spec.Inputs, fsm.Inputs, &diags)
	outputs := symbolSet(spec.Outputs, fsm.Outputs, &diags)

	// Guards and handlers are distinct roles; one identifier must not
	// serve as both anywhere in the specification.
	guardRefs := make(map[string]bool)
	handlerNames := make(map[string]bool)
	for _, tr := range spec.Transitions {
		for _, ref := range fsm.GuardRefs(tr.Guard) {
			guardRefs[ref] = true
		}
		if tr.Handler != "" {
			handlerNames[tr.Handler] = true
		}
	}

	// References may be qualified; membership is decided by the base
	// segment while the diagnostic keeps the text as written.
	for i := range spec.Transitions {
		tr := &spec.Transitions[i]
		if !states[fsm.Base(tr.From)] {
			diags = append(diags, Diagnostic{Transition: tr, Message: fmt.Sprintf("unknown state: %s", tr.From)})
		}
		if !states[fsm.Base(tr.To)] {
			diags = append(diags, Diagnostic{Transition: tr, Message: fmt.Sprintf("unknown state: %s", tr.To)})
		}
		if tr.Input != "" && !inputs[fsm.Base(tr.Input)] {
			diags = append(diags, Diagnostic{Transition: tr, Message: fmt.Sprintf("unknown input: %s", tr.Input)})
		}
		if tr.Output != "" && !outputs[fsm.Base(tr.Output)] {
			diags = append(diags, Diagnostic{Transition: tr, Message: fmt.Sprintf("unknown output: %s", tr.Output)})
		}
		if tr.Handler != "" && guardRefs[tr.Handler] {
			diags = append(diags, Diagnostic{Transition: tr, Message: fmt.Sprintf("handler %s is also used as a guard", tr.Handler)})
		}
		for _, ref := range fsm.GuardRefs(tr.Guard) {
			if handlerNames[ref] {
				diags = append(diags, Diagnostic{Transition: tr, Message: fmt.Sprintf("guard %s is also used as a handler", ref)})
			}
		}
	}

	return diags
}

// symbolSet builds the membership set for one alphabet, keyed by base
// segment, reporting duplicates and reserved names.
func symbolSet(names []string, kind fsm.Kind, diags *Diagnostics) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		base := fsm.Base(name)
		if base == fsm.NothingName || base == fsm.FailureName {
			*diags = append(*diags, Diagnostic{Message: fmt.Sprintf("reserved symbol %s declared in %s", name, kind)})
			continue
		}
		if set[base] {
			*diags = append(*diags, Diagnostic{Message: fmt.Sprintf("duplicate symbol %s in %s", name, kind)})
			continue
		}
		set[base] = true
	}
	return set
}
