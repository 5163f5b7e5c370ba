// Package graph renders abstract machine specifications as diagrams.
// Renderers consume only the spec; they never touch a running machine.
package graph

import (
	"fmt"
	"strings"

	"github.com/michalsustr/automata/pkg/fsm"
)

// Mermaid produces a stateDiagram-v2 for the specification. The initial
// state gets the [*] entry marker; edge labels carry the input (In?), the
// output (Out!), the guard in brackets and the handler name.
func Mermaid(spec *fsm.Spec) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	if initial := spec.Initial(); initial != "" {
		sb.WriteString(fmt.Sprintf("    [*] --> %s\n", sanitizeID(initial)))
	}

	for _, t := range spec.Transitions {
		from := sanitizeID(t.From)
		to := sanitizeID(t.To)
		label := edgeLabel(t)
		if label == "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n", from, to, label))
	}

	return sb.String()
}

// edgeLabel builds the shared edge annotation used by both renderers.
func edgeLabel(t fsm.Transition) string {
	var parts []string
	if t.Input != "" {
		parts = append(parts, fsm.Base(t.Input)+"?")
	}
	if t.Output != "" {
		parts = append(parts, "/ "+fsm.Base(t.Output)+"!")
	}
	if t.Guard != nil {
		// Mermaid treats double quotes in labels specially.
		parts = append(parts, "["+strings.ReplaceAll(t.Guard.String(), "\"", "'")+"]")
	}
	if t.Handler != "" {
		parts = append(parts, "= "+t.Handler)
	}
	return strings.Join(parts, " ")
}

// sanitizeID makes a symbol name safe as a diagram node identifier.
func sanitizeID(id string) string {
	s := strings.ReplaceAll(id, "::", "_")
	s = strings.ReplaceAll(s, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
