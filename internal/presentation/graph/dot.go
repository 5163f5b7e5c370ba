package graph

import (
	"fmt"
	"strings"

	"github.com/michalsustr/automata/pkg/fsm"
)

// Dot produces a Graphviz digraph for the specification. States are
// circles, left to right, with a point marker feeding the initial state.
func Dot(spec *fsm.Spec) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", sanitizeID(spec.Name))
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=circle];\n")

	if initial := spec.Initial(); initial != "" {
		sb.WriteString("    __start [shape=point];\n")
		fmt.Fprintf(&sb, "    __start -> %s;\n", sanitizeID(initial))
	}

	for _, t := range spec.Transitions {
		from := sanitizeID(t.From)
		to := sanitizeID(t.To)
		label := strings.ReplaceAll(edgeLabel(t), "\"", "\\\"")
		if label == "" {
			fmt.Fprintf(&sb, "    %s -> %s;\n", from, to)
			continue
		}
		fmt.Fprintf(&sb, "    %s -> %s [label=\"%s\"];\n", from, to, label)
	}

	sb.WriteString("}\n")
	return sb.String()
}
