package fsm

import "strings"

// Spec is the abstract specification of one machine: the ordered symbol
// declarations, the ordered transition rules and the annotation flags.
// It is what the parser produces, what the validator checks and what the
// table builder lowers. Renderers consume it as-is.
type Spec struct {
	Name            string
	Inputs          []string
	States          []string
	Outputs         []string
	Transitions     []Transition
	Derives         []string
	GenerateStructs bool
}

// Initial returns the canonical initial state: the first declared state.
// Empty when no states are declared (which the validator rejects).
func (s *Spec) Initial() string {
	if len(s.States) == 0 {
		return ""
	}
	return s.States[0]
}

// String renders the spec back to DSL text. The output re-parses to an
// equivalent spec.
func (s *Spec) String() string {
	var sb strings.Builder
	sb.WriteString("inputs(" + strings.Join(s.Inputs, ", ") + "),\n")
	sb.WriteString("states(" + strings.Join(s.States, ", ") + "),\n")
	sb.WriteString("outputs(" + strings.Join(s.Outputs, ", ") + "),\n")
	sb.WriteString("transitions(\n")
	for _, t := range s.Transitions {
		sb.WriteString("  " + t.dsl() + ",\n")
	}
	sb.WriteString(")")
	if len(s.Derives) > 0 {
		sb.WriteString(",\nderive(" + strings.Join(s.Derives, ", ") + ")")
	}
	if s.GenerateStructs {
		sb.WriteString(",\ngenerate_structs(true)")
	}
	sb.WriteString("\n")
	return sb.String()
}

// Doc is the serializable view of a Spec, used by the inspect command and
// the introspection server. Guard expressions flatten to their DSL text.
type Doc struct {
	Name        string          `json:"name" yaml:"name" mapstructure:"name"`
	Inputs      []string        `json:"inputs,omitempty" yaml:"inputs,omitempty" mapstructure:"inputs"`
	States      []string        `json:"states" yaml:"states" mapstructure:"states"`
	Outputs     []string        `json:"outputs,omitempty" yaml:"outputs,omitempty" mapstructure:"outputs"`
	Transitions []TransitionDoc `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// TransitionDoc is the serializable view of one transition rule.
type TransitionDoc struct {
	From    string `json:"from" yaml:"from" mapstructure:"from"`
	Input   string `json:"input,omitempty" yaml:"input,omitempty" mapstructure:"input"`
	To      string `json:"to" yaml:"to" mapstructure:"to"`
	Output  string `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`
	Guard   string `json:"guard,omitempty" yaml:"guard,omitempty" mapstructure:"guard"`
	Handler string `json:"handler,omitempty" yaml:"handler,omitempty" mapstructure:"handler"`
}

// Document returns the serializable view of the spec.
func (s *Spec) Document() Doc {
	doc := Doc{
		Name:    s.Name,
		Inputs:  append([]string(nil), s.Inputs...),
		States:  append([]string(nil), s.States...),
		Outputs: append([]string(nil), s.Outputs...),
	}
	for _, t := range s.Transitions {
		td := TransitionDoc{
			From:    t.From,
			Input:   t.Input,
			To:      t.To,
			Output:  t.Output,
			Handler: t.Handler,
		}
		if t.Guard != nil {
			td.Guard = t.Guard.String()
		}
		doc.Transitions = append(doc.Transitions, td)
	}
	return doc
}
