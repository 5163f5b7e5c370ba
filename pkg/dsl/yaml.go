package dsl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/michalsustr/automata/pkg/fsm"
)

// LoadYAML parses the YAML form of a specification:
//
//	name: Lock
//	inputs: [Key, Drill]
//	states: [Open, Closed, Broken]
//	outputs: [Click]
//	transitions:
//	  - {from: Open, input: Key, to: Closed, output: Click}
//	  - {from: Open, input: Drill, to: Broken, guard: "!jammed", handler: smash}
//
// A name in the document wins over the name argument.
func LoadYAML(name string, data []byte) (*fsm.Spec, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("dsl: invalid yaml: %w", err)
	}

	var doc fsm.Doc
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("dsl: invalid specification document: %w", err)
	}

	spec := &fsm.Spec{
		Name:    name,
		Inputs:  doc.Inputs,
		States:  doc.States,
		Outputs: doc.Outputs,
	}
	if doc.Name != "" {
		spec.Name = doc.Name
	}
	for i, td := range doc.Transitions {
		tr := fsm.Transition{
			From:    td.From,
			Input:   td.Input,
			To:      td.To,
			Output:  td.Output,
			Handler: td.Handler,
			Line:    i + 1,
		}
		if td.Guard != "" {
			guard, err := ParseGuard(td.Guard)
			if err != nil {
				return nil, fmt.Errorf("dsl: transition %d: guard %q: %w", i+1, td.Guard, err)
			}
			tr.Guard = guard
		}
		spec.Transitions = append(spec.Transitions, tr)
	}
	return spec, nil
}

// LoadFile reads a specification file, choosing the format from the
// extension: .yaml/.yml parse as YAML, everything else as DSL text. The
// machine name defaults to the file's base name.
func LoadFile(path string) (*fsm.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(name, data)
	default:
		return Parse(name, string(data))
	}
}
