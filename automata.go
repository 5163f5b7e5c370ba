package automata

import (
	"github.com/michalsustr/automata/internal/compiler"
	"github.com/michalsustr/automata/pkg/dsl"
	"github.com/michalsustr/automata/pkg/fsm"
)

// Version is the library version, surfaced by the CLI.
const Version = "0.3.0"

// Value is one symbol occurrence at runtime: the symbol name plus an
// optional payload carried alongside it. The reserved symbols are
// represented by name like any other ("Nothing", "Failure").
type Value struct {
	Name    string
	Payload any
}

// Nothing is the Value of the synthetic input/output symbol.
func Nothing() Value {
	return Value{Name: fsm.NothingName}
}

// Program is a compiled machine specification: validated, lowered to dense
// identities and ready to instantiate. Immutable; any number of machines
// may share one Program.
type Program struct {
	spec *fsm.Spec
	prog *compiler.Program
}

// Compile parses DSL source and compiles it. The returned error is either
// a dsl.ErrorList (syntax) or compiler.Diagnostics (semantics), each
// listing every problem found.
func Compile(name, src string) (*Program, error) {
	spec, err := dsl.Parse(name, src)
	if err != nil {
		return nil, err
	}
	return CompileSpec(spec)
}

// CompileSpec compiles an already-parsed specification.
func CompileSpec(spec *fsm.Spec) (*Program, error) {
	prog, err := compiler.Build(spec)
	if err != nil {
		return nil, err
	}
	return &Program{spec: spec, prog: prog}, nil
}

// Load reads a specification file (DSL or YAML, by extension) and compiles
// it.
func Load(path string) (*Program, error) {
	spec, err := dsl.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return CompileSpec(spec)
}

// Name returns the machine name.
func (p *Program) Name() string { return p.prog.Name() }

// Spec returns the abstract specification the program was compiled from.
func (p *Program) Spec() *fsm.Spec { return p.spec }

// GuardNames returns the guard predicates a machine must bind, sorted.
func (p *Program) GuardNames() []string { return p.prog.GuardNames() }

// HandlerNames returns the handlers a machine must bind, sorted.
func (p *Program) HandlerNames() []string { return p.prog.HandlerNames() }
