package compiler

import (
	"fmt"
	"sort"

	"github.com/michalsustr/automata/pkg/fsm"
)

// Rule is one lowered transition with every symbol resolved to its dense
// identity. Input and Output are fsm.Sentinel when absent.
type Rule struct {
	Index   int
	From    fsm.ID
	Input   fsm.ID
	To      fsm.ID
	Output  fsm.ID
	Guard   fsm.GuardExpr
	Handler string

	// Source keeps the original rule for diagnostics and tracing.
	Source fsm.Transition
}

// Program is the compiled form of a specification: the three alphabets and
// a dense candidate table mapping every (state, input) identity pair to its
// rule candidates in declaration order. Built once, immutable afterwards;
// dispatch is a table lookup plus guard evaluation.
type Program struct {
	name    string
	states  *fsm.Alphabet
	inputs  *fsm.Alphabet
	outputs *fsm.Alphabet
	rules   []Rule
	table   [][][]int // [stateID][inputID] -> indices into rules
	initial fsm.ID
}

// Build validates the specification and lowers it into a Program. The
// returned error, when non-nil, is the full Diagnostics list.
func Build(spec *fsm.Spec) (*Program, error) {
	if diags := Validate(spec); len(diags) > 0 {
		return nil, diags
	}

	states, err := fsm.NewAlphabet(fsm.States, spec.States)
	if err != nil {
		return nil, err
	}
	inputs, err := fsm.NewAlphabet(fsm.Inputs, spec.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := fsm.NewAlphabet(fsm.Outputs, spec.Outputs)
	if err != nil {
		return nil, err
	}

	p := &Program{
		name:    spec.Name,
		states:  states,
		inputs:  inputs,
		outputs: outputs,
		initial: 1, // first declared state
	}

	p.table = make([][][]int, states.Len()+1)
	for s := range p.table {
		p.table[s] = make([][]int, inputs.Len()+1)
	}

	for i, tr := range spec.Transitions {
		rule := Rule{Index: i, Source: tr, Guard: tr.Guard, Handler: tr.Handler}
		rule.From = mustID(states, tr.From)
		rule.To = mustID(states, tr.To)
		if tr.Input != "" {
			rule.Input = mustID(inputs, tr.Input)
		}
		if tr.Output != "" {
			rule.Output = mustID(outputs, tr.Output)
		}
		p.rules = append(p.rules, rule)
		p.table[rule.From][rule.Input] = append(p.table[rule.From][rule.Input], i)
	}

	return p, nil
}

// mustID resolves a validated symbol name. Validation guarantees success.
func mustID(a *fsm.Alphabet, name string) fsm.ID {
	id, ok := a.ID(name)
	if !ok {
		panic(fmt.Sprintf("compiler: unvalidated symbol %q", name))
	}
	return id
}

// Name returns the machine name.
func (p *Program) Name() string { return p.name }

// States returns the state alphabet.
func (p *Program) States() *fsm.Alphabet { return p.states }

// Inputs returns the input alphabet.
func (p *Program) Inputs() *fsm.Alphabet { return p.inputs }

// Outputs returns the output alphabet.
func (p *Program) Outputs() *fsm.Alphabet { return p.outputs }

// Initial returns the identity of the canonical initial state.
func (p *Program) Initial() fsm.ID { return p.initial }

// Rules returns the lowered rules in declaration order.
func (p *Program) Rules() []Rule { return p.rules }

// Select walks the candidates for (state, input) in declaration order and
// returns the first whose guard passes; a rule without a guard always
// passes. Both dispatch and liveness go through Select, so the two can
// never disagree about which rule fires.
func (p *Program) Select(state, input fsm.ID, pass func(r *Rule) bool) (*Rule, bool) {
	if int(state) < 0 || int(state) >= len(p.table) {
		return nil, false
	}
	row := p.table[state]
	if int(input) < 0 || int(input) >= len(row) {
		return nil, false
	}
	for _, idx := range row[input] {
		r := &p.rules[idx]
		if r.Guard == nil || pass(r) {
			return r, true
		}
	}
	return nil, false
}

// GuardNames returns every guard predicate referenced by the program,
// sorted for deterministic binding errors.
func (p *Program) GuardNames() []string {
	set := make(map[string]bool)
	for _, r := range p.rules {
		for _, ref := range fsm.GuardRefs(r.Guard) {
			set[ref] = true
		}
	}
	return sortedKeys(set)
}

// HandlerNames returns every handler referenced by the program, sorted.
func (p *Program) HandlerNames() []string {
	set := make(map[string]bool)
	for _, r := range p.rules {
		if r.Handler != "" {
			set[r.Handler] = true
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
