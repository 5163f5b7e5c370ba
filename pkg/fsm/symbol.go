package fsm

import (
	"fmt"
	"strings"
)

// ID is the dense identity of a symbol within its alphabet. Declared
// symbols are numbered from 1 in declaration order; 0 is reserved for the
// synthetic sentinel of each alphabet.
type ID int

// Sentinel is the reserved identity of the synthetic alphabet member:
// Nothing for inputs and outputs, Failure for states.
const Sentinel ID = 0

// Names of the synthetic symbols. Neither may be declared by a user.
const (
	NothingName = "Nothing"
	FailureName = "Failure"
)

// Kind distinguishes the three alphabets of a machine.
type Kind int

const (
	States Kind = iota
	Inputs
	Outputs
)

func (k Kind) String() string {
	switch k {
	case States:
		return "states"
	case Inputs:
		return "inputs"
	case Outputs:
		return "outputs"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// sentinelName returns the name of the reserved identity-0 member.
func (k Kind) sentinelName() string {
	if k == States {
		return FailureName
	}
	return NothingName
}

// Base returns the last segment of a possibly qualified symbol name,
// e.g. "states::Open" -> "Open". Both "::" and "." qualify.
func Base(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[i+2:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Alphabet is an order-preserving registry of the symbols declared for one
// alphabet kind. It assigns each symbol a dense ID starting at 1; ID 0 is
// the alphabet's sentinel. Identity is the last path segment, so a symbol
// declared as "states::Closed" and referenced as "Closed" (or vice versa)
// resolves to the same ID; the declared text is kept for display.
// Immutable once built.
type Alphabet struct {
	kind  Kind
	names []string
	index map[string]ID
}

// NewAlphabet builds an alphabet from the declared names, in order.
// Names sharing a base segment and the reserved sentinel names are
// rejected.
func NewAlphabet(kind Kind, names []string) (*Alphabet, error) {
	a := &Alphabet{
		kind:  kind,
		names: append([]string(nil), names...),
		index: make(map[string]ID, len(names)),
	}
	for i, name := range names {
		base := Base(name)
		if base == NothingName || base == FailureName {
			return nil, fmt.Errorf("fsm: symbol %q in %s is reserved", name, kind)
		}
		if _, dup := a.index[base]; dup {
			return nil, fmt.Errorf("fsm: duplicate symbol %q in %s", name, kind)
		}
		a.index[base] = ID(i + 1)
	}
	return a, nil
}

// Kind returns which alphabet this is.
func (a *Alphabet) Kind() Kind {
	return a.kind
}

// ID looks up the dense identity of a declared symbol. The name may be
// qualified; only its last segment counts.
func (a *Alphabet) ID(name string) (ID, bool) {
	id, ok := a.index[Base(name)]
	return id, ok
}

// Name returns the symbol name for an identity. ID 0 maps to the sentinel.
func (a *Alphabet) Name(id ID) string {
	if id == Sentinel {
		return a.kind.sentinelName()
	}
	if int(id) < 1 || int(id) > len(a.names) {
		return fmt.Sprintf("<%s:%d>", a.kind, id)
	}
	return a.names[id-1]
}

// Len returns the number of declared symbols, excluding the sentinel.
func (a *Alphabet) Len() int {
	return len(a.names)
}

// Names returns the declared symbol names in declaration order.
func (a *Alphabet) Names() []string {
	return append([]string(nil), a.names...)
}
