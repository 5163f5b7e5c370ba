package automata

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/michalsustr/automata/internal/compiler"
	"github.com/michalsustr/automata/internal/logging"
	"github.com/michalsustr/automata/pkg/fsm"
	"github.com/michalsustr/automata/pkg/takeable"
)

// GuardFunc decides whether a guarded rule may fire. It must not mutate
// data: guards run during liveness queries as well as dispatch.
type GuardFunc[D any] func(data *D, state Value) bool

// HandlerFunc runs when its rule fires and produces the payloads for the
// target state and the emitted output.
type HandlerFunc[D any] func(data *D, state, input Value) (next any, output any)

// CallbackFunc is the payload-free handler form: it only mutates data.
// On a self-transition the state payload is carried over.
type CallbackFunc[D any] func(data *D)

// Bindings collects the guard and handler implementations for one machine.
// Registration order does not matter; New verifies the set against the
// program and reports every problem at once.
type Bindings[D any] struct {
	guards    map[string]GuardFunc[D]
	handlers  map[string]HandlerFunc[D]
	callbacks map[string]CallbackFunc[D]
	errs      []error
}

// NewBindings returns an empty binding set.
func NewBindings[D any]() *Bindings[D] {
	return &Bindings[D]{
		guards:    make(map[string]GuardFunc[D]),
		handlers:  make(map[string]HandlerFunc[D]),
		callbacks: make(map[string]CallbackFunc[D]),
	}
}

func (b *Bindings[D]) bound(name string) bool {
	_, g := b.guards[name]
	_, h := b.handlers[name]
	_, c := b.callbacks[name]
	return g || h || c
}

// Guard binds a guard predicate.
func (b *Bindings[D]) Guard(name string, fn GuardFunc[D]) *Bindings[D] {
	if b.bound(name) {
		b.errs = append(b.errs, fmt.Errorf("automata: %q bound twice", name))
		return b
	}
	b.guards[name] = fn
	return b
}

// Handle binds a handler that produces state and output payloads.
func (b *Bindings[D]) Handle(name string, fn HandlerFunc[D]) *Bindings[D] {
	if b.bound(name) {
		b.errs = append(b.errs, fmt.Errorf("automata: %q bound twice", name))
		return b
	}
	b.handlers[name] = fn
	return b
}

// Call binds a payload-free handler.
func (b *Bindings[D]) Call(name string, fn CallbackFunc[D]) *Bindings[D] {
	if b.bound(name) {
		b.errs = append(b.errs, fmt.Errorf("automata: %q bound twice", name))
		return b
	}
	b.callbacks[name] = fn
	return b
}

// TransitionEvent describes one fired (or failed) transition, as handed to
// hooks and the trace logger.
type TransitionEvent struct {
	Machine string
	ID      string
	From    string
	Input   string
	To      string
	Output  string
}

// Hooks registers observers on a machine. Nil hooks are skipped.
type Hooks struct {
	OnTransition func(TransitionEvent)
	OnFailure    func(TransitionEvent)
}

type config struct {
	logger         *slog.Logger
	hooks          Hooks
	initialName    string
	initialPayload any
	hasInitial     bool
}

// Option configures a machine at construction.
type Option func(*config)

// WithLogger sets the structured logger for transition traces. Default is
// a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithInitial starts the machine in the named state instead of the first
// declared one, with the given state payload.
func WithInitial(state string, payload any) Option {
	return func(c *config) {
		c.initialName = state
		c.initialPayload = payload
		c.hasInitial = true
	}
}

// stateCell is what the takeable container holds: the dense state identity
// plus its payload.
type stateCell struct {
	id      fsm.ID
	payload any
}

// Machine is a running instance of a compiled program over instance data D.
// Not safe for concurrent use.
type Machine[D any] struct {
	name      string
	id        uuid.UUID
	prog      *compiler.Program
	data      *D
	state     *takeable.Takeable[stateCell]
	guards    map[string]GuardFunc[D]
	handlers  map[string]HandlerFunc[D]
	callbacks map[string]CallbackFunc[D]
	logger    *slog.Logger
	hooks     Hooks
	failed    bool
}

// New instantiates a machine. Every guard and handler the program
// references must be bound, in the right role, and no binding may go
// unused; all violations are reported together.
func New[D any](prog *Program, data *D, bindings *Bindings[D], opts ...Option) (*Machine[D], error) {
	if bindings == nil {
		bindings = NewBindings[D]()
	}

	cfg := config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	errs := append([]error(nil), bindings.errs...)

	wantGuards := make(map[string]bool)
	for _, name := range prog.GuardNames() {
		wantGuards[name] = true
		if _, ok := bindings.guards[name]; !ok {
			errs = append(errs, fmt.Errorf("automata: guard %q is not bound", name))
		}
	}
	wantHandlers := make(map[string]bool)
	for _, name := range prog.HandlerNames() {
		wantHandlers[name] = true
		_, h := bindings.handlers[name]
		_, c := bindings.callbacks[name]
		if !h && !c {
			errs = append(errs, fmt.Errorf("automata: handler %q is not bound", name))
		}
	}
	for name := range bindings.guards {
		if !wantGuards[name] {
			errs = append(errs, fmt.Errorf("automata: guard %q is bound but never referenced", name))
		}
	}
	for name := range bindings.handlers {
		if !wantHandlers[name] {
			errs = append(errs, fmt.Errorf("automata: handler %q is bound but never referenced", name))
		}
	}
	for name := range bindings.callbacks {
		if !wantHandlers[name] {
			errs = append(errs, fmt.Errorf("automata: handler %q is bound but never referenced", name))
		}
	}

	initial := stateCell{id: prog.prog.Initial()}
	if cfg.hasInitial {
		id, ok := prog.prog.States().ID(cfg.initialName)
		if !ok {
			errs = append(errs, fmt.Errorf("automata: unknown initial state %q", cfg.initialName))
		}
		initial = stateCell{id: id, payload: cfg.initialPayload}
	}

	if len(errs) > 0 {
		msg := fmt.Sprintf("cannot instantiate %s: %d problem(s)", prog.Name(), len(errs))
		for _, e := range errs {
			msg += "\n  - " + e.Error()
		}
		return nil, fmt.Errorf("%s", msg)
	}

	return &Machine[D]{
		name:      prog.Name(),
		id:        uuid.New(),
		prog:      prog.prog,
		data:      data,
		state:     takeable.New(initial),
		guards:    bindings.guards,
		handlers:  bindings.handlers,
		callbacks: bindings.callbacks,
		logger:    cfg.logger,
		hooks:     cfg.hooks,
	}, nil
}

// Name returns the machine name from its program.
func (m *Machine[D]) Name() string { return m.name }

// ID returns the unique instance identity.
func (m *Machine[D]) ID() uuid.UUID { return m.id }

// Data returns the instance data.
func (m *Machine[D]) Data() *D { return m.data }

// Failed reports whether the machine can no longer fire transitions.
func (m *Machine[D]) Failed() bool { return m.failed || !m.state.Usable() }

// State returns the current state and its payload. A failed or poisoned
// machine reports the Failure state.
func (m *Machine[D]) State() Value {
	if m.Failed() {
		return Value{Name: fsm.FailureName}
	}
	return m.stateValue(m.state.Get())
}

// Step fires a transition on the Nothing input and discards the output.
func (m *Machine[D]) Step() error {
	_, err := m.fire(Nothing(), "", false)
	return err
}

// Produce fires a transition on the Nothing input and returns the output,
// which must be the expected symbol.
func (m *Machine[D]) Produce(expected string) (Value, error) {
	return m.fire(Nothing(), expected, true)
}

// Consume fires a transition on the given input and discards the output.
func (m *Machine[D]) Consume(input Value) error {
	_, err := m.fire(input, "", false)
	return err
}

// Relay fires a transition on the given input and returns the output,
// which must be the expected symbol.
func (m *Machine[D]) Relay(input Value, expected string) (Value, error) {
	return m.fire(input, expected, true)
}

// CanStep reports whether Step would fire a transition. Pure: no handler
// runs, nothing mutates.
func (m *Machine[D]) CanStep() bool {
	return m.canFire(fsm.NothingName, "", false)
}

// CanConsume reports whether Consume of the named input would fire.
func (m *Machine[D]) CanConsume(input string) bool {
	return m.canFire(input, "", false)
}

// CanProduce reports whether Produce of the named output would succeed.
func (m *Machine[D]) CanProduce(output string) bool {
	return m.canFire(fsm.NothingName, output, true)
}

// CanRelay reports whether Relay with the named input and output would
// succeed.
func (m *Machine[D]) CanRelay(input, output string) bool {
	return m.canFire(input, output, true)
}

func (m *Machine[D]) stateValue(cell stateCell) Value {
	return Value{Name: m.prog.States().Name(cell.id), Payload: cell.payload}
}

// inputID resolves an input symbol name. The empty name and NothingName
// both resolve to the sentinel; qualified names count by their last
// segment.
func (m *Machine[D]) inputID(name string) (fsm.ID, bool) {
	if name == "" || fsm.Base(name) == fsm.NothingName {
		return fsm.Sentinel, true
	}
	return m.prog.Inputs().ID(name)
}

// guardPass evaluates a rule's guard against the pre-transition state.
func (m *Machine[D]) guardPass(state Value) func(*compiler.Rule) bool {
	return func(r *compiler.Rule) bool {
		return r.Guard.Eval(func(ref string) bool {
			return m.guards[ref](m.data, state)
		})
	}
}

func (m *Machine[D]) canFire(inputName, expected string, checkOutput bool) bool {
	if m.Failed() {
		return false
	}
	inputID, ok := m.inputID(inputName)
	if !ok {
		return false
	}
	cur := m.state.Get()
	rule, ok := m.prog.Select(cur.id, inputID, m.guardPass(m.stateValue(cur)))
	if !ok {
		return false
	}
	return !checkOutput || m.prog.Outputs().Name(rule.Output) == expected
}

// fire is the single mutating path shared by Step, Produce, Consume and
// Relay. It snapshots the current state, selects a rule, checks the
// expected output before any handler runs, then swaps the state through
// the takeable container so a panicking handler poisons the machine
// instead of leaving a half-applied transition.
func (m *Machine[D]) fire(input Value, expected string, checkOutput bool) (Value, error) {
	if m.Failed() {
		return Value{}, ErrMachineFailed
	}

	cur := m.state.Get()
	from := m.stateValue(cur)

	inputID, known := m.inputID(input.Name)
	var rule *compiler.Rule
	if known {
		rule, known = m.prog.Select(cur.id, inputID, m.guardPass(from))
	}
	if !known {
		m.fail(from.Name, input.Name)
		return Value{}, &InvalidTransitionError{From: from.Name, Input: input.Name}
	}

	outName := m.prog.Outputs().Name(rule.Output)
	if checkOutput && outName != expected {
		m.fail(from.Name, input.Name)
		return Value{}, &UnexpectedOutputError{Want: expected, Got: outName}
	}

	output := takeable.Result(m.state, func(cell stateCell) (stateCell, Value) {
		next := stateCell{id: rule.To}
		out := Value{Name: outName}
		if h, ok := m.handlers[rule.Handler]; ok {
			next.payload, out.Payload = h(m.data, m.stateValue(cell), input)
		} else {
			if c, ok := m.callbacks[rule.Handler]; ok {
				c(m.data)
			}
			if rule.To == rule.From {
				next.payload = cell.payload
			}
		}
		return next, out
	})

	ev := TransitionEvent{
		Machine: m.name,
		ID:      m.id.String(),
		From:    from.Name,
		Input:   input.Name,
		To:      m.prog.States().Name(rule.To),
		Output:  output.Name,
	}
	m.logger.Debug("transition",
		"machine", ev.Machine, "id", ev.ID,
		"from", ev.From, "input", ev.Input,
		"to", ev.To, "output", ev.Output)
	if m.hooks.OnTransition != nil {
		m.hooks.OnTransition(ev)
	}
	return output, nil
}

// fail parks the machine in the Failure state. Instance data is untouched.
func (m *Machine[D]) fail(from, input string) {
	m.failed = true
	m.state.Set(stateCell{id: fsm.Sentinel})
	ev := TransitionEvent{
		Machine: m.name,
		ID:      m.id.String(),
		From:    from,
		Input:   input,
		To:      fsm.FailureName,
		Output:  fsm.NothingName,
	}
	m.logger.Warn("machine failed",
		"machine", ev.Machine, "id", ev.ID,
		"from", ev.From, "input", ev.Input)
	if m.hooks.OnFailure != nil {
		m.hooks.OnFailure(ev)
	}
}
