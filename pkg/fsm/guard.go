package fsm

// GuardExpr is a boolean expression over named guard predicates: a
// reference, a negation, a conjunction or a disjunction. No other shapes
// exist; the parser rejects anything else.
type GuardExpr interface {
	// Eval evaluates the expression with pred resolving each reference.
	Eval(pred func(ref string) bool) bool
	// String renders the expression in DSL form, e.g. "a && b || !c".
	String() string

	refs(put func(string))
}

// GuardRef is a reference to a named guard predicate.
type GuardRef string

func (g GuardRef) Eval(pred func(string) bool) bool { return pred(string(g)) }
func (g GuardRef) String() string                   { return string(g) }
func (g GuardRef) refs(put func(string))            { put(string(g)) }

// GuardNot negates a guard expression.
type GuardNot struct {
	Expr GuardExpr
}

func (g GuardNot) Eval(pred func(string) bool) bool { return !g.Expr.Eval(pred) }
func (g GuardNot) String() string                   { return "!" + g.Expr.String() }
func (g GuardNot) refs(put func(string))            { g.Expr.refs(put) }

// GuardAnd is the conjunction of two guard expressions.
type GuardAnd struct {
	Left, Right GuardExpr
}

func (g GuardAnd) Eval(pred func(string) bool) bool {
	return g.Left.Eval(pred) && g.Right.Eval(pred)
}
func (g GuardAnd) String() string { return g.Left.String() + " && " + g.Right.String() }
func (g GuardAnd) refs(put func(string)) {
	g.Left.refs(put)
	g.Right.refs(put)
}

// GuardOr is the disjunction of two guard expressions.
type GuardOr struct {
	Left, Right GuardExpr
}

func (g GuardOr) Eval(pred func(string) bool) bool {
	return g.Left.Eval(pred) || g.Right.Eval(pred)
}
func (g GuardOr) String() string { return g.Left.String() + " || " + g.Right.String() }
func (g GuardOr) refs(put func(string)) {
	g.Left.refs(put)
	g.Right.refs(put)
}

// GuardRefs returns the distinct predicate names referenced by e, in first
// appearance order. Returns nil for a nil expression.
func GuardRefs(e GuardExpr) []string {
	if e == nil {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	e.refs(func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	})
	return out
}
