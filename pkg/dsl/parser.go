package dsl

import (
	"fmt"
	"strings"

	"github.com/michalsustr/automata/pkg/fsm"
)

// Parse parses DSL source into an abstract specification. The returned
// error, when non-nil, is an ErrorList holding every syntax error found.
// Parsing performs no semantic checks; see internal/compiler for those.
func Parse(name, src string) (*fsm.Spec, error) {
	var errs ErrorList
	toks := lex(src, &errs)
	p := &parser{toks: toks, errs: errs}

	spec := &fsm.Spec{Name: name}
	p.parseSections(spec)

	if err := p.errs.err(); err != nil {
		return nil, err
	}
	return spec, nil
}

// ParseGuard parses a standalone guard expression, as found in the YAML
// specification format.
func ParseGuard(src string) (fsm.GuardExpr, error) {
	var errs ErrorList
	toks := lex(src, &errs)
	p := &parser{toks: toks, errs: errs}

	expr, ok := p.parseGuardOr()
	if ok && !p.at(tokEOF) {
		p.errorf("unexpected %s after guard expression", p.cur().kind)
	}
	if err := p.errs.err(); err != nil {
		return nil, err
	}
	return expr, nil
}

type parser struct {
	toks []token
	pos  int
	errs ErrorList
}

func (p *parser) cur() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) at(kind tokenKind) bool {
	return p.cur().kind == kind
}

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) {
	t := p.cur()
	p.errs = append(p.errs, &ParseError{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) expect(kind tokenKind) (token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	p.errorf("expected %s, found %s", kind, p.cur().kind)
	return p.cur(), false
}

func (p *parser) parseSections(spec *fsm.Spec) {
	for !p.at(tokEOF) {
		section, ok := p.expect(tokIdent)
		if !ok {
			p.advance() // do not loop on the same bad token
			continue
		}
		if _, ok := p.expect(tokLParen); !ok {
			p.skipBalanced()
			continue
		}

		switch section.text {
		case "inputs":
			spec.Inputs = p.parseSymbolList()
		case "states":
			spec.States = p.parseSymbolList()
		case "outputs":
			spec.Outputs = p.parseSymbolList()
		case "derive":
			spec.Derives = p.parseSymbolList()
		case "transitions":
			spec.Transitions = p.parseTransitionList()
		case "generate_structs":
			spec.GenerateStructs = p.parseBool()
		default:
			p.errs = append(p.errs, &ParseError{
				Line: section.line,
				Col:  section.col,
				Msg:  fmt.Sprintf("unknown section %q", section.text),
			})
			p.skipBalanced()
		}

		// Optional trailing comma after a section.
		if p.at(tokComma) {
			p.advance()
		}
	}
}

// parseSymbolList parses "Sym, Sym, ..." and consumes the closing paren.
func (p *parser) parseSymbolList() []string {
	var names []string
	for {
		switch {
		case p.at(tokRParen):
			p.advance()
			return names
		case p.at(tokEOF):
			p.errorf("expected ')' to close symbol list")
			return names
		case p.at(tokIdent):
			names = append(names, p.qualifiedIdent())
			if p.at(tokComma) {
				p.advance()
			}
		default:
			p.errorf("expected symbol name, found %s", p.cur().kind)
			p.advance()
		}
	}
}

// parseBool parses "(true)" or "(false)" content, consuming the paren.
func (p *parser) parseBool() bool {
	value := false
	if t, ok := p.expect(tokIdent); ok {
		switch t.text {
		case "true":
			value = true
		case "false":
			value = false
		default:
			p.errs = append(p.errs, &ParseError{Line: t.line, Col: t.col, Msg: fmt.Sprintf("expected true or false, found %q", t.text)})
		}
	}
	p.expect(tokRParen)
	return value
}

// parseTransitionList parses the body of transitions(...), recovering at
// the next top-level comma after a malformed rule so every bad rule gets
// its own error.
func (p *parser) parseTransitionList() []fsm.Transition {
	var rules []fsm.Transition
	for {
		switch {
		case p.at(tokRParen):
			p.advance()
			return rules
		case p.at(tokEOF):
			p.errorf("expected ')' to close transitions")
			return rules
		case p.at(tokComma):
			p.advance()
		default:
			if tr, ok := p.parseTransition(); ok {
				rules = append(rules, tr)
			} else {
				p.recoverTransition()
			}
		}
	}
}

// parseTransition parses one rule:
//
//	(From[, Input]) -> (To[, Output]) [: guard] [= handler]
func (p *parser) parseTransition() (fsm.Transition, bool) {
	line := p.cur().line
	tr := fsm.Transition{Line: line}

	if _, ok := p.expect(tokLParen); !ok {
		return tr, false
	}
	from, ok := p.symbolRef()
	if !ok {
		return tr, false
	}
	tr.From = from
	if p.at(tokComma) {
		p.advance()
		if tr.Input, ok = p.symbolRef(); !ok {
			return tr, false
		}
	}
	if _, ok := p.expect(tokRParen); !ok {
		return tr, false
	}
	if _, ok := p.expect(tokArrow); !ok {
		return tr, false
	}
	if _, ok := p.expect(tokLParen); !ok {
		return tr, false
	}
	if tr.To, ok = p.symbolRef(); !ok {
		return tr, false
	}
	if p.at(tokComma) {
		p.advance()
		if tr.Output, ok = p.symbolRef(); !ok {
			return tr, false
		}
	}
	if _, ok := p.expect(tokRParen); !ok {
		return tr, false
	}

	// Optional ": guard" then optional "= handler"; guard comes first.
	if p.at(tokColon) {
		p.advance()
		guard, ok := p.parseGuardOr()
		if !ok {
			return tr, false
		}
		tr.Guard = guard
	}
	if p.at(tokAssign) {
		p.advance()
		handler, ok := p.expect(tokIdent)
		if !ok {
			return tr, false
		}
		tr.Handler = handler.text
	}
	return tr, true
}

// recoverTransition skips to the comma separating this rule from the next
// one, or to the closing paren of the transitions section.
func (p *parser) recoverTransition() {
	depth := 0
	for !p.at(tokEOF) {
		switch p.cur().kind {
		case tokLParen:
			depth++
		case tokRParen:
			if depth == 0 {
				return
			}
			depth--
		case tokComma:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// skipBalanced consumes tokens until the paren opened for the current
// section is closed.
func (p *parser) skipBalanced() {
	depth := 0
	for !p.at(tokEOF) {
		switch p.advance().kind {
		case tokLParen:
			depth++
		case tokRParen:
			if depth == 0 {
				return
			}
			depth--
		}
	}
}

// symbolRef parses a possibly qualified symbol reference.
func (p *parser) symbolRef() (string, bool) {
	t, ok := p.expect(tokIdent)
	if !ok {
		return "", false
	}
	return p.qualifiedTail(t.text), true
}

// qualifiedIdent parses a qualified identifier at the current position.
func (p *parser) qualifiedIdent() string {
	t := p.advance()
	return p.qualifiedTail(t.text)
}

func (p *parser) qualifiedTail(head string) string {
	parts := []string{head}
	for p.at(tokPathSep) {
		p.advance()
		t, ok := p.expect(tokIdent)
		if !ok {
			break
		}
		parts = append(parts, t.text)
	}
	return strings.Join(parts, "::")
}

// Guard grammar, loosest binding first: or := and ('||' and)*,
// and := unary ('&&' unary)*, unary := '!' unary | ref. Anything else is
// rejected: only references, negation and the two binary connectives are
// valid guard shapes.
func (p *parser) parseGuardOr() (fsm.GuardExpr, bool) {
	left, ok := p.parseGuardAnd()
	if !ok {
		return nil, false
	}
	for p.at(tokOr) {
		p.advance()
		right, ok := p.parseGuardAnd()
		if !ok {
			return nil, false
		}
		left = fsm.GuardOr{Left: left, Right: right}
	}
	return left, true
}

func (p *parser) parseGuardAnd() (fsm.GuardExpr, bool) {
	left, ok := p.parseGuardUnary()
	if !ok {
		return nil, false
	}
	for p.at(tokAnd) {
		p.advance()
		right, ok := p.parseGuardUnary()
		if !ok {
			return nil, false
		}
		left = fsm.GuardAnd{Left: left, Right: right}
	}
	return left, true
}

func (p *parser) parseGuardUnary() (fsm.GuardExpr, bool) {
	switch p.cur().kind {
	case tokNot:
		p.advance()
		expr, ok := p.parseGuardUnary()
		if !ok {
			return nil, false
		}
		return fsm.GuardNot{Expr: expr}, true
	case tokIdent:
		ref, ok := p.symbolRef()
		if !ok {
			return nil, false
		}
		return fsm.GuardRef(ref), true
	default:
		p.errorf("invalid guard expression: expected predicate reference, found %s", p.cur().kind)
		return nil, false
	}
}
