package dsl

import (
	"fmt"
	"strings"
	"text/scanner"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLParen
	tokRParen
	tokComma
	tokArrow   // ->
	tokColon   // :
	tokPathSep // :: or .
	tokAssign  // =
	tokNot     // !
	tokAnd     // &&
	tokOr      // ||
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokArrow:
		return "'->'"
	case tokColon:
		return "':'"
	case tokPathSep:
		return "'::'"
	case tokAssign:
		return "'='"
	case tokNot:
		return "'!'"
	case tokAnd:
		return "'&&'"
	case tokOr:
		return "'||'"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

// lex tokenizes the whole source up front. Lexical errors are appended to
// errs; an unrecognizable rune is skipped so later errors still surface.
func lex(src string, errs *ErrorList) []token {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Mode = scanner.ScanIdents | scanner.ScanComments | scanner.SkipComments
	s.Error = func(sc *scanner.Scanner, msg string) {
		*errs = append(*errs, &ParseError{Line: sc.Pos().Line, Col: sc.Pos().Column, Msg: msg})
	}

	var toks []token
	emit := func(kind tokenKind, text string, pos scanner.Position) {
		toks = append(toks, token{kind: kind, text: text, line: pos.Line, col: pos.Column})
	}

	for {
		r := s.Scan()
		pos := s.Position
		switch r {
		case scanner.EOF:
			emit(tokEOF, "", pos)
			return toks
		case scanner.Ident:
			emit(tokIdent, s.TokenText(), pos)
		case '(':
			emit(tokLParen, "(", pos)
		case ')':
			emit(tokRParen, ")", pos)
		case ',':
			emit(tokComma, ",", pos)
		case '=':
			emit(tokAssign, "=", pos)
		case '!':
			emit(tokNot, "!", pos)
		case '.':
			emit(tokPathSep, ".", pos)
		case ':':
			if s.Peek() == ':' {
				s.Scan()
				emit(tokPathSep, "::", pos)
			} else {
				emit(tokColon, ":", pos)
			}
		case '-':
			if s.Peek() == '>' {
				s.Scan()
				emit(tokArrow, "->", pos)
			} else {
				*errs = append(*errs, &ParseError{Line: pos.Line, Col: pos.Column, Msg: "unexpected '-', did you mean '->'?"})
			}
		case '&':
			if s.Peek() == '&' {
				s.Scan()
				emit(tokAnd, "&&", pos)
			} else {
				*errs = append(*errs, &ParseError{Line: pos.Line, Col: pos.Column, Msg: "unexpected '&', did you mean '&&'?"})
			}
		case '|':
			if s.Peek() == '|' {
				s.Scan()
				emit(tokOr, "||", pos)
			} else {
				*errs = append(*errs, &ParseError{Line: pos.Line, Col: pos.Column, Msg: "unexpected '|', did you mean '||'?"})
			}
		default:
			*errs = append(*errs, &ParseError{Line: pos.Line, Col: pos.Column, Msg: fmt.Sprintf("unexpected character %q", string(r))})
		}
	}
}
