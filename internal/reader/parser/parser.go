// Released under an MIT license. See LICENSE.

// Package parser provides a parser for the rill language.
//
// The parser consumes tokens and builds syntax tree nodes. Like the lexer,
// it reports two different kinds of failure: a syntax error, which no
// further input can repair, and an incomplete parse, where the input ended
// inside an open construct and more input may still produce a complete
// parse. Both are signalled by panicking; Parse recovers and returns them
// as errors.
package parser

import (
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/michaelmacinnis/adapted"
	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/struct/loc"
	"github.com/rill-lang/rill/internal/common/struct/token"
	"github.com/rill-lang/rill/internal/common/type/boolean"
	"github.com/rill-lang/rill/internal/common/type/chr"
	"github.com/rill-lang/rill/internal/common/type/nothing"
	"github.com/rill-lang/rill/internal/common/type/num"
	"github.com/rill-lang/rill/internal/common/type/str"
	"github.com/rill-lang/rill/internal/common/type/sym"
	"github.com/rill-lang/rill/internal/reader/ast"
	"github.com/rill-lang/rill/internal/reader/unit"
)

// T (parser) holds the state of the parser.
type T struct {
	item func() *token.T // Token source.
	warn func(string)    // Deprecation warning sink. May be nil.

	ahead *token.T // Lookahead token.
	last  loc.T    // Location of the most recently consumed token.
}

type parser = T

// Error is a syntax error. No amount of additional input can fix it.
type Error struct {
	Msg    string
	Source loc.T
}

// Error returns the syntax error's diagnostic message.
func (e *Error) Error() string {
	return "syntax: " + e.Msg
}

// New creates a new T pulling tokens from item. Deprecation warnings are
// passed to warn; a nil warn suppresses them, which is what speculative
// re-parses of partial input want.
func New(item func() *token.T, warn func(string)) *T {
	return &parser{item: item, warn: warn}
}

// Parse consumes all tokens and returns the resulting program. The error
// is a *unit.IncompleteError if the input ended mid-form and a *Error if
// the input cannot parse.
func (p *parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		switch r := r.(type) {
		case *unit.IncompleteError:
			err = r
		case *Error:
			err = r
		default:
			panic(r)
		}
	}()

	source := loc.T{Char: 1, Line: 1}
	if t := p.peek(); t != nil {
		source = *t.Source()
	}

	stmts := []ast.I{}

	p.terminators()

	for !p.done() {
		stmts = append(stmts, p.expression())

		if !p.done() {
			p.expect(token.Newline)
			p.terminators()
		}
	}

	return ast.NewProgram(stmts, &source), nil
}

func (p *parser) consume() *token.T {
	t := p.peek()
	if t != nil {
		p.last = *t.Source()
	}

	p.ahead = nil

	return t
}

func (p *parser) done() bool {
	return p.peek() == nil
}

func (p *parser) expect(c token.Class) *token.T {
	t := p.peek()
	if !t.Is(c) {
		p.unexpected(t)
	}

	return p.consume()
}

// fail reports a syntax error at the location of the token t.
func (p *parser) fail(msg string, t *token.T) {
	source := p.last
	if t != nil {
		source = *t.Source()
	}

	panic(&Error{Msg: msg + " at " + source.String(), Source: source})
}

// peek returns the lookahead token. Error tokens never survive peeking:
// an incomplete diagnostic asks for more input and anything else is a
// syntax error.
func (p *parser) peek() *token.T {
	if p.ahead == nil {
		p.ahead = p.item()
	}

	t := p.ahead
	if t.Is(token.Error) {
		msg := t.Value()
		if rest, ok := strings.CutPrefix(msg, "incomplete: "); ok {
			panic(&unit.IncompleteError{Msg: rest})
		}

		panic(&Error{Msg: msg + " at " + t.Source().String(), Source: *t.Source()})
	}

	return t
}

// premature reports that the input ended where a form required more.
func (p *parser) premature() {
	panic(&unit.IncompleteError{Msg: "premature end of input"})
}

// require returns the lookahead token, treating end of input as an
// incomplete parse rather than a syntax error.
func (p *parser) require() *token.T {
	t := p.peek()
	if t == nil {
		p.premature()
	}

	return t
}

func (p *parser) terminators() {
	for p.peek().Is(token.Newline) {
		p.consume()
	}
}

func (p *parser) unexpected(t *token.T) {
	if t == nil {
		p.premature()
	}

	p.fail(`unexpected "`+t.Value()+`"`, t)
}

// Statements and expressions.

func (p *parser) expression() ast.I {
	x := p.orf()

	t := p.peek()
	if !t.Is('=') {
		return x
	}

	name, ok := x.(*ast.Ident)
	if !ok {
		p.fail("invalid assignment target", t)
	}

	p.consume()
	p.group()

	return ast.NewAssign(name.Name, p.expression(), name.Source())
}

// group skips newlines. Newlines are insignificant inside parentheses,
// brackets, argument lists, and after an infix operator.
func (p *parser) group() {
	for p.peek().Is(token.Newline) {
		p.consume()
	}
}

func (p *parser) orf() ast.I {
	x := p.andf()

	for p.peek().Is(token.Orf) {
		t := p.consume()
		p.group()

		x = ast.NewLogical("||", x, p.andf(), t.Source())
	}

	return x
}

func (p *parser) andf() ast.I {
	x := p.comparison()

	for p.peek().Is(token.Andf) {
		t := p.consume()
		p.group()

		x = ast.NewLogical("&&", x, p.comparison(), t.Source())
	}

	return x
}

//nolint:gochecknoglobals
var comparisons = map[string]bool{
	"!=": true, "<": true, "<=": true, "==": true, ">": true, ">=": true,
}

func (p *parser) comparison() ast.I {
	x := p.additive()

	for t := p.peek(); t.Is(token.Operator) && comparisons[t.Value()]; t = p.peek() {
		p.consume()
		p.group()

		x = ast.NewBinary(t.Value(), x, p.additive(), t.Source())
	}

	return x
}

func (p *parser) additive() ast.I {
	x := p.multiplicative()

	for t := p.peek(); t.Is(token.Operator) && (t.Value() == "+" || t.Value() == "-"); t = p.peek() {
		p.consume()
		p.group()

		x = ast.NewBinary(t.Value(), x, p.multiplicative(), t.Source())
	}

	return x
}

func (p *parser) multiplicative() ast.I {
	x := p.power()

	for t := p.peek(); t.Is(token.Operator) &&
		(t.Value() == "*" || t.Value() == "/" || t.Value() == "%"); t = p.peek() {
		p.consume()
		p.group()

		x = ast.NewBinary(t.Value(), x, p.power(), t.Source())
	}

	return x
}

func (p *parser) power() ast.I {
	x := p.unary()

	t := p.peek()
	if !t.Is(token.Power) {
		return x
	}

	if t.Value() == "**" && p.warn != nil {
		p.warn(`the "**" spelling of "^" is deprecated at ` + t.Source().String())
	}

	p.consume()
	p.group()

	// Exponentiation is right associative.
	return ast.NewBinary("^", x, p.power(), t.Source())
}

func (p *parser) unary() ast.I {
	t := p.require()
	if t.Is(token.Operator) && (t.Value() == "-" || t.Value() == "!") {
		p.consume()

		return ast.NewUnary(t.Value(), p.unary(), t.Source())
	}

	return p.primary()
}

func (p *parser) primary() ast.I {
	t := p.require()

	switch {
	case t.Is(token.Number):
		p.consume()

		return ast.NewLiteral(p.number(t), t.Source())
	case t.Is(token.DoubleQuoted):
		p.consume()

		return ast.NewLiteral(p.unquote(t), t.Source())
	case t.Is(token.Character):
		p.consume()

		return ast.NewLiteral(p.character(t), t.Source())
	case t.Is(token.Quoted):
		p.consume()

		return ast.NewLiteral(sym.New(t.Value()[1:]), t.Source())
	case t.Is(token.Command):
		p.consume()

		v := t.Value()

		return ast.NewCommand(v[1:len(v)-1], t.Source())
	case t.Is(token.Keyword):
		return p.keyword(t)
	case t.Is(token.Symbol):
		p.consume()

		if p.peek().Is('(') {
			return p.call(t)
		}

		return ast.NewIdent(t.Value(), t.Source())
	case t.Is('('):
		p.consume()
		p.group()

		x := p.expression()

		p.group()
		p.expectClose(')')

		return x
	case t.Is('['):
		return p.array(t)
	}

	p.unexpected(t)

	return nil
}

func (p *parser) array(open *token.T) ast.I {
	p.consume()
	p.group()

	elements := []ast.I{}

	for !p.require().Is(']') {
		elements = append(elements, p.expression())

		p.group()

		if p.require().Is(',') {
			p.consume()
			p.group()
		} else if !p.peek().Is(']') {
			p.unexpected(p.peek())
		}
	}

	p.consume()

	return ast.NewArray(elements, open.Source())
}

func (p *parser) call(name *token.T) ast.I {
	p.consume() // The '('.
	p.group()

	args := []ast.I{}

	for !p.require().Is(')') {
		args = append(args, p.expression())

		p.group()

		if p.require().Is(',') {
			p.consume()
			p.group()
		} else if !p.peek().Is(')') {
			p.unexpected(p.peek())
		}
	}

	p.consume()

	return ast.NewCall(name.Value(), args, name.Source())
}

// expectClose expects the closing delimiter c. End of input is an
// incomplete parse; anything else is a syntax error.
func (p *parser) expectClose(c token.Class) {
	t := p.require()
	if !t.Is(c) {
		p.unexpected(t)
	}

	p.consume()
}

func (p *parser) keyword(t *token.T) ast.I {
	switch t.Value() {
	case "true":
		p.consume()

		return ast.NewLiteral(boolean.True, t.Source())
	case "false":
		p.consume()

		return ast.NewLiteral(boolean.False, t.Source())
	case "nothing":
		p.consume()

		return ast.NewLiteral(nothing.Value, t.Source())
	case "begin":
		p.consume()

		body := p.body(t, "end")
		p.consume()

		return ast.NewBegin(body, t.Source())
	case "function":
		return p.function(t)
	case "if":
		return p.conditional(t)
	case "while":
		p.consume()

		cond := p.expression()
		body := p.body(t, "end")
		p.consume()

		return ast.NewWhile(cond, body, t.Source())
	case "return":
		p.consume()

		next := p.peek()
		if next == nil || next.Is(token.Newline) || next.Is(token.Keyword, ')', ']', ',') {
			return ast.NewReturn(nil, t.Source())
		}

		return ast.NewReturn(p.expression(), t.Source())
	case "try":
		return p.try(t)
	}

	p.unexpected(t)

	return nil
}

// body parses statements until one of the keywords in until is the
// lookahead. The opening token is only used to report which construct is
// missing its "end" when the input runs out first.
func (p *parser) body(open *token.T, until ...string) []ast.I {
	stmts := []ast.I{}

	for {
		p.terminators()

		t := p.peek()
		if t == nil {
			panic(&unit.IncompleteError{
				Msg: `"` + open.Value() + `" at ` + open.Source().String() + " requires end",
			})
		}

		if t.Is(token.Keyword) {
			for _, k := range until {
				if t.Value() == k {
					return stmts
				}
			}
		}

		stmts = append(stmts, p.expression())

		if t := p.peek(); t != nil && !t.Is(token.Newline) && !t.Is(token.Keyword) {
			p.unexpected(t)
		}
	}
}

func (p *parser) conditional(open *token.T) ast.I {
	p.consume() // "if" or "elseif".

	cond := p.expression()
	then := p.body(open, "elseif", "else", "end")

	var els []ast.I

	switch t := p.peek(); t.Value() {
	case "elseif":
		els = []ast.I{p.conditional(t)}

		return ast.NewIf(cond, then, els, open.Source())
	case "else":
		p.consume()

		els = p.body(open, "end")
	}

	p.consume() // "end".

	return ast.NewIf(cond, then, els, open.Source())
}

func (p *parser) function(open *token.T) ast.I {
	p.consume() // "function".

	if p.peek() == nil {
		panic(&unit.IncompleteError{
			Msg: `"` + open.Value() + `" at ` + open.Source().String() + " requires end",
		})
	}

	name := p.expect(token.Symbol)

	p.expectOpen('(', open)
	p.group()

	params := []string{}

	for !p.require().Is(')') {
		params = append(params, p.expect(token.Symbol).Value())

		p.group()

		if p.require().Is(',') {
			p.consume()
			p.group()
		} else if !p.peek().Is(')') {
			p.unexpected(p.peek())
		}
	}

	p.consume()

	body := p.body(open, "end")
	p.consume()

	return ast.NewFunction(name.Value(), params, body, open.Source())
}

// expectOpen expects the opening delimiter c as part of the construct
// introduced by open. End of input means the construct is unfinished.
func (p *parser) expectOpen(c token.Class, open *token.T) {
	t := p.peek()
	if t == nil {
		panic(&unit.IncompleteError{
			Msg: `"` + open.Value() + `" at ` + open.Source().String() + " requires end",
		})
	}

	if !t.Is(c) {
		p.unexpected(t)
	}

	p.consume()
}

func (p *parser) try(open *token.T) ast.I {
	p.consume() // "try".

	body := p.body(open, "catch", "end")

	name := ""

	var catch []ast.I

	if p.peek().Value() == "catch" {
		p.consume()

		if t := p.peek(); t.Is(token.Symbol) {
			name = t.Value()
			p.consume()
		}

		catch = p.body(open, "end")
	}

	p.consume() // "end".

	return ast.NewTry(body, name, catch, open.Source())
}

// Literal conversions.

func (p *parser) character(t *token.T) cell.I {
	v := t.Value()

	s, err := adapted.ActualBytes(v[1 : len(v)-1])
	if err != nil {
		p.fail("invalid character literal", t)
	}

	r, w := utf8.DecodeRuneInString(s)
	if w != len(s) {
		p.fail("invalid character literal", t)
	}

	return chr.New(r)
}

func (p *parser) unquote(t *token.T) cell.I {
	v := t.Value()

	s, err := adapted.ActualBytes(v[1 : len(v)-1])
	if err != nil {
		p.fail("invalid escape in string", t)
	}

	return str.New(s)
}

func (p *parser) number(t *token.T) cell.I {
	v := &big.Rat{}

	if _, ok := v.SetString(t.Value()); !ok {
		p.fail("invalid numeric literal", t)
	}

	return num.Rat(v)
}
