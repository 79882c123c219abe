// Released under an MIT license. See LICENSE.

// Package engine provides rill's tree-walking evaluator. An evaluation
// either produces a value or fails with an exception stack recording
// every raise in the failure's causal chain, oldest cause first.
package engine

import (
	"fmt"
	"io"
	"math/big"

	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/interface/rational"
	"github.com/rill-lang/rill/internal/common/interface/truth"
	"github.com/rill-lang/rill/internal/common/struct/frame"
	"github.com/rill-lang/rill/internal/common/struct/loc"
	"github.com/rill-lang/rill/internal/common/type/boolean"
	"github.com/rill-lang/rill/internal/common/type/list"
	"github.com/rill-lang/rill/internal/common/type/nothing"
	"github.com/rill-lang/rill/internal/common/type/num"
	"github.com/rill-lang/rill/internal/common/type/str"
	"github.com/rill-lang/rill/internal/engine/estack"
	"github.com/rill-lang/rill/internal/engine/scope"
	"github.com/rill-lang/rill/internal/reader/ast"
)

// The call stack is bounded so that runaway recursion raises a rill-level
// error instead of exhausting the Go stack.
const maxDepth = 10000

// T (engine) evaluates syntax trees in a persistent outermost scope.
type T struct {
	global *scope.T
	stack  []*frame.T
	out    io.Writer
}

type engine = T

// New creates an engine whose print builtins write to out.
func New(out io.Writer) *T {
	e := &engine{global: scope.New(nil), out: out}

	for _, b := range table {
		e.global.Define(b.name, b)
	}

	return e
}

// Define binds name to v in the engine's outermost scope.
func (e *engine) Define(name string, v cell.I) {
	e.global.Define(name, v)
}

// Evaluate evaluates tree and returns its value, or the exception stack
// for the failure that ended the attempt. Exactly one of the two results
// is non-nil.
//
// The evaluator's own frame is the bottom of the call stack for the
// attempt, so every backtrace captured during the attempt ends with it.
func (e *engine) Evaluate(tree ast.I) (v cell.I, failure *estack.T) {
	e.stack = append(e.stack[:0], frame.New(frame.Eval, *tree.Source()))

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		v = nil
		failure = e.collect(r)
	}()

	return e.eval(tree, e.global), nil
}

// Error is a rill runtime error. Source is where the error was raised.
type Error struct {
	Msg    string
	Source loc.T
}

func (e *Error) Error() string {
	return e.Msg
}

// Where returns the location the error was raised.
func (e *Error) Where() *loc.T {
	return &e.Source
}

// raise is the panic value for a rill-level exception. When an exception
// is raised while an earlier one is being handled, the earlier raise is
// kept as prev.
type raise struct {
	err   error
	trace []*frame.T
	prev  *raise
}

// chain records cause as the raise this raise interrupted.
func (r *raise) chain(cause *raise) {
	c := r
	for c.prev != nil {
		c = c.prev
	}

	c.prev = cause
}

// estack converts the raise and its causes to an exception stack,
// oldest cause first.
func (r *raise) estack() *estack.T {
	chain := []*raise{}
	for c := r; c != nil; c = c.prev {
		chain = append(chain, c)
	}

	oldest := chain[len(chain)-1]
	s := estack.New(oldest.err, oldest.trace)

	for i := len(chain) - 2; i >= 0; i-- {
		s.Chain(chain[i].err, chain[i].trace)
	}

	return s
}

// returned is the panic value used to unwind to the enclosing call.
type returned struct {
	v cell.I
}

// backtrace snapshots the current call stack, innermost call first.
func (e *engine) backtrace() []*frame.T {
	t := make([]*frame.T, len(e.stack))

	for i, f := range e.stack {
		t[len(t)-1-i] = f
	}

	return t
}

// collect converts a recovered panic value to an exception stack. Panics
// that are not raises (including Go runtime errors in the evaluator's own
// helpers) become single-entry stacks.
func (e *engine) collect(r interface{}) *estack.T {
	var f *raise

	switch t := r.(type) {
	case *raise:
		f = t
	case *returned:
		f = &raise{
			err:   &Error{Msg: "return used outside of a function"},
			trace: e.backtrace(),
		}
	default:
		f = &raise{
			err:   &Error{Msg: fmt.Sprintf("%v", t)},
			trace: e.backtrace(),
		}
	}

	return f.estack()
}

// throw raises a rill-level exception from the location source.
func (e *engine) throw(source *loc.T, format string, args ...interface{}) {
	err := &Error{Msg: fmt.Sprintf(format, args...)}
	if source != nil {
		err.Source = *source
	}

	panic(&raise{err: err, trace: e.backtrace()})
}

func (e *engine) eval(n ast.I, sc *scope.T) cell.I {
	switch t := n.(type) {
	case *ast.Program:
		return e.block(t.Stmts, sc)

	case *ast.Literal:
		return t.Value

	case *ast.Ident:
		v, ok := sc.Get(t.Name)
		if !ok {
			e.throw(t.Source(), "undefined variable %q", t.Name)
		}

		return v

	case *ast.Assign:
		v := e.eval(t.X, sc)
		sc.Set(t.Name, v)

		return v

	case *ast.Unary:
		return e.unary(t, sc)

	case *ast.Binary:
		return e.binary(t, sc)

	case *ast.Logical:
		return e.logical(t, sc)

	case *ast.Call:
		return e.call(t, sc)

	case *ast.Function:
		f := &closure{name: t.Name, params: t.Params, body: t.Body, env: sc}
		sc.Define(t.Name, f)

		return f

	case *ast.If:
		if e.truthy(t.Cond, sc) {
			return e.block(t.Then, sc)
		}

		return e.block(t.Else, sc)

	case *ast.While:
		for e.truthy(t.Cond, sc) {
			e.block(t.Body, sc)
		}

		return nothing.Value

	case *ast.Begin:
		return e.block(t.Body, scope.New(sc))

	case *ast.Return:
		v := cell.I(nothing.Value)
		if t.X != nil {
			v = e.eval(t.X, sc)
		}

		panic(&returned{v: v})

	case *ast.Try:
		return e.attempt(t, sc)

	case *ast.Array:
		elements := make([]cell.I, len(t.Elements))
		for i, x := range t.Elements {
			elements[i] = e.eval(x, sc)
		}

		return list.New(elements...)

	case *ast.Command:
		e.throw(t.Source(), "external command execution is not available")
	}

	panic(fmt.Sprintf("unexpected node %T", n))
}

// block evaluates stmts in order and yields the value of the last one,
// or nothing when stmts is empty.
func (e *engine) block(stmts []ast.I, sc *scope.T) cell.I {
	v := cell.I(nothing.Value)

	for _, s := range stmts {
		v = e.eval(s, sc)
	}

	return v
}

// attempt evaluates a try/catch. A failure in the body is bound, as an
// error cell, to the catch clause's name in a new scope. A failure in the
// catch clause chains the original failure as its cause.
func (e *engine) attempt(t *ast.Try, sc *scope.T) (v cell.I) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if _, ok := r.(*returned); ok {
			panic(r)
		}

		f, ok := r.(*raise)
		if !ok {
			f = &raise{
				err:   &Error{Msg: fmt.Sprintf("%v", r)},
				trace: e.backtrace(),
			}
		}

		inner := scope.New(sc)
		if t.Name != "" {
			inner.Define(t.Name, Caught(f.estack()))
		}

		defer func() {
			rr := recover()
			if rr == nil {
				return
			}

			if nf, ok := rr.(*raise); ok {
				nf.chain(f)
			}

			panic(rr)
		}()

		v = e.block(t.Catch, inner)
	}()

	return e.block(t.Body, sc)
}

func (e *engine) call(t *ast.Call, sc *scope.T) cell.I {
	v, ok := sc.Get(t.Name)
	if !ok {
		e.throw(t.Source(), "undefined function %q", t.Name)
	}

	args := make([]cell.I, len(t.Args))
	for i, a := range t.Args {
		args[i] = e.eval(a, sc)
	}

	if len(e.stack) >= maxDepth {
		e.throw(t.Source(), "call stack exhausted")
	}

	e.stack = append(e.stack, frame.New(t.Name, *t.Source()))

	defer func() {
		e.stack = e.stack[:len(e.stack)-1]
	}()

	switch f := v.(type) {
	case *builtin:
		return f.do(e, t, args)
	case *closure:
		return e.apply(f, args, t.Source())
	}

	e.throw(t.Source(), "%s is not callable", v.Name())

	return nil
}

func (e *engine) apply(f *closure, args []cell.I, source *loc.T) (v cell.I) {
	if len(args) != len(f.params) {
		e.throw(source, "%s expects %d argument(s), got %d",
			f.name, len(f.params), len(args))
	}

	inner := scope.New(f.env)
	for i, p := range f.params {
		inner.Define(p, args[i])
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		ret, ok := r.(*returned)
		if !ok {
			panic(r)
		}

		v = ret.v
	}()

	return e.block(f.body, inner)
}

func (e *engine) unary(t *ast.Unary, sc *scope.T) cell.I {
	switch t.Op {
	case "-":
		return num.Rat(new(big.Rat).Neg(e.number(t.X, sc)))
	case "!":
		return boolean.Bool(!e.truthy(t.X, sc))
	}

	e.throw(t.Source(), "unsupported operator %q", t.Op)

	return nil
}

func (e *engine) logical(t *ast.Logical, sc *scope.T) cell.I {
	if t.Op == "&&" {
		if !e.truthy(t.X, sc) {
			return boolean.False
		}

		return e.eval(t.Y, sc)
	}

	if e.truthy(t.X, sc) {
		return boolean.True
	}

	return e.eval(t.Y, sc)
}

func (e *engine) binary(t *ast.Binary, sc *scope.T) cell.I {
	x := e.eval(t.X, sc)
	y := e.eval(t.Y, sc)

	switch t.Op {
	case "==":
		return boolean.Bool(x.Equal(y))
	case "!=":
		return boolean.Bool(!x.Equal(y))
	}

	if str.Is(x) && str.Is(y) {
		return e.strop(t, str.To(x).String(), str.To(y).String())
	}

	a := e.rat(x, t.X.Source())
	b := e.rat(y, t.Y.Source())

	switch t.Op {
	case "+":
		return num.Rat(new(big.Rat).Add(a, b))
	case "-":
		return num.Rat(new(big.Rat).Sub(a, b))
	case "*":
		return num.Rat(new(big.Rat).Mul(a, b))
	case "/":
		if b.Sign() == 0 {
			e.throw(t.Source(), "division by zero")
		}

		return num.Rat(new(big.Rat).Quo(a, b))
	case "%":
		return e.remainder(a, b, t.Source())
	case "^":
		return e.power(a, b, t.Source())
	case "<":
		return boolean.Bool(a.Cmp(b) < 0)
	case "<=":
		return boolean.Bool(a.Cmp(b) <= 0)
	case ">":
		return boolean.Bool(a.Cmp(b) > 0)
	case ">=":
		return boolean.Bool(a.Cmp(b) >= 0)
	}

	e.throw(t.Source(), "unsupported operator %q", t.Op)

	return nil
}

// strop applies a binary operator to two strings. Concatenation is
// spelled *, matching the rest of the string algebra.
func (e *engine) strop(t *ast.Binary, a, b string) cell.I {
	switch t.Op {
	case "*":
		return str.New(a + b)
	case "<":
		return boolean.Bool(a < b)
	case "<=":
		return boolean.Bool(a <= b)
	case ">":
		return boolean.Bool(a > b)
	case ">=":
		return boolean.Bool(a >= b)
	}

	e.throw(t.Source(), "operator %q is not defined for strings", t.Op)

	return nil
}

func (e *engine) remainder(a, b *big.Rat, source *loc.T) cell.I {
	if !a.IsInt() || !b.IsInt() {
		e.throw(source, "remainder requires integer operands")
	}

	if b.Sign() == 0 {
		e.throw(source, "division by zero")
	}

	r := new(big.Int).Rem(a.Num(), b.Num())

	return num.Rat(new(big.Rat).SetInt(r))
}

func (e *engine) power(a, b *big.Rat, source *loc.T) cell.I {
	if !b.IsInt() {
		e.throw(source, "exponent must be an integer")
	}

	if !b.Num().IsInt64() {
		e.throw(source, "exponent too large")
	}

	n := b.Num().Int64()

	neg := n < 0
	if neg {
		n = -n
	}

	exp := big.NewInt(n)
	r := new(big.Rat).SetFrac(
		new(big.Int).Exp(a.Num(), exp, nil),
		new(big.Int).Exp(a.Denom(), exp, nil),
	)

	if neg {
		if r.Sign() == 0 {
			e.throw(source, "division by zero")
		}

		r.Inv(r)
	}

	return num.Rat(r)
}

// number evaluates n and returns its value as a rational.
func (e *engine) number(n ast.I, sc *scope.T) *big.Rat {
	return e.rat(e.eval(n, sc), n.Source())
}

func (e *engine) rat(c cell.I, source *loc.T) *big.Rat {
	r, ok := c.(rational.I)
	if !ok {
		e.throw(source, "%s cannot be used in a numeric context", c.Name())
	}

	return r.Rat()
}

// truthy evaluates n and returns its truth value.
func (e *engine) truthy(n ast.I, sc *scope.T) bool {
	c := e.eval(n, sc)

	b, ok := c.(truth.I)
	if !ok {
		e.throw(n.Source(), "%s cannot be used in a boolean context", c.Name())
	}

	return b.Bool()
}
