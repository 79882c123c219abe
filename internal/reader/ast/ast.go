// Released under an MIT license. See LICENSE.

// Package ast provides rill's syntax tree types. Every node records the
// location of the token that introduced it so that backtraces and
// diagnostics can point back into the source.
package ast

import (
	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/struct/loc"
)

// I (node) is the interface satisfied by all syntax tree nodes.
type I interface {
	Source() *loc.T
}

type node struct {
	source loc.T
}

func (n *node) Source() *loc.T {
	return &n.source
}

func at(source *loc.T) node {
	return node{source: *source}
}

// Program is a sequence of top-level statements.
type Program struct {
	node
	Stmts []I
}

// NewProgram creates a program node for the statements in stmts.
func NewProgram(stmts []I, source *loc.T) *Program {
	return &Program{node: at(source), Stmts: stmts}
}

// Literal is a value that denotes itself.
type Literal struct {
	node
	Value cell.I
}

// NewLiteral creates a literal node for the value v.
func NewLiteral(v cell.I, source *loc.T) *Literal {
	return &Literal{node: at(source), Value: v}
}

// Ident is a variable reference.
type Ident struct {
	node
	Name string
}

// NewIdent creates an identifier node for the name s.
func NewIdent(s string, source *loc.T) *Ident {
	return &Ident{node: at(source), Name: s}
}

// Assign binds the value of X to Name in the current scope.
type Assign struct {
	node
	Name string
	X    I
}

// NewAssign creates an assignment node.
func NewAssign(name string, x I, source *loc.T) *Assign {
	return &Assign{node: at(source), Name: name, X: x}
}

// Unary applies Op to X.
type Unary struct {
	node
	Op string
	X  I
}

// NewUnary creates a unary operation node.
func NewUnary(op string, x I, source *loc.T) *Unary {
	return &Unary{node: at(source), Op: op, X: x}
}

// Binary applies Op to X and Y.
type Binary struct {
	node
	Op   string
	X, Y I
}

// NewBinary creates a binary operation node.
func NewBinary(op string, x, y I, source *loc.T) *Binary {
	return &Binary{node: at(source), Op: op, X: x, Y: y}
}

// Logical is short-circuit && or ||.
type Logical struct {
	node
	Op   string
	X, Y I
}

// NewLogical creates a short-circuit operation node.
func NewLogical(op string, x, y I, source *loc.T) *Logical {
	return &Logical{node: at(source), Op: op, X: x, Y: y}
}

// Call invokes the function bound to Name with Args.
type Call struct {
	node
	Name string
	Args []I
}

// NewCall creates a call node.
func NewCall(name string, args []I, source *loc.T) *Call {
	return &Call{node: at(source), Name: name, Args: args}
}

// Function defines a named function.
type Function struct {
	node
	Name   string
	Params []string
	Body   []I
}

// NewFunction creates a function definition node.
func NewFunction(name string, params []string, body []I, source *loc.T) *Function {
	return &Function{node: at(source), Name: name, Params: params, Body: body}
}

// If selects between Then and Else based on Cond.
// An elseif chain is represented as a nested If in Else.
type If struct {
	node
	Cond I
	Then []I
	Else []I
}

// NewIf creates a conditional node.
func NewIf(cond I, then, els []I, source *loc.T) *If {
	return &If{node: at(source), Cond: cond, Then: then, Else: els}
}

// While evaluates Body as long as Cond holds.
type While struct {
	node
	Cond I
	Body []I
}

// NewWhile creates a loop node.
func NewWhile(cond I, body []I, source *loc.T) *While {
	return &While{node: at(source), Cond: cond, Body: body}
}

// Begin evaluates Body and yields the value of its last statement.
type Begin struct {
	node
	Body []I
}

// NewBegin creates a block node.
func NewBegin(body []I, source *loc.T) *Begin {
	return &Begin{node: at(source), Body: body}
}

// Return exits the enclosing function with the value of X.
// X may be nil for a bare return.
type Return struct {
	node
	X I
}

// NewReturn creates a return node.
func NewReturn(x I, source *loc.T) *Return {
	return &Return{node: at(source), X: x}
}

// Try evaluates Body. If Body raises, the error is bound to Name and
// Catch is evaluated.
type Try struct {
	node
	Body  []I
	Name  string
	Catch []I
}

// NewTry creates a try/catch node.
func NewTry(body []I, name string, catch []I, source *loc.T) *Try {
	return &Try{node: at(source), Body: body, Name: name, Catch: catch}
}

// Array is a list literal.
type Array struct {
	node
	Elements []I
}

// NewArray creates a list literal node.
func NewArray(elements []I, source *loc.T) *Array {
	return &Array{node: at(source), Elements: elements}
}

// Command is an external command literal.
type Command struct {
	node
	Text string
}

// NewCommand creates a command literal node.
func NewCommand(text string, source *loc.T) *Command {
	return &Command{node: at(source), Text: text}
}
