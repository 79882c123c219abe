// Released under an MIT license. See LICENSE.

package engine

import (
	"strconv"

	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/interface/truth"
	"github.com/rill-lang/rill/internal/engine/scope"
	"github.com/rill-lang/rill/internal/reader/ast"
)

// closure is a user-defined function and the scope it closed over.
type closure struct {
	name   string
	params []string
	body   []ast.I
	env    *scope.T
}

// Bool returns the boolean value of a closure, which is true.
func (f *closure) Bool() bool {
	return true
}

// Equal returns true if c is this closure. Functions compare by identity.
func (f *closure) Equal(c cell.I) bool {
	return cell.I(f) == c
}

// Name returns the type name for a closure.
func (f *closure) Name() string {
	return "function"
}

// String returns the display representation of the closure f.
func (f *closure) String() string {
	return f.name + " (function with " +
		strconv.Itoa(len(f.params)) + " parameter(s))"
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func closureImplements() { //nolint:deadcode,unused
	var t closure

	// The closure type is a cell.
	_ = cell.I(&t)

	// The closure type is a stringer.
	_ = common.Stringer(&t)

	// The closure type has a truth value.
	_ = truth.I(&t)
}
