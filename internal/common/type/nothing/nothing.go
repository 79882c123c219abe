// Released under an MIT license. See LICENSE.

// Package nothing provides rill's nothing value. It is the value of an
// assignment, a definition, and anything else with no useful result.
package nothing

import (
	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/interface/literal"
	"github.com/rill-lang/rill/internal/common/interface/truth"
)

const name = "nothing"

// T (nothing) has a single value.
type T struct{}

type nothing = T

// Value is the nothing value.
//
//nolint:gochecknoglobals
var Value = &nothing{}

// Bool returns the boolean value of nothing, which is false.
func (n *nothing) Bool() bool {
	return false
}

// Equal returns true if c is also nothing.
func (n *nothing) Equal(c cell.I) bool {
	return Is(c)
}

// Literal returns the literal representation of nothing.
func (n *nothing) Literal() string {
	return name
}

// Name returns the type name for nothing.
func (n *nothing) Name() string {
	return name
}

// String returns the text of nothing.
func (n *nothing) String() string {
	return name
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*T)

	return ok
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t nothing

	// The nothing type is a cell.
	_ = cell.I(&t)

	// The nothing type has a literal representation.
	_ = literal.I(&t)

	// The nothing type is a stringer.
	_ = common.Stringer(&t)

	// The nothing type has a truth value.
	_ = truth.I(&t)
}
