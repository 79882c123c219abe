// Released under an MIT license. See LICENSE.

package engine

import (
	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/engine/estack"
)

// fault wraps a captured failure as a cell so that catch clauses, and the
// control loop's err convenience binding, can hold and examine it.
type fault struct {
	stack *estack.T
}

// Caught wraps the exception stack s as a cell.
func Caught(s *estack.T) cell.I {
	return &fault{stack: s}
}

// Equal returns true if c is this fault. Faults compare by identity.
func (f *fault) Equal(c cell.I) bool {
	return cell.I(f) == c
}

// Name returns the type name for a fault.
func (f *fault) Name() string {
	return "error"
}

// Stack returns the exception stack the fault f wraps.
func (f *fault) Stack() *estack.T {
	return f.stack
}

// String returns the most recent exception's message.
func (f *fault) String() string {
	return f.stack.Err().Error()
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func faultImplements() { //nolint:deadcode,unused
	var t fault

	// The fault type is a cell.
	_ = cell.I(&t)

	// The fault type is a stringer.
	_ = common.Stringer(&t)
}
