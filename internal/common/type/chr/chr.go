// Released under an MIT license. See LICENSE.

// Package chr provides rill's character type.
package chr

import (
	"strconv"

	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/interface/literal"
)

const name = "character"

// T (chr) wraps Go's rune type.
type T rune

type chr = T

// New creates a new chr cell.
func New(r rune) cell.I {
	c := chr(r)

	return &c
}

// Equal returns true if c is a chr and wraps the same rune.
func (h *chr) Equal(c cell.I) bool {
	return Is(c) && h.Rune() == To(c).Rune()
}

// Literal returns the literal representation of the chr h.
func (h *chr) Literal() string {
	return strconv.QuoteRune(rune(*h))
}

// Name returns the type name for the chr h.
func (h *chr) Name() string {
	return name
}

// Rune returns the value of the chr h as a rune.
func (h *chr) Rune() rune {
	return rune(*h)
}

// String returns the text of the chr h.
func (h *chr) String() string {
	return string(rune(*h))
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*T)

	return ok
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*T); ok {
		return t
	}

	panic("not a " + name)
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t chr

	// The chr type is a cell.
	_ = cell.I(&t)

	// The chr type has a literal representation.
	_ = literal.I(&t)

	// The chr type is a stringer.
	_ = common.Stringer(&t)
}
