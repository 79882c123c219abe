// Released under an MIT license. See LICENSE.

// Package rational defines the interface for rill types that can be treated as rational numbers.
package rational

import (
	"math/big"

	"github.com/rill-lang/rill/internal/common/interface/cell"
)

// I (rational) is any type that can be treated as a rational number.
type I interface {
	Rat() *big.Rat
}

// Number returns the value of the cell c as a *big.Rat, if possible.
func Number(c cell.I) *big.Rat {
	r, ok := c.(I)
	if !ok {
		panic(c.Name() + " cannot be used in a numeric context")
	}

	return r.Rat()
}
