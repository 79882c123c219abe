// Released under an MIT license. See LICENSE.

// Package list provides common list operations. A list is not a true type.
// Lists are more of a type by convention. They are composed of cons cells.
package list

import (
	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/type/pair"
)

// Array returns the elements of list as a slice.
// A non-pair value where a pair is expected will cause a panic.
func Array(list cell.I) []cell.I {
	a := []cell.I{}

	for c := list; c != pair.Null; c = pair.Cdr(c) {
		a = append(a, pair.Car(c))
	}

	return a
}

// Length returns the number of elements in the list.
// A non-pair value where a pair is expected will cause a panic.
// The list must be non-circular.
func Length(list cell.I) int {
	n := 0

	for c := list; c != pair.Null; c = pair.Cdr(c) {
		n++
	}

	return n
}

// New creates a new list, composed of the elements provided.
func New(elements ...cell.I) cell.I {
	start := pair.Null

	for i := len(elements) - 1; i >= 0; i-- {
		start = pair.Cons(elements[i], start)
	}

	return start
}
