// Released under an MIT license. See LICENSE.

// Package frame provides rill's backtrace frame type.
package frame

import (
	"github.com/rill-lang/rill/internal/common/struct/loc"
)

// Eval is the call label for the frame the evaluator pushes on entry to a
// top-level evaluation. Scrubbing a backtrace removes this frame and every
// frame after it.
const Eval = "(eval)"

// T (frame) is one entry in a backtrace.
type T struct {
	call   string
	source loc.T
}

type frame = T

// New creates a new frame for a call at source.
func New(call string, source loc.T) *frame {
	return &frame{call: call, source: source}
}

// Call returns the label of the call this frame records.
func (f *frame) Call() string {
	return f.call
}

// Loc returns the location of the call this frame records.
func (f *frame) Loc() *loc.T {
	return &f.source
}

// Machinery returns true if this frame belongs to the control loop's own
// evaluate call rather than to user code.
func (f *frame) Machinery() bool {
	return f.call == Eval
}

// String returns the frame's display representation.
func (f *frame) String() string {
	return f.call + " at " + f.source.String()
}
