// Released under an MIT license. See LICENSE.

// Package estack provides rill's exception stack type. An exception stack
// records one evaluation attempt's full causal chain: the exception that
// was first raised, followed by any exception raised while the first was
// being handled, oldest cause first.
package estack

import (
	"github.com/rill-lang/rill/internal/common/struct/frame"
)

// Entry is one captured exception and the backtrace recorded when it was
// raised. The entry owns its backtrace; the exception value itself is
// never modified.
type Entry struct {
	err   error
	trace []*frame.T
}

// Err returns the entry's exception value.
func (e *Entry) Err() error {
	return e.err
}

// Trace returns the entry's backtrace, innermost call first. The control
// loop's own evaluate frame, when present, is the trace's final frame.
func (e *Entry) Trace() []*frame.T {
	return e.trace
}

// T (estack) is an ordered sequence of captured exceptions.
type T struct {
	entries []Entry
}

type estack = T

// New creates a new single-entry exception stack. A fresh failure is never
// merged with a prior stack; each stack represents one causal chain.
func New(err error, trace []*frame.T) *estack {
	return &estack{entries: []Entry{{err: err, trace: trace}}}
}

// Chain appends a new cause to the stack s: err was raised while the most
// recent entry in s was being handled.
func (s *estack) Chain(err error, trace []*frame.T) *estack {
	s.entries = append(s.entries, Entry{err: err, trace: trace})

	return s
}

// Entries returns the stack's entries, oldest cause first.
func (s *estack) Entries() []Entry {
	return s.entries
}

// Err returns the most recently raised exception in the stack.
func (s *estack) Err() error {
	return s.entries[len(s.entries)-1].err
}

// Scrub removes, from each entry's backtrace, every frame from the first
// frame belonging to the control loop's own evaluate call through the end
// of the trace. A scrubbed trace contains no machinery frames, so
// scrubbing twice is the same as scrubbing once.
func (s *estack) Scrub() {
	for i := range s.entries {
		for j, f := range s.entries[i].trace {
			if f.Machinery() {
				s.entries[i].trace = s.entries[i].trace[:j]

				break
			}
		}
	}
}

// Trivial returns true if the stack has exactly one entry whose backtrace
// has at most one frame. A trivial stack carries no useful call-site
// information: the failure happened at the top level, where the user
// already is.
func (s *estack) Trivial() bool {
	return len(s.entries) == 1 && len(s.entries[0].trace) <= 1
}
