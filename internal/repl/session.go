// Released under an MIT license. See LICENSE.

// Package repl implements rill's read-eval-print control loop: the
// evaluation driver with its bounded error-reporting retry, and the loop
// controller that feeds it parsed units.
package repl

import (
	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/type/nothing"
	"github.com/rill-lang/rill/internal/engine"
	"github.com/rill-lang/rill/internal/engine/estack"
	"github.com/rill-lang/rill/internal/ui"
)

// Session is one read-eval-print session: the settings resolved at
// startup plus the loop's mutable state. It is passed explicitly to
// everything that needs it; there is no ambient session.
type Session struct {
	// Engine evaluates parsed trees in the session's top-level scope.
	Engine *engine.T

	// Out receives evaluation results. Diag receives errors, warnings,
	// and the control loop's own diagnostics.
	Out  *ui.Sink
	Diag *ui.Sink

	// Interactive is true when a human is typing at a terminal.
	Interactive bool

	// Display colors, resolved once at startup.
	AnswerColor string
	ErrorColor  string

	// Attempts bounds consecutive failures, including failures while
	// reporting failures, tolerated in a single driver call.
	Attempts int

	last    cell.I
	failure *estack.T
}

// New creates a session. Results go to out; errors and diagnostics go
// to diag.
func New(e *engine.T, out, diag *ui.Sink, interactive bool) *Session {
	e.Define("ans", nothing.Value)

	return &Session{
		Engine:      e,
		Out:         out,
		Diag:        diag,
		Interactive: interactive,
		ErrorColor:  "red",
		Attempts:    DefaultAttempts,
		last:        nothing.Value,
	}
}

// Failure returns the most recent published error stack, or nil. Trivial
// failures are never published.
func (s *Session) Failure() *estack.T {
	return s.failure
}

// Last returns the most recent evaluation result.
func (s *Session) Last() cell.I {
	return s.last
}

// warn displays a deprecation warning raised while parsing.
func (s *Session) warn(msg string) {
	_ = s.Diag.Styled("WARNING: ", "yellow", true)
	_ = s.Diag.Print(msg + "\n")
}
