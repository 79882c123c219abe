// Released under an MIT license. See LICENSE.

package repl

import (
	"strconv"

	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/interface/literal"
	"github.com/rill-lang/rill/internal/common/struct/frame"
	"github.com/rill-lang/rill/internal/common/type/nothing"
	"github.com/rill-lang/rill/internal/engine"
	"github.com/rill-lang/rill/internal/engine/estack"
	"github.com/rill-lang/rill/internal/reader/unit"
	"github.com/rill-lang/rill/internal/system/terminal"
)

// DefaultAttempts is the observed bound on consecutive failures the
// driver tolerates before concluding the display pipeline itself is
// broken. Sessions may override it.
const DefaultAttempts = 3

// Dispatch runs the evaluation driver for one parsed unit and returns
// true if the attempt failed. Evaluation failures are reported and the
// session continues; only the caller decides whether a failure ends the
// process.
func (s *Session) Dispatch(u *unit.T, display bool) bool {
	switch u.Kind() {
	case unit.Empty:
		return false
	case unit.Incomplete, unit.Error:
		// The chunk never evaluated, so there is no call-site context to
		// publish. Report and move on.
		_ = s.report(estack.New(u.Err(), nil))
		s.conclude()

		return true
	case unit.Complete:
	}

	failed := s.attempt(u, display)

	s.conclude()

	return failed
}

// attempt is one Eval/ReportError pass for a complete unit.
func (s *Session) attempt(u *unit.T, display bool) bool {
	count := 0

	var pending *estack.T

	v, failure := s.Engine.Evaluate(u.Tree())

	switch {
	case failure != nil:
		count++
		pending = failure
	default:
		s.last = v
		s.Engine.Define("ans", v)

		if display && !nothing.Is(v) {
			if err := s.show(v); err != nil {
				// The value is valid but unreportable. Say so before
				// treating the display failure like any other error.
				_ = s.Diag.Print(
					"rill: evaluation succeeded but the result could not be displayed: " +
						err.Error() + "\n")

				count++
				pending = estack.New(err, nil)
			}
		}
	}

	failed := pending != nil

	for pending != nil {
		if count > s.Attempts {
			_ = s.Diag.Print("rill: " + strconv.Itoa(count-1) +
				" consecutive errors while displaying an error; giving up\n")

			break
		}

		if err := s.report(pending); err != nil {
			count++
			pending = estack.New(err, nil)

			continue
		}

		pending = nil
	}

	return failed
}

// conclude emits the trailing newline that keeps interactive sessions
// readable.
func (s *Session) conclude() {
	if s.Interactive {
		_ = s.Out.Print("\n")
	}
}

// report scrubs and displays one error stack. Non-trivial stacks are
// published to the session's err binding first.
func (s *Session) report(stack *estack.T) error {
	stack.Scrub()

	if !stack.Trivial() {
		s.failure = stack
		s.Engine.Define("err", engine.Caught(stack))
	}

	entries := stack.Entries()

	// Most recent exception first; its causes follow.
	for i := len(entries) - 1; i >= 0; i-- {
		banner := "ERROR: "
		if i < len(entries)-1 {
			banner = "caused by: "
		}

		if err := s.Diag.Styled(banner, s.ErrorColor, true); err != nil {
			return err
		}

		if err := s.Diag.Print(entries[i].Err().Error() + "\n"); err != nil {
			return err
		}

		if err := s.trace(entries[i].Trace()); err != nil {
			return err
		}
	}

	return nil
}

// show displays an evaluation result.
func (s *Session) show(v cell.I) error {
	text := ""
	if l, ok := v.(literal.I); ok {
		text = l.Literal()
	} else {
		text = common.String(v)
	}

	return s.Out.Styled(text+"\n", s.AnswerColor, false)
}

// trace displays a backtrace, bounded by the terminal height so a deep
// recursion failure cannot flood the session.
func (s *Session) trace(frames []*frame.T) error {
	if len(frames) == 0 {
		return nil
	}

	if err := s.Diag.Print("Stacktrace:\n"); err != nil {
		return err
	}

	_, rows := terminal.Size()

	limit := rows - 5
	if limit < 8 {
		limit = 8
	}

	for i, f := range frames {
		if i >= limit {
			return s.Diag.Print(" ... " +
				strconv.Itoa(len(frames)-i) + " more frame(s)\n")
		}

		if err := s.Diag.Print(" [" + strconv.Itoa(i+1) + "] " +
			f.String() + "\n"); err != nil {
			return err
		}
	}

	return nil
}
