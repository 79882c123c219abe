// Released under an MIT license. See LICENSE.

package repl

import (
	"github.com/rill-lang/rill/internal/reader"
	"github.com/rill-lang/rill/internal/reader/ast"
	"github.com/rill-lang/rill/internal/reader/unit"
	"github.com/rill-lang/rill/internal/ui"
)

// Run pumps lines from t until the stream is exhausted. Lines accumulate
// into a buffer that is re-parsed after every line; accumulation continues
// only while the parse reports that more input could still complete the
// chunk. An interrupt abandons the current accumulation, never the loop.
func (s *Session) Run(t ui.Terminal, name string) {
	r := reader.New(name, s.warn)

	buffer := ""

	for t.IsOpen() || !t.AtEnd() {
		if p, ok := t.(ui.Prompter); ok {
			if buffer == "" {
				p.SetPrompt(ui.Prompt)
			} else {
				p.SetPrompt(ui.Continue)
			}
		}

		line, err := t.ReadLine(true)
		if err != nil {
			if err == ui.ErrInterrupt {
				_ = s.Out.Print("\n")

				buffer = ""

				continue
			}

			break
		}

		buffer += line

		// A quiet, speculative parse: deprecation warnings wait until the
		// chunk is final. The classifier gates continuation: accumulation
		// goes on only when it names the open construct more input could
		// still close.
		u := r.Parse(buffer, true)
		if unit.Deduce(u.Err()) != unit.None && (t.IsOpen() || !t.AtEnd()) {
			continue
		}

		s.Dispatch(r.Parse(buffer, false), s.Interactive)

		buffer = ""
	}

	if buffer != "" {
		// The stream ended mid-accumulation.
		s.Dispatch(r.Parse(buffer, false), s.Interactive)
	}
}

// Bulk parses text as one top-level sequence and evaluates each statement
// in order, without displaying results. It returns true if any statement
// failed.
func (s *Session) Bulk(text, name string) bool {
	r := reader.New(name, s.warn)

	u := r.Parse(text, false)

	prog, ok := u.Tree().(*ast.Program)
	if !ok {
		return s.Dispatch(u, false)
	}

	failed := false

	for _, stmt := range prog.Stmts {
		if s.Dispatch(unit.New(stmt), false) {
			failed = true
		}
	}

	return failed
}
