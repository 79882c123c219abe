// Released under an MIT license. See LICENSE.

// Package reader encapsulates the rill lexer and parser behind a single
// parse-everything operation.
package reader

import (
	"errors"

	"github.com/rill-lang/rill/internal/reader/lexer"
	"github.com/rill-lang/rill/internal/reader/parser"
	"github.com/rill-lang/rill/internal/reader/unit"
)

// T (reader) parses chunks of top-level text under one logical source name.
type T struct {
	name string
	warn func(string)
}

type reader = T

// New creates a new reader for name. Deprecation warnings raised while
// parsing are passed to warn, which may be nil.
func New(name string, warn func(string)) *T {
	return &reader{name: name, warn: warn}
}

// Parse parses all top-level forms in text. A parse failure anywhere in
// the text discards every form parsed before it: a chunk either parses
// completely or not at all, so that no partial multi-statement input is
// silently evaluated. The quiet flag suppresses deprecation warnings,
// which is what speculative re-parses of accumulating input want.
func (r *reader) Parse(text string, quiet bool) *unit.T {
	warn := r.warn
	if quiet {
		warn = nil
	}

	l := lexer.New(r.name, text)

	prog, err := parser.New(l.Token, warn).Parse()
	if err != nil {
		var incomplete *unit.IncompleteError
		if errors.As(err, &incomplete) {
			return unit.Unfinished(incomplete)
		}

		return unit.Invalid(err)
	}

	if len(prog.Stmts) == 0 {
		return unit.Blank()
	}

	return unit.New(prog)
}

// Name returns the logical source name for text parsed by this reader.
func (r *reader) Name() string {
	return r.name
}
