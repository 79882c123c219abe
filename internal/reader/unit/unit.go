// Released under an MIT license. See LICENSE.

// Package unit provides the result type for parsing one chunk of top-level
// rill text, and the classifier that decides why a chunk was incomplete.
package unit

import (
	"strings"

	"github.com/rill-lang/rill/internal/reader/ast"
)

// Kind says what parsing a chunk of text produced.
type Kind int

// The possible parse outcomes.
const (
	// Empty means the text contained no top-level forms.
	Empty Kind = iota

	// Complete means the text parsed as one or more top-level forms.
	Complete

	// Incomplete means the text ended before a form was finished.
	// More input may still produce a complete parse.
	Incomplete

	// Error means the text cannot parse no matter what is appended.
	Error
)

// T (unit) is the tagged result of parsing one chunk of top-level text.
type T struct {
	kind Kind
	tree ast.I
	err  error
}

type unit = T

// Blank creates a unit for text with no top-level forms.
func Blank() *unit {
	return &unit{kind: Empty}
}

// Invalid creates a unit for text that failed to parse.
func Invalid(err error) *unit {
	return &unit{kind: Error, err: err}
}

// New creates a unit for a completed parse of tree.
func New(tree ast.I) *unit {
	return &unit{kind: Complete, tree: tree}
}

// Unfinished creates a unit for text that ended mid-form.
func Unfinished(err error) *unit {
	return &unit{kind: Incomplete, err: err}
}

// Err returns the parse error, if any.
func (u *unit) Err() error {
	return u.err
}

// Kind returns the unit's parse outcome.
func (u *unit) Kind() Kind {
	return u.kind
}

// Tree returns the parsed syntax tree for a Complete unit.
func (u *unit) Tree() ast.I {
	return u.tree
}

// IncompleteError marks a parse that stopped because the input ended
// mid-form. Msg describes the open construct. Err, when set, is a nested
// incomplete marker whose message takes precedence.
type IncompleteError struct {
	Msg string
	Err error
}

// Error returns the marker's diagnostic message.
func (e *IncompleteError) Error() string {
	return "incomplete: " + e.Msg
}

// Unwrap returns the nested marker, if any.
func (e *IncompleteError) Unwrap() error {
	return e.Err
}

// Reason says why a chunk of input was incomplete.
type Reason int

// The possible reasons, in the order they are checked.
const (
	// None is returned for anything that is not an incomplete marker.
	None Reason = iota

	String
	Comment
	Block
	Cmd
	Char
	Other
)

// String returns the reason's name. Useful for debugging.
func (r Reason) String() string {
	switch r {
	case None:
		return "none"
	case String:
		return "string"
	case Comment:
		return "comment"
	case Block:
		return "block"
	case Cmd:
		return "cmd"
	case Char:
		return "char"
	case Other:
		return "other"
	}

	return "invalid"
}

// Deduce classifies why input was incomplete by inspecting the diagnostic
// message of the incomplete marker err. Anything that is not an incomplete
// marker yields None: the input failed or succeeded outright and no
// continuation is called for. A marker wrapping another marker is unwrapped
// exactly one level; diagnostic chains are never followed further.
func Deduce(err error) Reason {
	m, ok := err.(*IncompleteError)
	if !ok {
		return None
	}

	msg := m.Msg

	if nested, ok := m.Err.(*IncompleteError); ok {
		msg = nested.Msg
	}

	// First match wins.
	switch {
	case strings.Contains(msg, "string"):
		return String
	case strings.Contains(msg, "comment"):
		return Comment
	case strings.Contains(msg, "requires end"):
		return Block
	case strings.Contains(msg, "`"):
		return Cmd
	case strings.Contains(msg, "character"):
		return Char
	}

	return Other
}
