// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for the rill language.
//
// The rill lexer adapts the state function approach used by Go's
// text/template lexer and described in detail in Rob Pike's talk
// "Lexical Scanning in Go".
// See https://talks.golang.org/2011/lex.slide for more information.
//
// The lexer scans a complete buffer. When the buffer ends inside an open
// construct (string, character, command literal, or multi-line comment) the
// lexer emits an error token whose text starts with "incomplete: " so that
// callers can ask for more input instead of giving up.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rill-lang/rill/internal/common/struct/loc"
	"github.com/rill-lang/rill/internal/common/struct/token"
)

// T holds the state of the scanner.
type T struct {
	bytes string // Buffer being scanned.
	first int    // Index of the current token's first byte.
	index int    // Index of the current byte.
	depth int    // Multi-line comment nesting depth.

	saved  loc.T // Location of the current token's first byte.
	source loc.T // Location of the current byte.

	state  action
	tokens []*token.T
}

type lexer = T

type action func(*lexer) action

const eof = -1

// New creates a new T scanning text. Label can be a file name or other
// identifier for the source of the text.
func New(label, text string) *T {
	return &T{
		bytes: text,
		source: loc.T{
			Char: 1,
			Line: 1,
			Name: label,
		},
		state: scanToken,
	}
}

// Token returns the next scanned token, or nil when the buffer is exhausted.
func (l *lexer) Token() *token.T {
	for {
		if len(l.tokens) > 0 {
			t := l.tokens[0]
			l.tokens = l.tokens[1:]

			return t
		}

		if l.state == nil {
			return nil
		}

		l.state = l.state(l)
	}
}

func (l *lexer) accept() rune {
	r, w := l.peek(), l.width()
	if r == eof {
		return eof
	}

	if r == '\n' {
		l.source.Line++
		l.source.Char = 1
	} else {
		l.source.Char++
	}

	l.index += w

	return r
}

func (l *lexer) emit(c token.Class) {
	l.emitValue(c, l.text())
}

func (l *lexer) emitValue(c token.Class, v string) {
	source := l.saved
	l.tokens = append(l.tokens, token.New(c, v, &source))

	l.mark()
}

func (l *lexer) error(msg string) action {
	l.emitValue(token.Error, msg)

	return nil
}

// incomplete emits an error token that classifies as "more input required".
func (l *lexer) incomplete(msg string) action {
	return l.error("incomplete: " + msg)
}

// mark records the current position as the start of the next token.
func (l *lexer) mark() {
	l.first = l.index
	l.saved = l.source
}

func (l *lexer) peek() rune {
	if l.index >= len(l.bytes) {
		return eof
	}

	r, _ := utf8.DecodeRuneInString(l.bytes[l.index:])

	return r
}

func (l *lexer) text() string {
	return l.bytes[l.first:l.index]
}

func (l *lexer) width() int {
	if l.index >= len(l.bytes) {
		return 0
	}

	_, w := utf8.DecodeRuneInString(l.bytes[l.index:])

	return w
}

func ident(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func initial(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

//nolint:gochecknoglobals
var keywords = map[string]bool{
	"begin":    true,
	"catch":    true,
	"else":     true,
	"elseif":   true,
	"end":      true,
	"false":    true,
	"function": true,
	"if":       true,
	"nothing":  true,
	"return":   true,
	"true":     true,
	"try":      true,
	"while":    true,
}

// scanToken is the lexer's top-level state. It dispatches to the state for
// the construct introduced by the next rune.
func scanToken(l *lexer) action {
	for {
		r := l.peek()

		switch {
		case r == eof:
			return nil
		case r == ' ' || r == '\t' || r == '\r':
			l.accept()
			l.mark()

			continue
		case r == '#':
			return scanComment
		case r == '\n' || r == ';':
			l.accept()
			l.emit(token.Newline)

			return scanToken
		case unicode.IsDigit(r):
			return scanNumber
		case initial(r):
			return scanSymbol
		case r == '"':
			return scanString
		case r == '\'':
			return scanCharacter
		case r == '`':
			return scanCommand
		case r == ':':
			return scanQuoted
		default:
			return scanOperator
		}
	}
}

func scanCharacter(l *lexer) action {
	l.accept() // The opening quote.

	r := l.peek()
	if r == eof {
		return l.incomplete("invalid character literal")
	}

	if r == '\\' {
		l.accept()

		if l.peek() == eof {
			return l.incomplete("invalid character literal")
		}
	}

	l.accept()

	switch l.peek() {
	case eof:
		return l.incomplete("invalid character literal")
	case '\'':
		l.accept()
		l.emit(token.Character)

		return scanToken
	}

	return l.error("invalid character literal")
}

func scanCommand(l *lexer) action {
	l.accept() // The opening backtick.

	for {
		switch l.peek() {
		case eof:
			return l.incomplete(`invalid "` + "`" + `" syntax`)
		case '`':
			l.accept()
			l.emit(token.Command)

			return scanToken
		}

		l.accept()
	}
}

func scanComment(l *lexer) action {
	l.accept() // The '#'.

	if l.peek() != '=' {
		// A line comment runs to the end of the line.
		for l.peek() != '\n' && l.peek() != eof {
			l.accept()
		}

		l.mark()

		return scanToken
	}

	l.accept()
	l.depth = 1

	for l.depth > 0 {
		r := l.accept()

		switch {
		case r == eof:
			return l.incomplete("unterminated multi-line comment #= ... =#")
		case r == '#' && l.peek() == '=':
			l.accept()
			l.depth++
		case r == '=' && l.peek() == '#':
			l.accept()
			l.depth--
		}
	}

	l.mark()

	return scanToken
}

func scanNumber(l *lexer) action {
	for unicode.IsDigit(l.peek()) {
		l.accept()
	}

	if l.peek() == '.' {
		l.accept()

		for unicode.IsDigit(l.peek()) {
			l.accept()
		}
	}

	if r := l.peek(); r == 'e' || r == 'E' {
		l.accept()

		if r := l.peek(); r == '+' || r == '-' {
			l.accept()
		}

		for unicode.IsDigit(l.peek()) {
			l.accept()
		}
	}

	l.emit(token.Number)

	return scanToken
}

//nolint:gochecknoglobals
var operators = map[string]token.Class{
	"!":  token.Operator,
	"!=": token.Operator,
	"%":  token.Operator,
	"&&": token.Andf,
	"*":  token.Operator,
	"**": token.Power,
	"+":  token.Operator,
	"-":  token.Operator,
	"/":  token.Operator,
	"<":  token.Operator,
	"<=": token.Operator,
	"==": token.Operator,
	">":  token.Operator,
	">=": token.Operator,
	"^":  token.Power,
	"||": token.Orf,
}

func scanOperator(l *lexer) action {
	r := l.accept()

	switch r {
	case '(', ')', '[', ']', ',':
		l.emit(token.Class(r))

		return scanToken
	}

	two := string(r) + string(l.peek())

	if c, ok := operators[two]; ok && l.peek() != eof {
		l.accept()
		l.emit(c)

		return scanToken
	}

	if r == '=' {
		l.emit(token.Class('='))

		return scanToken
	}

	if c, ok := operators[string(r)]; ok {
		l.emit(c)

		return scanToken
	}

	return l.error("unexpected character " + strings.TrimSpace(string(r)))
}

func scanQuoted(l *lexer) action {
	l.accept() // The ':'.

	if !initial(l.peek()) {
		return l.error("invalid symbol literal")
	}

	for ident(l.peek()) {
		l.accept()
	}

	l.emit(token.Quoted)

	return scanToken
}

func scanString(l *lexer) action {
	l.accept() // The opening quote.

	for {
		switch l.peek() {
		case eof:
			return l.incomplete("invalid string syntax")
		case '\\':
			l.accept()

			if l.peek() == eof {
				return l.incomplete("invalid string syntax")
			}

			l.accept()

			continue
		case '"':
			l.accept()
			l.emit(token.DoubleQuoted)

			return scanToken
		}

		l.accept()
	}
}

func scanSymbol(l *lexer) action {
	for ident(l.peek()) {
		l.accept()
	}

	if keywords[l.text()] {
		l.emit(token.Keyword)
	} else {
		l.emit(token.Symbol)
	}

	return scanToken
}
