package unit

import (
	"errors"
	"testing"
)

func deduce(t *testing.T, err error, expected Reason) {
	t.Helper()

	if actual := Deduce(err); actual != expected {
		t.Fatalf("Expected %v; got %v", expected, actual)
	}
}

func TestDeduceBlock(t *testing.T) {
	deduce(t, &IncompleteError{Msg: `"function" at test:1:1 requires end`}, Block)
}

func TestDeduceCharacter(t *testing.T) {
	deduce(t, &IncompleteError{Msg: "invalid character literal"}, Char)
}

func TestDeduceCommand(t *testing.T) {
	deduce(t, &IncompleteError{Msg: "invalid \"`\" syntax"}, Cmd)
}

func TestDeduceComment(t *testing.T) {
	deduce(t, &IncompleteError{Msg: "unterminated multi-line comment #= ... =#"}, Comment)
}

func TestDeduceNested(t *testing.T) {
	// The nested marker's message wins, one level down and no further.
	deduce(t, &IncompleteError{
		Msg: "outer",
		Err: &IncompleteError{Msg: "invalid string syntax"},
	}, String)
}

func TestDeduceNone(t *testing.T) {
	// Anything that is not an incomplete marker calls for no continuation.
	deduce(t, errors.New("invalid string syntax"), None)
	deduce(t, nil, None)
}

func TestDeduceOther(t *testing.T) {
	deduce(t, &IncompleteError{Msg: "premature end of input"}, Other)
}

func TestDeduceString(t *testing.T) {
	deduce(t, &IncompleteError{Msg: "invalid string syntax"}, String)
}

func TestDeduceStringWins(t *testing.T) {
	// The string indicator is checked first even when other indicators
	// are also present.
	deduce(t, &IncompleteError{Msg: "string then comment then ` too"}, String)
}
