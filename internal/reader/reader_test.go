package reader

import (
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/reader/ast"
	"github.com/rill-lang/rill/internal/reader/unit"
)

func parse(t *testing.T, text string, expected unit.Kind) *unit.T {
	t.Helper()

	u := New("test", nil).Parse(text, true)
	if u.Kind() != expected {
		t.Fatalf("Parsing %q: expected kind %v; got %v (%v)",
			text, expected, u.Kind(), u.Err())
	}

	return u
}

func TestComplete(t *testing.T) {
	u := parse(t, "1 + 2\n", unit.Complete)

	prog, ok := u.Tree().(*ast.Program)
	if !ok {
		t.Fatalf("Expected a program; got %T", u.Tree())
	}

	if len(prog.Stmts) != 1 {
		t.Fatalf("Expected 1 statement; got %d", len(prog.Stmts))
	}
}

func TestEmpty(t *testing.T) {
	parse(t, "", unit.Empty)
	parse(t, "\n\n", unit.Empty)
	parse(t, "# only a comment\n", unit.Empty)
}

func TestGrowingFunction(t *testing.T) {
	// Accumulating input stays incomplete, for the reason "a block is
	// missing its end", until the terminator line arrives.
	text := "function f(x)\n"

	u := parse(t, text, unit.Incomplete)
	if r := unit.Deduce(u.Err()); r != unit.Block {
		t.Fatalf("Expected block; got %v", r)
	}

	text += "  x+1\n"

	u = parse(t, text, unit.Incomplete)
	if r := unit.Deduce(u.Err()); r != unit.Block {
		t.Fatalf("Expected block; got %v", r)
	}

	text += "end\n"

	parse(t, text, unit.Complete)
}

func TestIncompleteString(t *testing.T) {
	u := parse(t, `x = "abc`, unit.Incomplete)

	if r := unit.Deduce(u.Err()); r != unit.String {
		t.Fatalf("Expected string; got %v", r)
	}
}

func TestSyntaxError(t *testing.T) {
	u := parse(t, "1 + + 2\n", unit.Error)

	if unit.Deduce(u.Err()) != unit.None {
		t.Fatalf("A real error calls for no continuation")
	}
}

func TestTrailingFailureWins(t *testing.T) {
	// Statements before a trailing failure are discarded: the chunk
	// either parses completely or not at all.
	u := parse(t, "1 + 1\nwhile true\n", unit.Incomplete)

	if r := unit.Deduce(u.Err()); r != unit.Block {
		t.Fatalf("Expected block; got %v", r)
	}

	if u.Tree() != nil {
		t.Fatalf("An incomplete unit carries no tree")
	}
}

func TestWarning(t *testing.T) {
	warned := ""

	New("test", func(msg string) { warned = msg }).Parse("2 ** 3\n", false)

	if !strings.Contains(warned, "deprecated") {
		t.Fatalf("Expected a deprecation warning; got %q", warned)
	}
}

func TestWarningQuiet(t *testing.T) {
	warned := false

	New("test", func(string) { warned = true }).Parse("2 ** 3\n", true)

	if warned {
		t.Fatalf("A quiet parse must not warn")
	}
}
