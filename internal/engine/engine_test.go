package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/interface/literal"
	"github.com/rill-lang/rill/internal/common/struct/frame"
	"github.com/rill-lang/rill/internal/engine/estack"
	"github.com/rill-lang/rill/internal/reader"
)

type harness struct {
	engine *T
	out    *bytes.Buffer
	t      *testing.T
}

func setup(t *testing.T) *harness {
	t.Helper()

	out := &bytes.Buffer{}

	return &harness{engine: New(out), out: out, t: t}
}

func (h *harness) eval(text string) (cell.I, *estack.T) {
	h.t.Helper()

	u := reader.New("test", nil).Parse(text, true)
	if u.Tree() == nil {
		h.t.Fatalf("Parsing %q did not produce a tree (%v)", text, u.Err())
	}

	return h.engine.Evaluate(u.Tree())
}

func (h *harness) value(text, expected string) {
	h.t.Helper()

	v, failure := h.eval(text)
	if failure != nil {
		h.t.Fatalf("Evaluating %q failed: %v", text, failure.Err())
	}

	if actual := literal.String(v); actual != expected {
		h.t.Fatalf("Evaluating %q: expected %s; got %s", text, expected, actual)
	}
}

func (h *harness) failure(text, fragment string) *estack.T {
	h.t.Helper()

	_, failure := h.eval(text)
	if failure == nil {
		h.t.Fatalf("Expected evaluating %q to fail", text)
	}

	if !strings.Contains(failure.Err().Error(), fragment) {
		h.t.Fatalf("Expected %q in failure %q",
			fragment, failure.Err().Error())
	}

	return failure
}

func TestArithmetic(t *testing.T) {
	h := setup(t)

	h.value("1 + 2*3\n", "7")
	h.value("(1+2)*3\n", "9")
	h.value("7/2\n", "7/2")
	h.value("10 % 3\n", "1")
	h.value("2^10\n", "1024")
	h.value("2^-1\n", "1/2")
	h.value("-5 + 2\n", "-3")
}

func TestBacktraceShape(t *testing.T) {
	h := setup(t)

	failure := h.failure("function f()\n  error(\"boom\")\nend\nf()\n", "boom")

	trace := failure.Entries()[0].Trace()

	// Innermost call first; the evaluator's own frame last.
	calls := []string{}
	for _, f := range trace {
		calls = append(calls, f.Call())
	}

	if len(calls) != 3 || calls[0] != "error" || calls[1] != "f" ||
		calls[2] != frame.Eval {
		t.Fatalf("Unexpected backtrace %v", calls)
	}

	failure.Scrub()

	if failure.Trivial() {
		t.Fatalf("A failure inside a call is not trivial")
	}
}

func TestBooleans(t *testing.T) {
	h := setup(t)

	h.value("1 < 2\n", "true")
	h.value("1 >= 2\n", "false")
	h.value("!false\n", "true")
	h.value("1 == 1 && 2 != 3\n", "true")
	h.value("1 < 2 || error(\"unreached\")\n", "true")
}

func TestCommandLiteral(t *testing.T) {
	setup(t).failure("`ls -la`\n", "external command execution")
}

func TestConditionals(t *testing.T) {
	h := setup(t)

	h.value("if 1 < 2\n  :less\nelseif 1 == 2\n  :equal\nelse\n  :more\nend\n",
		":less")
	h.value("if 1 > 2\n  :less\nelseif 1 == 1\n  :equal\nelse\n  :more\nend\n",
		":equal")
	h.value("if false\n  1\nend\n", "nothing")
}

func TestDivisionByZero(t *testing.T) {
	setup(t).failure("1/0\n", "division by zero")
}

func TestFunctions(t *testing.T) {
	h := setup(t)

	h.value("function add(a, b)\n  return a + b\nend\nadd(2, 3)\n", "5")
	h.value("function fact(n)\n  if n <= 1\n    return 1\n  end\n"+
		"  n * fact(n - 1)\nend\nfact(10)\n", "3628800")
}

func TestFunctionArity(t *testing.T) {
	setup(t).failure("function f(x)\n  x\nend\nf(1, 2)\n", "expects 1")
}

func TestLists(t *testing.T) {
	h := setup(t)

	h.value("[1, 2+3]\n", "[1, 5]")
	h.value("first([1, 2])\n", "1")
	h.value("rest([1, 2])\n", "[2]")
	h.value("cons(1, [2, 3])\n", "[1, 2, 3]")
	h.value("length([1, 2, 3])\n", "3")
	h.value("length(\"héllo\")\n", "5")
}

func TestPrintln(t *testing.T) {
	h := setup(t)

	h.value("println(\"6*7=\", 6*7)\n", "nothing")

	if h.out.String() != "6*7=42\n" {
		t.Fatalf("Expected output %q; got %q", "6*7=42\n", h.out.String())
	}
}

func TestRunawayRecursion(t *testing.T) {
	setup(t).failure("function f(x)\n  f(x)\nend\nf(1)\n",
		"call stack exhausted")
}

func TestScopes(t *testing.T) {
	h := setup(t)

	h.value("x = 3\nx + 1\n", "4")
	h.value("i = 0\nwhile i < 5\n  i = i + 1\nend\ni\n", "5")
	h.value("function counter()\n  n = 0\n"+
		"  function tick()\n    n = n + 1\n    n\n  end\n  tick\nend\n"+
		"c = counter()\nc()\nc()\n", "2")
}

func TestStrings(t *testing.T) {
	h := setup(t)

	h.value("\"a\" * \"b\"\n", "\"ab\"")
	h.value("\"abc\" < \"abd\"\n", "true")
	h.value("string(\"n = \", 42)\n", "\"n = 42\"")
	h.value("typeof(1)\n", ":number")
	h.value("typeof(\"s\")\n", ":string")
}

func TestTopLevelFailureIsTrivial(t *testing.T) {
	failure := setup(t).failure("boom\n", "undefined variable")

	failure.Scrub()

	if !failure.Trivial() {
		t.Fatalf("A top-level failure carries no call-site context")
	}
}

func TestTryCatch(t *testing.T) {
	h := setup(t)

	h.value("try\n  error(\"boom\")\ncatch e\n  string(e)\nend\n",
		"\"boom\"")
	h.value("try\n  1 + 1\ncatch e\n  :unreached\nend\n", "2")
}

func TestTryCatchChains(t *testing.T) {
	h := setup(t)

	failure := h.failure(
		"try\n  error(\"first\")\ncatch e\n  error(\"second\")\nend\n",
		"second")

	entries := failure.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries; got %d", len(entries))
	}

	if entries[0].Err().Error() != "first" {
		t.Fatalf("Expected the oldest cause first; got %q",
			entries[0].Err().Error())
	}
}
