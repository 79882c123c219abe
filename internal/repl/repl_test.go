package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/common/interface/literal"
	"github.com/rill-lang/rill/internal/engine"
	"github.com/rill-lang/rill/internal/reader"
	"github.com/rill-lang/rill/internal/ui"
)

type harness struct {
	session *Session
	out     *bytes.Buffer
	diag    *bytes.Buffer
	t       *testing.T
}

func setup(t *testing.T, interactive bool) *harness {
	t.Helper()

	out := &bytes.Buffer{}
	diag := &bytes.Buffer{}

	e := engine.New(out)

	return &harness{
		session: New(e, ui.NewSink(out, false), ui.NewSink(diag, false), interactive),
		out:     out,
		diag:    diag,
		t:       t,
	}
}

func (h *harness) last(expected string) {
	h.t.Helper()

	if actual := literal.String(h.session.Last()); actual != expected {
		h.t.Fatalf("Expected last value %s; got %s", expected, actual)
	}
}

// failing is a writer that refuses every write, for exercising the
// reporting-loop bound and the display-failure path.
type failing struct {
	writes int
}

func (w *failing) Write(p []byte) (int, error) {
	w.writes++

	return 0, errors.New("broken pipe")
}

// script is a scripted terminal: a fixed sequence of lines and read
// failures.
type script struct {
	lines []string
	errs  []error
}

func (s *script) AtEnd() bool {
	return len(s.lines) == 0
}

func (s *script) IsOpen() bool {
	return len(s.lines) > 0
}

func (s *script) ReadLine(keep bool) (string, error) {
	line, err := s.lines[0], s.errs[0]
	s.lines, s.errs = s.lines[1:], s.errs[1:]

	if !keep {
		line = strings.TrimSuffix(line, "\n")
	}

	return line, err
}

func TestBulkEmpty(t *testing.T) {
	h := setup(t, false)

	if h.session.Bulk("", "test") {
		t.Fatalf("Empty input is a no-op, not a failure")
	}

	if h.out.Len() != 0 || h.diag.Len() != 0 {
		t.Fatalf("Empty input must display nothing")
	}
}

func TestBulkScript(t *testing.T) {
	h := setup(t, false)

	// The failing statement is reported; the statements around it still
	// run; the run as a whole is a failure.
	if !h.session.Bulk("1+1\nundefinedVar\n3+3", "test") {
		t.Fatalf("A script with a failing statement fails")
	}

	h.last("6")

	if !strings.Contains(h.diag.String(), "ERROR: ") ||
		!strings.Contains(h.diag.String(), "undefined variable") {
		t.Fatalf("Expected the failure to be reported; got %q", h.diag.String())
	}

	if h.out.Len() != 0 {
		t.Fatalf("Bulk mode displays no results; got %q", h.out.String())
	}

	// A top-level failure is trivial and is never published.
	if h.session.Failure() != nil {
		t.Fatalf("Expected no published failure")
	}
}

func TestBulkSyntaxError(t *testing.T) {
	h := setup(t, false)

	if !h.session.Bulk("1 + + 2\n", "test") {
		t.Fatalf("A syntax error fails the run")
	}

	if !strings.Contains(h.diag.String(), "ERROR: syntax") {
		t.Fatalf("Expected a syntax error report; got %q", h.diag.String())
	}
}

func TestConvenienceBindings(t *testing.T) {
	h := setup(t, false)

	h.session.Bulk("1+1\n", "test")
	h.session.Bulk("ans + 40\n", "test")
	h.last("42")

	h.session.Bulk("function f()\n  error(\"boom\")\nend\nf()\n", "test")

	failure := h.session.Failure()
	if failure == nil {
		t.Fatalf("Expected a published failure")
	}

	if failure.Err().Error() != "boom" {
		t.Fatalf("Expected boom; got %q", failure.Err().Error())
	}

	// The published failure is also bound for programs to inspect.
	h.session.Bulk("string(err)\n", "test")
	h.last("\"boom\"")
}

func TestDisplayFailure(t *testing.T) {
	broken := &failing{}
	diag := &bytes.Buffer{}

	e := engine.New(broken)
	s := New(e, ui.NewSink(broken, false), ui.NewSink(diag, false), false)

	u := reader.New("test", nil).Parse("1+1\n", false)

	if !s.Dispatch(u, true) {
		t.Fatalf("An undisplayable result is a failure")
	}

	// The value computed; only its display failed. Both facts are visible.
	if actual := literal.String(s.Last()); actual != "2" {
		t.Fatalf("Expected the value to be bound; got %s", actual)
	}

	if !strings.Contains(diag.String(),
		"evaluation succeeded but the result could not be displayed") {
		t.Fatalf("Expected a display-failure diagnostic; got %q", diag.String())
	}
}

func TestInterrupt(t *testing.T) {
	h := setup(t, false)

	// An interrupt abandons the accumulated "begin" but not the loop.
	h.session.Run(&script{
		lines: []string{"begin\n", "", "42\n"},
		errs:  []error{nil, ui.ErrInterrupt, nil},
	}, "test")

	h.last("42")
}

func TestReportingLoopBound(t *testing.T) {
	broken := &failing{}
	out := &bytes.Buffer{}

	e := engine.New(out)
	s := New(e, ui.NewSink(out, false), ui.NewSink(broken, false), false)

	// Every attempt to report the failure fails too. The driver must give
	// up after the bound instead of hanging.
	if !s.Bulk("undefinedVar\n", "test") {
		t.Fatalf("Expected a failure")
	}

	if broken.writes < s.Attempts {
		t.Fatalf("Expected %d report attempts; got %d", s.Attempts, broken.writes)
	}

	// The session is still usable afterwards.
	s.Bulk("1+1\n", "test")

	if actual := literal.String(s.Last()); actual != "2" {
		t.Fatalf("Expected the session to accept new input; got %s", actual)
	}
}

func TestStreamingDisplaysWhenInteractive(t *testing.T) {
	h := setup(t, true)

	h.session.Run(ui.NewStream(strings.NewReader("1+1\n")), "test")

	// The result, then the trailing newline that keeps sessions readable.
	if h.out.String() != "2\n\n" {
		t.Fatalf("Expected %q; got %q", "2\n\n", h.out.String())
	}
}

func TestStreamingMatchesBulk(t *testing.T) {
	for _, text := range []string{
		"x = 2\nx * 3\n",
		"function f(a)\n  a+1\nend\nf(41)\n",
		"begin\n  1\n  2\nend\n",
	} {
		bulk := setup(t, false)
		bulk.session.Bulk(text, "test")

		streaming := setup(t, false)
		streaming.session.Run(ui.NewStream(strings.NewReader(text)), "test")

		b := literal.String(bulk.session.Last())
		l := literal.String(streaming.session.Last())

		if b != l {
			t.Fatalf("For %q: bulk %s but streaming %s", text, b, l)
		}
	}
}

func TestStreamingContinuation(t *testing.T) {
	// Each open construct the classifier recognizes keeps accumulation
	// going until the construct closes; the chunk then evaluates whole.
	for _, c := range []struct {
		text, last string
	}{
		{"\"one\ntwo\"\n", "\"one\\ntwo\""},
		{"#= a note\nspanning lines =# 42\n", "42"},
		{"if true\n  1\nelse\n  2\nend\n", "1"},
	} {
		h := setup(t, false)

		h.session.Run(ui.NewStream(strings.NewReader(c.text)), "test")

		if h.diag.Len() != 0 {
			t.Fatalf("For %q: unexpected diagnostics %q", c.text, h.diag.String())
		}

		h.last(c.last)
	}
}

func TestStreamingMidChunkEnd(t *testing.T) {
	h := setup(t, false)

	// The stream ends while a block is still open. The incomplete chunk
	// is reported rather than silently dropped.
	h.session.Run(ui.NewStream(strings.NewReader("function f(x)\n  x+1\n")), "test")

	if !strings.Contains(h.diag.String(), "requires end") {
		t.Fatalf("Expected an incomplete-input report; got %q", h.diag.String())
	}
}
