package estack

import (
	"errors"
	"testing"

	"github.com/rill-lang/rill/internal/common/struct/frame"
	"github.com/rill-lang/rill/internal/common/struct/loc"
)

func at(line int) loc.T {
	return loc.T{Char: 1, Line: line, Name: "test"}
}

func user(call string, line int) *frame.T {
	return frame.New(call, at(line))
}

func machinery(line int) *frame.T {
	return frame.New(frame.Eval, at(line))
}

func calls(s *T) [][]string {
	traces := [][]string{}

	for _, e := range s.Entries() {
		t := []string{}
		for _, f := range e.Trace() {
			t = append(t, f.Call())
		}

		traces = append(traces, t)
	}

	return traces
}

func equal(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}

		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}

	return true
}

func TestChainOrder(t *testing.T) {
	s := New(errors.New("first"), nil)
	s.Chain(errors.New("second"), nil)

	if len(s.Entries()) != 2 {
		t.Fatalf("Expected 2 entries; got %d", len(s.Entries()))
	}

	if s.Entries()[0].Err().Error() != "first" {
		t.Fatalf("Expected the oldest cause first")
	}

	if s.Err().Error() != "second" {
		t.Fatalf("Expected the most recent exception from Err")
	}
}

func TestScrub(t *testing.T) {
	s := New(errors.New("boom"), []*frame.T{
		user("g", 3), user("f", 2), machinery(1),
	})

	s.Scrub()

	expected := [][]string{{"g", "f"}}
	if !equal(calls(s), expected) {
		t.Fatalf("Expected %v; got %v", expected, calls(s))
	}
}

func TestScrubIdempotent(t *testing.T) {
	s := New(errors.New("boom"), []*frame.T{
		user("f", 2), machinery(1),
	})

	s.Scrub()
	once := calls(s)

	s.Scrub()

	if !equal(calls(s), once) {
		t.Fatalf("Scrubbing twice changed the stack: %v then %v",
			once, calls(s))
	}
}

func TestScrubNestedMachinery(t *testing.T) {
	// A trace that crosses the evaluate boundary twice is cut at the first
	// crossing: no machinery frame survives a scrub.
	s := New(errors.New("boom"), []*frame.T{
		user("g", 3), machinery(2), user("f", 1), machinery(0),
	})

	s.Scrub()
	once := calls(s)

	expected := [][]string{{"g"}}
	if !equal(once, expected) {
		t.Fatalf("Expected %v; got %v", expected, once)
	}

	s.Scrub()

	if !equal(calls(s), once) {
		t.Fatalf("Scrubbing twice changed the stack: %v then %v",
			once, calls(s))
	}
}

func TestTrivial(t *testing.T) {
	if !New(errors.New("boom"), nil).Trivial() {
		t.Fatalf("An empty backtrace is trivial")
	}

	if !New(errors.New("boom"), []*frame.T{user("f", 1)}).Trivial() {
		t.Fatalf("A single-frame backtrace is trivial")
	}

	if New(errors.New("boom"), []*frame.T{
		user("g", 2), user("f", 1),
	}).Trivial() {
		t.Fatalf("A two-frame backtrace is not trivial")
	}

	s := New(errors.New("first"), nil)
	s.Chain(errors.New("second"), nil)

	if s.Trivial() {
		t.Fatalf("A stack with two entries is never trivial")
	}
}
