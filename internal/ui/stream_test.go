package ui

import (
	"strings"
	"testing"
)

func TestStream(t *testing.T) {
	s := NewStream(strings.NewReader("one\ntwo\n"))

	if !s.IsOpen() || s.AtEnd() {
		t.Fatalf("A fresh stream is open and not at its end")
	}

	line, err := s.ReadLine(true)
	if err != nil || line != "one\n" {
		t.Fatalf("Expected %q; got %q (%v)", "one\n", line, err)
	}

	line, err = s.ReadLine(false)
	if err != nil || line != "two" {
		t.Fatalf("Expected %q; got %q (%v)", "two", line, err)
	}

	if !s.AtEnd() {
		t.Fatalf("Expected the stream to be at its end")
	}
}

func TestStreamFinalLineWithoutTerminator(t *testing.T) {
	s := NewStream(strings.NewReader("1+1"))

	line, err := s.ReadLine(true)
	if err != nil || line != "1+1" {
		t.Fatalf("Expected the final line; got %q (%v)", line, err)
	}

	if s.IsOpen() {
		t.Fatalf("Expected the stream to be closed")
	}

	if _, err := s.ReadLine(true); err == nil {
		t.Fatalf("Expected an error reading past the end")
	}
}
