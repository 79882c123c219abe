package ui

import (
	"bytes"
	"testing"
)

func styled(t *testing.T, color bool, text, name string, bold bool, expected string) {
	t.Helper()

	b := &bytes.Buffer{}

	if err := NewSink(b, color).Styled(text, name, bold); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if b.String() != expected {
		t.Fatalf("Expected %q; got %q", expected, b.String())
	}
}

func TestStyled(t *testing.T) {
	styled(t, true, "ERROR: ", "red", true, "\033[1;31mERROR: \033[0m")
	styled(t, true, "answer", "", false, "answer")
	styled(t, true, "warning", "yellow", false, "\033[33mwarning\033[0m")
	styled(t, true, "loud", "", true, "\033[1mloud\033[0m")
}

func TestStyledDegradesWithoutColor(t *testing.T) {
	styled(t, false, "ERROR: ", "red", true, "ERROR: ")
	styled(t, false, "answer", "", false, "answer")
}

func TestStyledUnknownColor(t *testing.T) {
	styled(t, true, "text", "mauve", false, "text")
}
