// Released under an MIT license. See LICENSE.

package ui

import (
	"io"
)

//nolint:gochecknoglobals
var colors = map[string]string{
	"black":   "30",
	"red":     "31",
	"green":   "32",
	"yellow":  "33",
	"blue":    "34",
	"magenta": "35",
	"cyan":    "36",
	"white":   "37",
}

// Sink writes plain and styled text to a single destination. Styling
// degrades to plain writes when color is disabled or the color name is
// unknown.
type Sink struct {
	w     io.Writer
	color bool
}

// NewSink creates a sink writing to w. Styling is applied only when
// color is true.
func NewSink(w io.Writer, color bool) *Sink {
	return &Sink{w: w, color: color}
}

// Color returns true if the sink applies styling.
func (s *Sink) Color() bool {
	return s.color
}

// Print writes plain text.
func (s *Sink) Print(text string) error {
	_, err := io.WriteString(s.w, text)

	return err
}

// Styled writes text in the named color, optionally bold.
func (s *Sink) Styled(text, color string, bold bool) error {
	code, ok := colors[color]
	if !s.color || (!ok && !bold) {
		return s.Print(text)
	}

	style := ""

	if bold {
		style = "1"
	}

	if ok {
		if style != "" {
			style += ";"
		}

		style += code
	}

	return s.Print("\033[" + style + "m" + text + "\033[0m")
}

// Write makes a sink usable anywhere a plain io.Writer is expected.
func (s *Sink) Write(p []byte) (n int, err error) {
	return s.w.Write(p)
}
