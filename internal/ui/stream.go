// Released under an MIT license. See LICENSE.

package ui

import (
	"bufio"
	"io"
	"strings"
)

// Stream is a terminal backed by a file or pipe. It never prompts.
type Stream struct {
	r    *bufio.Reader
	open bool
}

// NewStream creates a terminal reading lines from r.
func NewStream(r io.Reader) *Stream {
	return &Stream{r: bufio.NewReader(r), open: true}
}

// AtEnd returns true when no more lines will be produced.
func (s *Stream) AtEnd() bool {
	if !s.open {
		return true
	}

	_, err := s.r.Peek(1)

	return err != nil
}

// IsOpen returns true until a read reaches the end of the stream.
func (s *Stream) IsOpen() bool {
	return s.open
}

// ReadLine returns the next line. The final line of a stream need not end
// with a terminator.
func (s *Stream) ReadLine(keep bool) (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		s.open = false

		if line == "" {
			return "", err
		}
	}

	if !keep {
		line = strings.TrimSuffix(line, "\n")
	}

	return line, nil
}
