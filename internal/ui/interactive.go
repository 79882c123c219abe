// Released under an MIT license. See LICENSE.

package ui

import (
	"io"

	"github.com/peterh/liner"
	"github.com/rill-lang/rill/internal/system/history"
)

// Interactive is a liner-backed terminal. It prompts, records history,
// and converts Ctrl-C into ErrInterrupt.
type Interactive struct {
	cli    *liner.State
	prompt string
	closed bool
	save   bool
}

// NewInteractive creates a terminal for the controlling tty. When keep is
// true, history is loaded now and saved on Close.
func NewInteractive(keep bool) *Interactive {
	cli := liner.NewLiner()
	cli.SetCtrlCAborts(true)

	if keep {
		// A missing history file is not an error; there is nothing to
		// restore the first time rill runs.
		_ = history.Load(func(r io.Reader) (int, error) {
			return cli.ReadHistory(r)
		})
	}

	return &Interactive{cli: cli, prompt: Prompt, save: keep}
}

// AtEnd returns true once the tty has reported end of input.
func (t *Interactive) AtEnd() bool {
	return t.closed
}

// Close restores the terminal state and, when enabled, saves history.
func (t *Interactive) Close() error {
	if t.save {
		_ = history.Save(func(w io.Writer) (int, error) {
			return t.cli.WriteHistory(w)
		})
	}

	return t.cli.Close()
}

// IsOpen returns true while the tty can still produce lines.
func (t *Interactive) IsOpen() bool {
	return !t.closed
}

// ReadLine prompts for and returns the next line.
func (t *Interactive) ReadLine(keep bool) (string, error) {
	line, err := t.cli.Prompt(t.prompt)

	switch err {
	case nil:
		if line != "" {
			t.cli.AppendHistory(line)
		}
	case liner.ErrPromptAborted:
		return "", ErrInterrupt
	default:
		t.closed = true

		return "", io.EOF
	}

	if keep {
		line += "\n"
	}

	return line, nil
}

// SetPrompt changes the prompt displayed by the next ReadLine.
func (t *Interactive) SetPrompt(p string) {
	t.prompt = p
}
