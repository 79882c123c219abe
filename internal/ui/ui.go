// Released under an MIT license. See LICENSE.

// Package ui provides rill's terminal interfaces: line sources for the
// control loop and the styled output sink.
package ui

import (
	"errors"
)

// Prompts used by the interactive terminal.
const (
	Prompt   = "rill> "
	Continue = "....> "
)

// ErrInterrupt is returned by ReadLine when the pending read is aborted
// by the user. It cancels the current accumulation, never the session.
var ErrInterrupt = errors.New("interrupt")

// Terminal is the interface for line sources that drive the control loop.
// File-backed and terminal-backed sources behave identically except that
// only a terminal prompts.
type Terminal interface {
	// IsOpen returns true while the source can still produce lines.
	IsOpen() bool

	// AtEnd returns true when no more lines will be produced.
	AtEnd() bool

	// ReadLine returns the next line. The line's terminator is kept only
	// when keep is true.
	ReadLine(keep bool) (string, error)
}

// Prompter is implemented by terminals that display a prompt.
type Prompter interface {
	SetPrompt(p string)
}
