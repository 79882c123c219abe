// Released under an MIT license. See LICENSE.

// Package terminal reports the size of the controlling terminal. The
// error display uses it to bound how much of a backtrace is shown.
package terminal

// Fallback dimensions used when the terminal cannot be queried.
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

// Size returns the terminal's dimensions in character cells.
func Size() (columns, rows int) {
	return size()
}
