// Released under an MIT license. See LICENSE.

// Package history persists the interactive session's line history. The
// line editor owns the history format; this package only decides where
// the history file lives and hands the editor a reader or writer for it.
package history

import (
	"io"
	"os"
)

// Load opens the history file and hands it to read. A session with no
// history file starts empty; the caller treats any error the same way.
func Load(read func(r io.Reader) (int, error)) error {
	f, err := file(os.Open)
	if err != nil {
		return err
	}

	_, err = read(f)
	if err != nil {
		return err
	}

	return f.Close()
}

// Save creates (or truncates) the history file and hands it to write.
func Save(write func(w io.Writer) (int, error)) error {
	f, err := file(os.Create)
	if err != nil {
		return err
	}

	_, err = write(f)
	if err != nil {
		return err
	}

	return f.Close()
}
