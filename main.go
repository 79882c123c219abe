/*
Rill is an interactive front end for the rill language: a read-eval-print
loop for humans at a terminal and a batch runner for scripts and pipes.

    rill                      # interactive session
    rill hello.rl one two     # run a script with arguments
    echo "println(6*7)" | rill
    rill -e "1+1"

For more detail, see: https://github.com/rill-lang/rill

Rill is released under an MIT-style license.
*/
package main

import (
	"io"
	"os"
	"path"

	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/type/list"
	"github.com/rill-lang/rill/internal/common/type/str"
	"github.com/rill-lang/rill/internal/engine"
	"github.com/rill-lang/rill/internal/repl"
	"github.com/rill-lang/rill/internal/system/options"
	"github.com/rill-lang/rill/internal/ui"
)

const version = "0.2.0"

const logo = `        _ _ _
  _ __ (_) | |   version ` + version + `
 | '__|| | | |
 | |   | | | |   https://github.com/rill-lang/rill
 |_|   |_|_|_|
`

func main() {
	os.Exit(run())
}

func run() int {
	options.Parse(version)

	out := ui.NewSink(os.Stdout, options.Color())
	diag := ui.NewSink(os.Stderr, options.Color())

	e := engine.New(out)

	args := make([]cell.I, 0, len(options.Args()))
	for _, a := range options.Args() {
		args = append(args, str.New(a))
	}

	e.Define("args", list.New(args...))

	s := repl.New(e, out, diag, options.Interactive())

	banner(out)
	startup(s)

	failed := false

	if expr := options.Eval(); expr != "" {
		if s.Bulk(expr, "(command)") {
			failed = true
		}
	}

	switch script := options.Script(); {
	case script != "":
		text, err := os.ReadFile(script)
		if err != nil {
			_ = diag.Print("rill: " + err.Error() + "\n")

			return 1
		}

		if s.Bulk(string(text), script) {
			failed = true
		}
	case !options.Interactive() && options.Eval() == "":
		// No script and no terminal: the program comes from stdin.
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			_ = diag.Print("rill: " + err.Error() + "\n")

			return 1
		}

		if s.Bulk(string(text), "(stdin)") {
			failed = true
		}
	}

	if options.Interactive() {
		t := ui.NewInteractive(options.History())
		defer t.Close()

		s.Run(t, "(repl)")

		return 0
	}

	if failed {
		return 1
	}

	return 0
}

func banner(out *ui.Sink) {
	switch options.Banner() {
	case "short":
		_ = out.Print("rill " + version + "\n")
	case "full":
		_ = out.Styled(logo, "cyan", false)
	}
}

// startup runs ~/.rillrc, when present, before anything else.
func startup(s *repl.Session) {
	if !options.Startup() {
		return
	}

	rc := path.Join(os.Getenv("HOME"), ".rillrc")

	text, err := os.ReadFile(rc)
	if err != nil {
		return
	}

	s.Bulk(string(text), rc)
}
