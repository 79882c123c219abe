// Released under an MIT license. See LICENSE.

// Package options turns rill's command line and environment into the
// resolved mode settings the rest of the program consumes. Everything is
// decided once, in Parse; nothing downstream re-examines the process
// environment.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals
var (
	args        []string
	banner      string
	color       bool
	eval        string
	interactive bool
	keep        bool
	quiet       bool
	script      string
	startup     bool
	usage       = `rill

Usage:
  rill [options] [SCRIPT [ARGUMENTS...]]

Arguments:
  SCRIPT     Path to rill script. Read from stdin when absent.
  ARGUMENTS  Positional parameters for the script.

Options:
  -b, --banner=MODE   Banner to display: none, short, or full. [default: auto]
  -c, --color=MODE    Color output: yes, no, or auto. [default: auto]
  -e, --eval=EXPR     Evaluate EXPR before running a script or prompting.
  -i, --interactive   Enter the interactive loop even after a script.
  -n, --no-history    Do not load or save command history.
  -q, --quiet         Same as --banner=none.
  -s, --no-startup    Do not run ~/.rillrc.
  -h, --help          Display this help.
  -v, --version       Print rill version.

If rill's stdin is a TTY and no script was named, an interactive session
is started. Otherwise rill reads the program from the named script or from
stdin and exits when it is done.
`
)

// Args returns the positional parameters for the script.
func Args() []string {
	return args
}

// Banner returns the resolved banner mode: none, short, or full.
func Banner() string {
	return banner
}

// Color returns true if output should be styled.
func Color() bool {
	return color
}

// Eval returns the expression passed with --eval, if any.
func Eval() string {
	return eval
}

// History returns true if command history should be loaded and saved.
func History() bool {
	return keep
}

// Interactive returns true if an interactive session was requested.
func Interactive() bool {
	return interactive
}

// Parse processes the command line. The version string is what --version
// prints.
func Parse(version string) {
	opts, err := docopt.ParseArgs(usage, nil, version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	script, _ = opts.String("SCRIPT")
	args, _ = opts["ARGUMENTS"].([]string)

	name := script
	if name == "" {
		name = os.Args[0]
	}

	args = append([]string{name}, args...)

	eval, _ = opts.String("--eval")

	if script == "" && isatty.IsTerminal(os.Stdin.Fd()) {
		interactive = true
	}

	if forced, _ := opts.Bool("--interactive"); forced {
		interactive = true
	}

	noHistory, _ := opts.Bool("--no-history")
	keep = interactive && !noHistory

	noStartup, _ := opts.Bool("--no-startup")
	startup = !noStartup

	quiet, _ = opts.Bool("--quiet")

	switch mode, _ := opts.String("--color"); mode {
	case "yes":
		color = true
	case "no":
		color = false
	default:
		color = isatty.IsTerminal(os.Stdout.Fd())
	}

	switch mode, _ := opts.String("--banner"); mode {
	case "none", "short", "full":
		banner = mode
	default:
		if interactive && !quiet {
			banner = "full"
		} else {
			banner = "none"
		}
	}

	if quiet {
		banner = "none"
	}
}

// Quiet returns true if --quiet was given.
func Quiet() bool {
	return quiet
}

// Script returns the path of the script to run, if any.
func Script() string {
	return script
}

// Startup returns true if ~/.rillrc should be run.
func Startup() bool {
	return startup
}
