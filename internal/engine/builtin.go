// Released under an MIT license. See LICENSE.

package engine

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rill-lang/rill/internal/common"
	"github.com/rill-lang/rill/internal/common/interface/cell"
	"github.com/rill-lang/rill/internal/common/type/list"
	"github.com/rill-lang/rill/internal/common/type/nothing"
	"github.com/rill-lang/rill/internal/common/type/num"
	"github.com/rill-lang/rill/internal/common/type/pair"
	"github.com/rill-lang/rill/internal/common/type/str"
	"github.com/rill-lang/rill/internal/common/type/sym"
	"github.com/rill-lang/rill/internal/reader/ast"
)

// builtin is a function provided by the engine itself.
type builtin struct {
	name string
	do   func(e *engine, t *ast.Call, args []cell.I) cell.I
}

// Equal returns true if c is this builtin. Builtins compare by identity.
func (b *builtin) Equal(c cell.I) bool {
	return cell.I(b) == c
}

// Name returns the type name for a builtin.
func (b *builtin) Name() string {
	return "builtin"
}

// String returns the display representation of the builtin b.
func (b *builtin) String() string {
	return b.name + " (builtin)"
}

//nolint:gochecknoglobals
var table = []*builtin{
	{name: "cons", do: func(e *engine, t *ast.Call, args []cell.I) cell.I {
		e.expect(t, args, 2)

		return pair.Cons(args[0], args[1])
	}},
	{name: "error", do: func(e *engine, t *ast.Call, args []cell.I) cell.I {
		if len(args) == 0 {
			e.throw(t.Source(), "error expects at least 1 argument")
		}

		e.throw(t.Source(), "%s", text(args))

		return nil
	}},
	{name: "first", do: func(e *engine, t *ast.Call, args []cell.I) cell.I {
		e.expect(t, args, 1)

		return pair.Car(e.nonempty(t, args[0]))
	}},
	{name: "length", do: func(e *engine, t *ast.Call, args []cell.I) cell.I {
		e.expect(t, args, 1)

		c := args[0]

		switch {
		case str.Is(c):
			return num.Int(utf8.RuneCountInString(str.To(c).String()))
		case pair.Is(c):
			return num.Int(list.Length(c))
		}

		e.throw(t.Source(), "%s has no length", c.Name())

		return nil
	}},
	{name: "print", do: func(e *engine, t *ast.Call, args []cell.I) cell.I {
		e.emit(t, text(args))

		return nothing.Value
	}},
	{name: "println", do: func(e *engine, t *ast.Call, args []cell.I) cell.I {
		e.emit(t, text(args)+"\n")

		return nothing.Value
	}},
	{name: "rest", do: func(e *engine, t *ast.Call, args []cell.I) cell.I {
		e.expect(t, args, 1)

		return pair.Cdr(e.nonempty(t, args[0]))
	}},
	{name: "string", do: func(e *engine, t *ast.Call, args []cell.I) cell.I {
		return str.New(text(args))
	}},
	{name: "typeof", do: func(e *engine, t *ast.Call, args []cell.I) cell.I {
		e.expect(t, args, 1)

		return sym.New(args[0].Name())
	}},
}

// emit writes s to the engine's output. A write failure is raised as a
// rill-level error.
func (e *engine) emit(t *ast.Call, s string) {
	if _, err := io.WriteString(e.out, s); err != nil {
		e.throw(t.Source(), "%s: %v", t.Name, err)
	}
}

// expect raises unless exactly n arguments were passed.
func (e *engine) expect(t *ast.Call, args []cell.I, n int) {
	if len(args) != n {
		e.throw(t.Source(), "%s expects %d argument(s), got %d",
			t.Name, n, len(args))
	}
}

// nonempty raises unless c is a non-empty list.
func (e *engine) nonempty(t *ast.Call, c cell.I) cell.I {
	if !pair.Is(c) || c == pair.Null {
		e.throw(t.Source(), "%s expects a non-empty list", t.Name)
	}

	return c
}

// text renders args for display, with no separator between them.
func text(args []cell.I) string {
	b := strings.Builder{}

	for _, c := range args {
		b.WriteString(common.String(c))
	}

	return b.String()
}
