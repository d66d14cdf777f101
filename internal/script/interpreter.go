// Package script is the small command language spoken by the pilas
// console. Each line is a command followed by shell-style words. A repeat
// or if line ending in ':' opens an indented block that a blank line
// closes.
//
//	>>> add monkey m 10 5
//	>>> repeat 3:
//	...     move m 1 0
//	...
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pilas/internal/console"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

const (
	// maxRepeat bounds a single repeat block or step count.
	maxRepeat = 10000

	// maxWork bounds the commands and steps of one Run, nesting included.
	maxWork = 100000
)

// Interpreter runs commands against a world. It implements
// console.Evaluator and console.Resetter.
type Interpreter struct {
	world   *world.World
	pending []string
	spent   int
}

// New creates an interpreter bound to w.
func New(w *world.World) *Interpreter {
	return &Interpreter{world: w}
}

// Push buffers line and runs the buffered statement once it is complete.
func (in *Interpreter) Push(line string) console.Result {
	in.pending = append(in.pending, line)
	src := strings.Join(in.pending, "\n")
	if Incomplete(src) {
		return console.Result{Incomplete: true}
	}
	in.pending = nil

	out, err := in.Run(src)
	if err != nil {
		if out != "" {
			out += "\n"
		}
		out += "error: " + err.Error()
	}
	if out == "" {
		return console.Result{}
	}
	return console.Output(out)
}

// Reset drops any buffered lines.
func (in *Interpreter) Reset() {
	in.pending = nil
}

// Pending returns the number of buffered lines.
func (in *Interpreter) Pending() int {
	return len(in.pending)
}

// Run executes a whole program and returns its output. Execution stops at
// the first failing command.
func (in *Interpreter) Run(src string) (string, error) {
	stmts, err := parse(src)
	if err != nil {
		return "", err
	}

	in.spent = 0
	var out output
	err = in.exec(stmts, &out)
	return out.String(), err
}

func (in *Interpreter) exec(stmts []statement, out *output) error {
	for _, st := range stmts {
		if err := in.execOne(st, out); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execOne(st statement, out *output) error {
	if len(st.words) == 0 {
		return nil
	}
	name, args := st.words[0], st.words[1:]
	if err := in.spend(1); err != nil {
		return err
	}

	if st.block {
		return in.execBlock(st, name, args, out)
	}

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (try help)", name)
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return fmt.Errorf("usage: %s", cmd.usage)
	}
	if err := cmd.run(in, args, out); err != nil {
		return cleanError(err)
	}
	return nil
}

// spend charges n units of work to the current Run.
func (in *Interpreter) spend(n int) error {
	if in.spent+n > maxWork {
		return fmt.Errorf("too much work in one run (limit %d commands and steps)", maxWork)
	}
	in.spent += n
	return nil
}

func (in *Interpreter) execBlock(st statement, name string, args []string, out *output) error {
	switch name {
	case "repeat":
		if len(args) != 1 {
			return errors.New("usage: repeat <n>:")
		}
		n, err := intArg(args[0])
		if err != nil {
			return err
		}
		if n < 0 || n > maxRepeat {
			return fmt.Errorf("repeat count must be between 0 and %d", maxRepeat)
		}
		for range n {
			if err := in.exec(st.body, out); err != nil {
				return err
			}
		}
		return nil
	case "if":
		ok, err := in.condition(args)
		if err != nil {
			return err
		}
		if ok {
			return in.exec(st.body, out)
		}
		return nil
	default:
		return fmt.Errorf("%q does not open a block", name)
	}
}

// condition evaluates the header of an if block.
func (in *Interpreter) condition(args []string) (bool, error) {
	if len(args) == 0 {
		return false, errors.New("usage: if <condition>:")
	}
	negate := false
	if args[0] == "not" {
		negate = true
		args = args[1:]
	}
	var result bool
	switch {
	case len(args) == 3 && args[0] == "touching":
		ok, err := in.world.Touching(args[1], args[2])
		if err != nil {
			return false, cleanError(err)
		}
		result = ok
	case len(args) == 2 && args[0] == "pressed":
		ok, err := controlFlag(in.world, args[1])
		if err != nil {
			return false, err
		}
		result = ok
	case len(args) == 2 && args[0] == "exists":
		_, err := in.world.Actor(args[1])
		result = err == nil
	default:
		return false, errors.New("conditions: touching <a> <b>, pressed <key>, exists <name>")
	}
	return result != negate, nil
}

// Keywords returns the words the console highlights.
func Keywords() []string {
	words := []string{"repeat", "if", "not", "touching", "pressed", "exists"}
	for name := range commands {
		words = append(words, name)
	}
	return words
}

// cleanError drops the package prefix from world errors.
func cleanError(err error) error {
	msg := err.Error()
	if trimmed, ok := strings.CutPrefix(msg, "world: "); ok {
		return errors.New(trimmed)
	}
	return err
}

// output collects command output lines.
type output struct {
	lines []string
}

func (o *output) printf(format string, args ...any) {
	o.lines = append(o.lines, fmt.Sprintf(format, args...))
}

func (o *output) println(s string) {
	o.lines = append(o.lines, s)
}

func (o *output) String() string {
	return strings.Join(o.lines, "\n")
}

var _ console.Evaluator = (*Interpreter)(nil)
var _ console.Resetter = (*Interpreter)(nil)
