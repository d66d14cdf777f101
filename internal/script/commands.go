package script

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-pilas/internal/core"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

type command struct {
	usage   string
	summary string
	minArgs int
	maxArgs int // -1 for unbounded
	run     func(in *Interpreter, args []string, out *output) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help": {
			usage: "help [command]", summary: "list commands or show one",
			maxArgs: 1, run: cmdHelp,
		},
		"version": {
			usage: "version", summary: "show the pilas version",
			run: func(_ *Interpreter, _ []string, out *output) error {
				out.println(core.Version)
				return nil
			},
		},
		"actors": {
			usage: "actors", summary: "list the actors in the world",
			run: cmdActors,
		},
		"kinds": {
			usage: "kinds", summary: "list the actor kinds",
			run: func(_ *Interpreter, _ []string, out *output) error {
				out.println(strings.Join(world.KindNames(), " "))
				return nil
			},
		},
		"skills": {
			usage: "skills [name]", summary: "list skills, or the skills an actor learned",
			maxArgs: 1, run: cmdSkills,
		},
		"add": {
			usage: "add <kind> [name] [x y]", summary: "create an actor",
			minArgs: 1, maxArgs: 4, run: cmdAdd,
		},
		"text": {
			usage: "text <name> <text> [x y]", summary: "create a text actor",
			minArgs: 2, maxArgs: 4, run: cmdText,
		},
		"move": {
			usage: "move <name> <dx> <dy>", summary: "move an actor by an offset",
			minArgs: 3, maxArgs: 3, run: cmdMove,
		},
		"goto": {
			usage: "goto <name> <x> <y>", summary: "place an actor",
			minArgs: 3, maxArgs: 3, run: cmdGoto,
		},
		"speed": {
			usage: "speed <name> <vx> <vy>", summary: "set an actor's velocity in cells per second",
			minArgs: 3, maxArgs: 3, run: cmdSpeed,
		},
		"color": {
			usage: "color <name> <colour>", summary: "paint an actor",
			minArgs: 2, maxArgs: 2, run: cmdColor,
		},
		"remove": {
			usage: "remove <name>", summary: "delete an actor",
			minArgs: 1, maxArgs: 1, run: func(in *Interpreter, args []string, _ *output) error {
				return in.world.Remove(args[0])
			},
		},
		"skill": {
			usage: "skill <name> <skill>", summary: "teach an actor a skill",
			minArgs: 2, maxArgs: 2, run: cmdSkill,
		},
		"forget": {
			usage: "forget <name> <skill>", summary: "make an actor forget a skill",
			minArgs: 2, maxArgs: 2, run: cmdForget,
		},
		"background": {
			usage: "background <colour>", summary: "switch to a plain scene of that colour",
			minArgs: 1, maxArgs: 1, run: cmdBackground,
		},
		"notify": {
			usage: "notify <text...>", summary: "show a notice at the bottom of the window",
			maxArgs: -1, run: func(in *Interpreter, args []string, _ *output) error {
				in.world.Notify(strings.Join(args, " "))
				return nil
			},
		},
		"control": {
			usage: "control [left|right|up|down|button]", summary: "show the keyboard control state",
			maxArgs: 1, run: func(in *Interpreter, args []string, out *output) error {
				if len(args) == 0 {
					out.println(in.world.Control().String())
					return nil
				}
				ok, err := controlFlag(in.world, args[0])
				if err != nil {
					return err
				}
				out.println(strconv.FormatBool(ok))
				return nil
			},
		},
		"touching": {
			usage: "touching <a> <b>", summary: "tell whether two actors overlap",
			minArgs: 2, maxArgs: 2, run: func(in *Interpreter, args []string, out *output) error {
				ok, err := in.world.Touching(args[0], args[1])
				if err != nil {
					return err
				}
				out.println(strconv.FormatBool(ok))
				return nil
			},
		},
		"step": {
			usage: "step [n]", summary: "advance the world n ticks",
			maxArgs: 1, run: cmdStep,
		},
		"reset": {
			usage: "reset", summary: "remove every actor and restore the initial scene",
			run: func(in *Interpreter, _ []string, _ *output) error {
				in.world.Reset()
				return nil
			},
		},
		"print": {
			usage: "print <text...>", summary: "echo text",
			maxArgs: -1, run: func(_ *Interpreter, args []string, out *output) error {
				out.println(strings.Join(args, " "))
				return nil
			},
		},
		"quit": {
			usage: "quit", summary: "close the window",
			run: func(in *Interpreter, _ []string, _ *output) error {
				in.world.Quit()
				return nil
			},
		},
	}
}

func cmdHelp(_ *Interpreter, args []string, out *output) error {
	if len(args) == 1 {
		cmd, ok := commands[args[0]]
		if !ok {
			return fmt.Errorf("unknown command %q", args[0])
		}
		out.printf("%s: %s", cmd.usage, cmd.summary)
		return nil
	}

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out.printf("%-26s %s", commands[name].usage, commands[name].summary)
	}
	out.printf("%-26s %s", "repeat <n>:", "run the indented block n times")
	out.printf("%-26s %s", "if [not] <condition>:", "run the block when touching/pressed/exists holds")
	return nil
}

func cmdActors(in *Interpreter, _ []string, out *output) error {
	actors := in.world.Actors()
	if len(actors) == 0 {
		out.println("no actors")
		return nil
	}
	for _, a := range actors {
		line := a.String()
		if s := a.Skills(); len(s) > 0 {
			line += " [" + strings.Join(s, ", ") + "]"
		}
		out.println(line)
	}
	return nil
}

func cmdSkills(in *Interpreter, args []string, out *output) error {
	if len(args) == 0 {
		out.println(strings.Join(world.SkillNames(), " "))
		return nil
	}
	a, err := in.world.Actor(args[0])
	if err != nil {
		return err
	}
	if s := a.Skills(); len(s) > 0 {
		out.println(strings.Join(s, " "))
	} else {
		out.println("no skills")
	}
	return nil
}

func cmdAdd(in *Interpreter, args []string, out *output) error {
	kind := args[0]
	rest := args[1:]
	name := ""
	if len(rest) == 1 || len(rest) == 3 {
		name, rest = rest[0], rest[1:]
	}

	x, y := in.world.Width()/2, in.world.Height()/2
	if len(rest) == 2 {
		var err error
		if x, y, err = pointArgs(rest[0], rest[1]); err != nil {
			return err
		}
	}

	a, err := in.world.Add(kind, name, x, y)
	if err != nil {
		return err
	}
	if name == "" {
		out.printf("added %s", a.Name)
	}
	return nil
}

func cmdText(in *Interpreter, args []string, _ *output) error {
	if len(args) == 3 {
		return fmt.Errorf("usage: %s", commands["text"].usage)
	}
	x, y := 0, 0
	if len(args) == 4 {
		var err error
		if x, y, err = pointArgs(args[2], args[3]); err != nil {
			return err
		}
	}
	_, err := in.world.AddText(args[0], args[1], x, y)
	return err
}

func cmdMove(in *Interpreter, args []string, _ *output) error {
	a, err := in.world.Actor(args[0])
	if err != nil {
		return err
	}
	dx, dy, err := pointArgs(args[1], args[2])
	if err != nil {
		return err
	}
	x, y := a.Position()
	return place(in.world, a, x+dx, y+dy)
}

func cmdGoto(in *Interpreter, args []string, _ *output) error {
	a, err := in.world.Actor(args[0])
	if err != nil {
		return err
	}
	x, y, err := pointArgs(args[1], args[2])
	if err != nil {
		return err
	}
	return place(in.world, a, x, y)
}

func place(w *world.World, a *world.Actor, x, y int) error {
	b := a.Bounds()
	a.X = float64(core.Clamp(x, 0, max(0, w.Width()-b.W)))
	a.Y = float64(core.Clamp(y, 0, max(0, w.Height()-1)))
	return nil
}

func cmdSpeed(in *Interpreter, args []string, _ *output) error {
	a, err := in.world.Actor(args[0])
	if err != nil {
		return err
	}
	vx, err := floatArg(args[1])
	if err != nil {
		return err
	}
	vy, err := floatArg(args[2])
	if err != nil {
		return err
	}
	a.VX, a.VY = vx, vy
	return nil
}

func cmdColor(in *Interpreter, args []string, _ *output) error {
	a, err := in.world.Actor(args[0])
	if err != nil {
		return err
	}
	c, err := colorArg(args[1])
	if err != nil {
		return err
	}
	a.Color = c
	return nil
}

func cmdSkill(in *Interpreter, args []string, _ *output) error {
	a, err := in.world.Actor(args[0])
	if err != nil {
		return err
	}
	s, err := world.NewSkill(args[1])
	if err != nil {
		return err
	}
	a.Learn(s)
	return nil
}

func cmdForget(in *Interpreter, args []string, _ *output) error {
	a, err := in.world.Actor(args[0])
	if err != nil {
		return err
	}
	if !a.Forget(args[1]) {
		return fmt.Errorf("%s does not know %q", a.Name, args[1])
	}
	return nil
}

func cmdBackground(in *Interpreter, args []string, _ *output) error {
	c, err := colorArg(args[0])
	if err != nil {
		return err
	}
	in.world.SetScene(world.Normal(c))
	return nil
}

func cmdStep(in *Interpreter, args []string, _ *output) error {
	n := 1
	if len(args) == 1 {
		var err error
		if n, err = intArg(args[0]); err != nil {
			return err
		}
	}
	if n < 0 || n > maxRepeat {
		return fmt.Errorf("step count must be between 0 and %d", maxRepeat)
	}
	if err := in.spend(n); err != nil {
		return err
	}
	for range n {
		in.world.Step()
	}
	return nil
}

func intArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return n, nil
}

func floatArg(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}

func pointArgs(xs, ys string) (int, int, error) {
	x, err := intArg(xs)
	if err != nil {
		return 0, 0, err
	}
	y, err := intArg(ys)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func colorArg(name string) (core.Color, error) {
	c, ok := core.ParseColor(name)
	if !ok {
		return 0, fmt.Errorf("unknown colour %q (one of: %s)", name, strings.Join(core.ColorNames(), ", "))
	}
	return c, nil
}

func controlFlag(w *world.World, key string) (bool, error) {
	c := w.Control()
	switch key {
	case "left":
		return c.Left, nil
	case "right":
		return c.Right, nil
	case "up":
		return c.Up, nil
	case "down":
		return c.Down, nil
	case "button", "space":
		return c.Button, nil
	}
	return false, fmt.Errorf("unknown key %q (left, right, up, down, button)", key)
}
