package world

import (
	"fmt"
	"sort"
)

// Skill is a behaviour an actor runs every tick.
type Skill interface {
	Name() string
	Update(w *World, a *Actor, dt float64)
}

// MoveWithControl moves the actor while the world's control is held.
type MoveWithControl struct {
	Speed float64 // cells per second
}

func (MoveWithControl) Name() string { return "move-with-control" }

func (s MoveWithControl) Update(w *World, a *Actor, dt float64) {
	c := w.Control()
	step := s.Speed * dt
	if c.Left {
		a.X -= step
	}
	if c.Right {
		a.X += step
	}
	if c.Up {
		a.Y -= step
	}
	if c.Down {
		a.Y += step
	}
	w.keepInside(a)
}

// Bounce walks the actor along its velocity and reflects it off the edges.
type Bounce struct{}

func (Bounce) Name() string { return "bounce" }

func (Bounce) Update(w *World, a *Actor, dt float64) {
	if a.VX == 0 && a.VY == 0 {
		a.VX, a.VY = 12, 6
	}
	a.X += a.VX * dt
	a.Y += a.VY * dt

	maxX := float64(w.Width() - a.Bounds().W)
	maxY := float64(w.Height() - 1)
	if a.X < 0 {
		a.X = -a.X
		a.VX = -a.VX
	} else if a.X > maxX {
		a.X = 2*maxX - a.X
		a.VX = -a.VX
	}
	if a.Y < 0 {
		a.Y = -a.Y
		a.VY = -a.VY
	} else if a.Y > maxY {
		a.Y = 2*maxY - a.Y
		a.VY = -a.VY
	}
	w.keepInside(a)
}

// Wrap walks the actor along its velocity and wraps it around the edges.
type Wrap struct{}

func (Wrap) Name() string { return "wrap" }

func (Wrap) Update(w *World, a *Actor, dt float64) {
	a.X += a.VX * dt
	a.Y += a.VY * dt

	width, height := float64(w.Width()), float64(w.Height())
	for a.X < 0 {
		a.X += width
	}
	for a.X >= width {
		a.X -= width
	}
	for a.Y < 0 {
		a.Y += height
	}
	for a.Y >= height {
		a.Y -= height
	}
}

var skills = map[string]func() Skill{
	"move-with-control": func() Skill { return MoveWithControl{Speed: 20} },
	"bounce":            func() Skill { return Bounce{} },
	"wrap":              func() Skill { return Wrap{} },
}

// NewSkill builds a skill by name.
func NewSkill(name string) (Skill, error) {
	f, ok := skills[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSkill, name)
	}
	return f(), nil
}

// SkillNames returns every skill name, sorted.
func SkillNames() []string {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
