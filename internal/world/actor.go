package world

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-pilas/internal/core"
)

// Kind describes how an actor of one family looks.
type Kind struct {
	Name  string
	Glyph rune
	Color core.Color
}

var kinds = map[string]Kind{
	"monkey": {Name: "monkey", Glyph: '@', Color: core.ColorOrange},
	"ball":   {Name: "ball", Glyph: 'o', Color: core.ColorWhite},
	"box":    {Name: "box", Glyph: '#', Color: core.ColorYellow},
	"bomb":   {Name: "bomb", Glyph: '*', Color: core.ColorRed},
	"ship":   {Name: "ship", Glyph: 'A', Color: core.ColorCyan},
	"olive":  {Name: "olive", Glyph: '0', Color: core.ColorGreen},
	"duck":   {Name: "duck", Glyph: 'D', Color: core.ColorYellow},
	"text":   {Name: "text", Glyph: 'T', Color: core.ColorWhite},
}

// LookupKind returns the kind registered under name.
func LookupKind(name string) (Kind, bool) {
	k, ok := kinds[name]
	return k, ok
}

// KindNames returns every actor kind, sorted.
func KindNames() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Actor is anything that lives in the world: a position, a look, and the
// skills it has learned.
type Actor struct {
	Name  string
	Kind  Kind
	X, Y  float64
	VX    float64 // cells per second
	VY    float64
	Color core.Color
	Text  string // drawn instead of the glyph for text actors

	skills []Skill
}

func newActor(name string, kind Kind, x, y int) *Actor {
	return &Actor{
		Name:  name,
		Kind:  kind,
		X:     float64(x),
		Y:     float64(y),
		Color: kind.Color,
	}
}

// Position returns the cell the actor occupies.
func (a *Actor) Position() (int, int) {
	return int(a.X), int(a.Y)
}

// Bounds returns the cells the actor covers.
func (a *Actor) Bounds() core.Rect {
	x, y := a.Position()
	w := 1
	if a.Text != "" {
		w = len([]rune(a.Text))
	}
	return core.NewRect(x, y, w, 1)
}

// Learn gives the actor a skill. Learning the same skill twice is a no-op.
func (a *Actor) Learn(s Skill) {
	for _, have := range a.skills {
		if have.Name() == s.Name() {
			return
		}
	}
	a.skills = append(a.skills, s)
}

// Forget removes a skill by name.
func (a *Actor) Forget(name string) bool {
	for i, s := range a.skills {
		if s.Name() == name {
			a.skills = append(a.skills[:i], a.skills[i+1:]...)
			return true
		}
	}
	return false
}

// Skills returns the names of the learned skills in learning order.
func (a *Actor) Skills() []string {
	names := make([]string, len(a.skills))
	for i, s := range a.skills {
		names[i] = s.Name()
	}
	return names
}

func (a *Actor) update(w *World, dt float64) {
	for _, s := range a.skills {
		s.Update(w, a, dt)
	}
}

func (a *Actor) draw(dst *core.Screen) {
	x, y := a.Position()
	if a.Text != "" {
		dst.DrawTextColor(x, y, a.Text, a.Color)
		return
	}
	dst.SetCell(x, y, core.Cell{Rune: a.Kind.Glyph, Color: a.Color})
}

// String describes the actor for listings.
func (a *Actor) String() string {
	x, y := a.Position()
	return fmt.Sprintf("%s (%s) at %d,%d", a.Name, a.Kind.Name, x, y)
}
