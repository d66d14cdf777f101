// Package examples registers the demo worlds shipped with pilas.
package examples

import (
	"fmt"

	"github.com/vovakirdan/tui-pilas/internal/core"
	"github.com/vovakirdan/tui-pilas/internal/registry"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

func init() {
	registry.RegisterExample(registry.Example{
		ID:          "bounce",
		Title:       "Bouncing balls",
		Description: "A few balls bounce off the edges of the window.",
		Setup:       setupBounce,
	})
	registry.RegisterExample(registry.Example{
		ID:          "control",
		Title:       "Keyboard control",
		Description: "Steer a ship with the arrow keys.",
		Setup:       setupControl,
	})
	registry.RegisterExample(registry.Example{
		ID:          "bombs",
		Title:       "Monkey and bombs",
		Description: "Move the monkey; bombs explode when it touches them.",
		Setup:       setupBombs,
	})
	registry.RegisterExample(registry.Example{
		ID:          "olives",
		Title:       "Drifting olives",
		Description: "Olives drift and wrap around the window.",
		Setup:       setupOlives,
	})
}

func setupBounce(w *world.World) error {
	w.SetScene(world.Normal(core.ColorBlack))
	speeds := [][2]float64{{12, 6}, {-9, 4}, {7, -8}, {-14, -5}}
	for i, v := range speeds {
		a, err := w.Add("ball", "", w.Width()/4+i*4, w.Height()/3+i)
		if err != nil {
			return err
		}
		a.VX, a.VY = v[0], v[1]
		a.Learn(world.Bounce{})
	}
	w.Notify("Balls bounce off the edges")
	return nil
}

func setupControl(w *world.World) error {
	ship, err := w.Add("ship", "ship", w.Width()/2, w.Height()/2)
	if err != nil {
		return err
	}
	ship.Learn(world.MoveWithControl{Speed: 20})

	hud, err := w.AddText("hud", "", 1, 0)
	if err != nil {
		return err
	}
	w.Events().Tick.Connect(func(int) {
		hud.Text = w.Control().String()
	})
	w.Notify("Use the arrow keys to steer the ship")
	return nil
}

func setupBombs(w *world.World) error {
	monkey, err := w.Add("monkey", "monkey", 2, w.Height()/2)
	if err != nil {
		return err
	}
	monkey.Learn(world.MoveWithControl{Speed: 15})

	for i := range 5 {
		x := w.Width()/3 + i*(w.Width()/8)
		y := 2 + (i*5)%max(1, w.Height()-4)
		if _, err := w.Add("bomb", fmt.Sprintf("bomb%d", i+1), x, y); err != nil {
			return err
		}
	}

	exploded := 0
	w.Events().Tick.Connect(func(int) {
		for _, a := range w.Actors() {
			if a.Kind.Name != "bomb" {
				continue
			}
			if ok, _ := w.Touching("monkey", a.Name); ok {
				w.Remove(a.Name)
				exploded++
				w.Notify(fmt.Sprintf("Boom! %d bombs exploded", exploded))
			}
		}
	})
	w.Notify("Touch the bombs with the monkey")
	return nil
}

func setupOlives(w *world.World) error {
	w.SetScene(world.Normal(core.ColorDefault))
	for i := range 6 {
		a, err := w.Add("olive", "", (i*13)%max(1, w.Width()), (i*7)%max(1, w.Height()))
		if err != nil {
			return err
		}
		a.VX = float64(4 + i*2)
		a.VY = float64(i%3) - 1
		a.Learn(world.Wrap{})
	}
	return nil
}
