package examples

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pilas/internal/core"
	"github.com/vovakirdan/tui-pilas/internal/registry"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

func TestExamplesSetupAndStep(t *testing.T) {
	list := registry.Examples()
	if len(list) < 4 {
		t.Fatalf("Examples() = %d entries, expected at least 4", len(list))
	}

	for _, ex := range list {
		t.Run(ex.ID, func(t *testing.T) {
			w := world.New(core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 30})
			if err := ex.Setup(w); err != nil {
				t.Fatalf("Setup() failed: %v", err)
			}
			screen := core.NewScreen(w.Width(), w.Height())
			for range 100 {
				w.Step()
			}
			w.Render(screen)
			if len(w.Actors()) == 0 && ex.ID != "bombs" {
				t.Error("example has no actors")
			}
		})
	}
}

func TestBombsExplode(t *testing.T) {
	ex, err := registry.LookupExample("bombs")
	if err != nil {
		t.Fatal(err)
	}
	w := world.New(core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 30})
	if err := ex.Setup(w); err != nil {
		t.Fatal(err)
	}

	bomb, _ := w.Actor("bomb1")
	monkey, _ := w.Actor("monkey")
	monkey.X, monkey.Y = bomb.X, bomb.Y
	w.Step()

	if _, err := w.Actor("bomb1"); err == nil {
		t.Error("bomb1 still present after being touched")
	}
	if !strings.HasPrefix(w.Notice(), "Boom! 1") {
		t.Errorf("Notice() = %q", w.Notice())
	}
}

func TestControlHUD(t *testing.T) {
	ex, _ := registry.LookupExample("control")
	w := world.New(core.RuntimeConfig{ScreenW: 80, ScreenH: 20, TickRate: 30})
	if err := ex.Setup(w); err != nil {
		t.Fatal(err)
	}
	w.PressKey(core.KeyEvent{Code: core.KeyUp})
	w.Step()

	hud, _ := w.Actor("hud")
	if !strings.Contains(hud.Text, "up: true") {
		t.Errorf("hud = %q", hud.Text)
	}
}
