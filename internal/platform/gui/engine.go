// Package gui runs a world in a desktop window through Ebitengine. The
// world's cell grid is drawn with the debug font, one cell per glyph.
package gui

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-pilas/internal/registry"
	"github.com/vovakirdan/tui-pilas/internal/shell"
	"github.com/vovakirdan/tui-pilas/internal/storage"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

// Name is the engine identifier.
const Name = "gui"

// Cell size in pixels. The debug font is 6x16; the extra columns keep
// glyphs apart.
const (
	cellW = 8
	cellH = 16
)

// Engine opens a desktop window.
type Engine struct{}

func (Engine) Name() string { return Name }

// Run opens the window and blocks until it closes, the world quits, or ctx is done.
func (Engine) Run(ctx context.Context, w *world.World, env registry.Env) error {
	var sh *shell.Shell
	if env.Console {
		var err error
		if sh, err = shell.FromEnv(w, env, storage.LocalSession); err != nil {
			return err
		}
	}

	g := newGame(ctx, w, sh, env.Config.Console.Height)

	ebiten.SetWindowSize(w.Width()*cellW, w.Height()*cellH)
	ebiten.SetWindowTitle(w.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.Config().TickRate)

	if env.Logger != nil {
		env.Logger.Debug("Opening window", "title", w.Title(), "cols", w.Width(), "rows", w.Height())
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: %w", err)
	}
	return ctx.Err()
}

func init() {
	registry.RegisterEngine(Name, func() registry.Engine { return Engine{} })
}
