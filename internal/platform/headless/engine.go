// Package headless provides an engine without any display. It steps the
// world at its tick rate until the world quits or the context ends, which
// makes it the engine for tests and scripted runs.
package headless

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-pilas/internal/registry"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

// Name is the engine identifier.
const Name = "headless"

// Engine is the headless engine.
type Engine struct {
	// MaxTicks stops the loop after that many steps when positive.
	MaxTicks int
	// Fast skips the wall-clock pacing between steps.
	Fast bool
}

// New creates a paced headless engine.
func New() *Engine {
	return &Engine{}
}

func (e *Engine) Name() string { return Name }

// Run steps w until it quits, MaxTicks is reached, or ctx is done.
func (e *Engine) Run(ctx context.Context, w *world.World, env registry.Env) error {
	if env.Logger != nil {
		env.Logger.Debug("Headless engine started", "title", w.Title(), "tick_rate", w.Config().TickRate)
	}

	var ticker *time.Ticker
	if !e.Fast {
		ticker = time.NewTicker(time.Second / time.Duration(w.Config().TickRate))
		defer ticker.Stop()
	}

	for ticks := 0; e.MaxTicks <= 0 || ticks < e.MaxTicks; ticks++ {
		if w.Quitting() {
			return nil
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		w.Step()
	}
	return nil
}

func init() {
	registry.RegisterEngine(Name, func() registry.Engine { return New() })
}
