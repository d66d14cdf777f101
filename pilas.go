// Package pilas is the entry point for writing games: Init builds a world
// and picks an engine, Run drives it, and the world's actors, scenes, and
// control are scripted through the console or from Go.
//
//	game, err := pilas.Init(pilas.Options{Title: "Patito", Engine: "tui"})
//	if err != nil {
//		return err
//	}
//	defer game.Close()
//	game.Notify("Use the arrow keys")
//	return game.Run(ctx)
package pilas

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pilas/internal/config"
	"github.com/vovakirdan/tui-pilas/internal/core"
	_ "github.com/vovakirdan/tui-pilas/internal/examples" // registers examples
	_ "github.com/vovakirdan/tui-pilas/internal/platform/headless"
	_ "github.com/vovakirdan/tui-pilas/internal/platform/tui"
	"github.com/vovakirdan/tui-pilas/internal/registry"
	"github.com/vovakirdan/tui-pilas/internal/script"
	"github.com/vovakirdan/tui-pilas/internal/storage"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

// ErrUnknownEngine is returned by Init for an engine name nobody registered.
var ErrUnknownEngine = registry.ErrUnknownEngine

// Options selects the window and engine. Zero fields take their value
// from the configuration file.
type Options struct {
	Width    int
	Height   int
	Title    string
	Engine   string // "tui", "headless", "gui"
	TickRate int
	// Background is a colour name for the initial scene.
	Background string
	// Console opens the interactive console with the world.
	Console bool
	// Example populates the world with a bundled example.
	Example string
	// ConfigPath overrides the configuration search.
	ConfigPath string
	// Config is used as is when set, skipping ConfigPath.
	Config *config.Config
	Logger *log.Logger
}

// Game is an initialized world bound to its engine.
type Game struct {
	world  *world.World
	engine registry.Engine
	env    registry.Env
	interp *script.Interpreter
}

// Init loads the configuration, creates the world, and selects the engine.
func Init(opts Options) (*Game, error) {
	var cfg config.Config
	if opts.Config != nil {
		cfg = *opts.Config
	} else {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return nil, err
		}
	}
	applyOptions(&cfg, opts)

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pilas",
		})
	}

	engine, err := registry.NewEngine(cfg.World.Engine)
	if err != nil {
		return nil, err
	}

	w := world.New(core.RuntimeConfig{
		Title:    cfg.World.Title,
		ScreenW:  cfg.World.Width,
		ScreenH:  cfg.World.Height,
		TickRate: cfg.World.TickRate,
	})
	if bg, ok := core.ParseColor(cfg.World.Background); ok && bg != core.ColorDefault {
		w.SetInitialScene(world.Normal(bg))
	} else if !ok {
		return nil, fmt.Errorf("pilas: unknown background colour %q", cfg.World.Background)
	}

	if opts.Example != "" {
		ex, err := registry.LookupExample(opts.Example)
		if err != nil {
			return nil, err
		}
		if err := ex.Setup(w); err != nil {
			return nil, fmt.Errorf("pilas: example %s: %w", ex.ID, err)
		}
	}

	g := &Game{
		world:  w,
		engine: engine,
		env: registry.Env{
			Config:  cfg,
			Logger:  logger,
			Console: opts.Console,
		},
		interp: script.New(w),
	}

	if opts.Console && cfg.Console.PersistHistory {
		store, err := storage.Open(cfg.Console.DBPath)
		if err != nil {
			// Continue without history persistence
			logger.Warn("Could not open history database", "error", err)
		} else {
			g.env.Store = store
		}
	}

	return g, nil
}

func applyOptions(cfg *config.Config, opts Options) {
	if opts.Width > 0 {
		cfg.World.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.World.Height = opts.Height
	}
	if opts.Title != "" {
		cfg.World.Title = opts.Title
	}
	if opts.Engine != "" {
		cfg.World.Engine = opts.Engine
	}
	if opts.TickRate > 0 {
		cfg.World.TickRate = opts.TickRate
	}
	if opts.Background != "" {
		cfg.World.Background = opts.Background
	}
	if cfg.World.Background == "" {
		cfg.World.Background = "default"
	}
}

// Run drives the world with the selected engine until it quits.
func (g *Game) Run(ctx context.Context) error {
	g.env.Logger.Debug("Running", "engine", g.engine.Name(), "title", g.world.Title())
	return g.engine.Run(ctx, g.world, g.env)
}

// Quit stops the engine. Safe to call from any goroutine.
func (g *Game) Quit() {
	g.world.Quit()
}

// Reset removes every actor and returns to the initial scene.
func (g *Game) Reset() {
	g.world.Reset()
}

// Notify shows msg at the bottom of the window, replacing the previous notice.
func (g *Game) Notify(msg string) {
	g.world.Notify(msg)
}

// Exec runs console commands against the world and returns their output.
func (g *Game) Exec(src string) (string, error) {
	return g.interp.Run(src)
}

// World returns the world being driven.
func (g *Game) World() *world.World {
	return g.world
}

// Engine returns the name of the selected engine.
func (g *Game) Engine() string {
	return g.engine.Name()
}

// Close releases the history database.
func (g *Game) Close() error {
	if g.env.Store != nil {
		return g.env.Store.Close()
	}
	return nil
}

// Version returns the pilas version number.
func Version() string {
	return core.Version
}

// Engines returns the names of the available engines.
func Engines() []string {
	return registry.Engines()
}

// Examples returns the bundled examples.
func Examples() []registry.Example {
	return registry.Examples()
}
