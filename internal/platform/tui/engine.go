package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pilas/internal/config"
	"github.com/vovakirdan/tui-pilas/internal/console"
	"github.com/vovakirdan/tui-pilas/internal/registry"
	"github.com/vovakirdan/tui-pilas/internal/shell"
	"github.com/vovakirdan/tui-pilas/internal/storage"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

// Name is the engine identifier.
const Name = "tui"

// Engine runs a world full-screen in the terminal.
type Engine struct{}

func (Engine) Name() string { return Name }

// Run shows w until the user quits, the world quits, or ctx is done.
func (Engine) Run(ctx context.Context, w *world.World, env registry.Env) error {
	w.SetHoldTicks(env.Config.Control.HoldTicks)

	var sh *shell.Shell
	if env.Console {
		var err error
		if sh, err = shell.FromEnv(w, env, storage.LocalSession); err != nil {
			return err
		}
	}

	opts := OptionsFromConfig(env.Config, env.Console)
	if dir, err := config.ExpandHome("~/.pilas/screenshots"); err == nil {
		opts.ScreenshotDir = dir
	}

	p := tea.NewProgram(
		NewModel(w, sh, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return ctx.Err()
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// OptionsFromConfig derives the model layout from the configuration.
func OptionsFromConfig(cfg config.Config, showConsole bool) ModelOptions {
	prompt, continuation := cfg.Console.Prompt, cfg.Console.Continuation
	if prompt == "" {
		prompt = console.DefaultPrompt
	}
	if continuation == "" {
		continuation = console.DefaultContinuation
	}
	return ModelOptions{
		ConsoleHeight: cfg.Console.Height,
		ShowConsole:   showConsole,
		Prompts:       []string{prompt, continuation},
	}
}

func init() {
	registry.RegisterEngine(Name, func() registry.Engine { return Engine{} })
}
