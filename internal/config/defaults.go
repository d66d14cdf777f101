package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-pilas/internal/console"
)

//go:embed defaults/pilas.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:      80,
			Height:     24,
			Title:      "Pilas",
			Engine:     "tui",
			TickRate:   30,
			Background: "default",
		},
		Console: ConsoleConfig{
			Prompt:         console.DefaultPrompt,
			Continuation:   console.DefaultContinuation,
			IndentWidth:    console.DefaultIndentWidth,
			HistoryLimit:   500,
			PersistHistory: true,
			DBPath:         "~/.pilas/pilas.db",
			Height:         10,
		},
		Scheme: console.DefaultScheme(),
		Control: ControlConfig{
			HoldTicks: 8,
		},
		Server: ServerConfig{
			Address:        ":23235",
			IdleTimeoutMin: 30,
		},
	}
}

// fillDefaults replaces zero values left by a partial YAML file.
func fillDefaults(cfg *Config) {
	def := Default()

	if cfg.World.Width <= 0 {
		cfg.World.Width = def.World.Width
	}
	if cfg.World.Height <= 0 {
		cfg.World.Height = def.World.Height
	}
	if cfg.World.Title == "" {
		cfg.World.Title = def.World.Title
	}
	if cfg.World.Engine == "" {
		cfg.World.Engine = def.World.Engine
	}
	if cfg.World.TickRate <= 0 {
		cfg.World.TickRate = def.World.TickRate
	}
	if cfg.World.Background == "" {
		cfg.World.Background = def.World.Background
	}

	if cfg.Console.Prompt == "" {
		cfg.Console.Prompt = def.Console.Prompt
	}
	if cfg.Console.Continuation == "" {
		cfg.Console.Continuation = def.Console.Continuation
	}
	if cfg.Console.IndentWidth <= 0 {
		cfg.Console.IndentWidth = def.Console.IndentWidth
	}
	if cfg.Console.DBPath == "" {
		cfg.Console.DBPath = def.Console.DBPath
	}
	if cfg.Console.Height <= 0 {
		cfg.Console.Height = def.Console.Height
	}

	cfg.Scheme = console.DefaultScheme().Merge(cfg.Scheme)

	if cfg.Control.HoldTicks <= 0 {
		cfg.Control.HoldTicks = def.Control.HoldTicks
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = def.Server.Address
	}
	if cfg.Server.IdleTimeoutMin <= 0 {
		cfg.Server.IdleTimeoutMin = def.Server.IdleTimeoutMin
	}
}
