// Package config provides YAML-based configuration for pilas: the world
// window, the console and its colour scheme, and the keyboard control.
package config

// Config is the complete pilas configuration.
type Config struct {
	World   WorldConfig       `yaml:"world"`
	Console ConsoleConfig     `yaml:"console"`
	Scheme  map[string]string `yaml:"scheme"`
	Control ControlConfig     `yaml:"control"`
	Server  ServerConfig      `yaml:"server"`
}

// WorldConfig defines the window a world opens with.
type WorldConfig struct {
	Width      int    `yaml:"width"`  // cells
	Height     int    `yaml:"height"` // cells
	Title      string `yaml:"title"`
	Engine     string `yaml:"engine"` // "tui", "headless" or "gui"
	TickRate   int    `yaml:"tick_rate"`
	Background string `yaml:"background"` // colour name
}

// ConsoleConfig defines the interactive console.
type ConsoleConfig struct {
	Prompt         string `yaml:"prompt"`
	Continuation   string `yaml:"continuation"`
	IndentWidth    int    `yaml:"indent_width"`
	HistoryLimit   int    `yaml:"history_limit"`
	PersistHistory bool   `yaml:"persist_history"`
	DBPath         string `yaml:"db_path"`
	Height         int    `yaml:"height"` // rows when shown under the world
}

// ControlConfig tunes the keyboard control.
type ControlConfig struct {
	// HoldTicks is how long a key counts as held after its last repeat on
	// platforms without key-release events.
	HoldTicks int `yaml:"hold_ticks"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address        string `yaml:"address"`
	HostKeyPath    string `yaml:"host_key_path"`
	IdleTimeoutMin int    `yaml:"idle_timeout_minutes"`
}
