package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pilas/internal/console"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	fillDefaults(&cfg)

	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults = %+v\nexpected %+v", cfg, Default())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pilas.yaml")
	data := []byte("world:\n  width: 40\n  engine: headless\nscheme:\n  keyword: \"5\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.World.Width != 40 || cfg.World.Engine != "headless" {
		t.Errorf("World = %+v", cfg.World)
	}
	if cfg.World.Height != 24 || cfg.Console.IndentWidth != 4 {
		t.Errorf("missing fields were not defaulted: %+v %+v", cfg.World, cfg.Console)
	}
	if cfg.Scheme["keyword"] != "5" {
		t.Errorf("scheme override lost: %q", cfg.Scheme["keyword"])
	}
	if cfg.Scheme[console.ColorBraceBackground] == "" {
		t.Error("scheme defaults were not merged")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("world: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pilas.yaml")
	cfg := Default()
	cfg.World.Title = "Patito"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.World.Title != "Patito" {
		t.Errorf("Title = %q", loaded.World.Title)
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/tmp/x.db")
	if err != nil || got != "/tmp/x.db" {
		t.Errorf("ExpandHome(abs) = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/.pilas/pilas.db")
	if err != nil || got != filepath.Join(home, ".pilas", "pilas.db") {
		t.Errorf("ExpandHome(~) = %q, %v", got, err)
	}
}
