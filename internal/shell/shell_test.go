package shell

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pilas/internal/config"
	"github.com/vovakirdan/tui-pilas/internal/core"
	"github.com/vovakirdan/tui-pilas/internal/storage"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

func newTestWorld() *world.World {
	return world.New(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 10})
}

func TestShellSubmit(t *testing.T) {
	w := newTestWorld()
	sh, err := New(w, Options{Console: config.Default().Console})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	sh.Submit("print hola")
	lines := sh.Lines()
	if len(lines) < 3 {
		t.Fatalf("Lines() = %q", lines)
	}
	if lines[0] != DefaultBanner() {
		t.Errorf("banner = %q", lines[0])
	}
	if got := lines[len(lines)-2]; got != "hola" {
		t.Errorf("output line = %q, expected %q", got, "hola")
	}
	if got := lines[len(lines)-1]; got != ">>> " {
		t.Errorf("prompt line = %q", got)
	}

	line, col := sh.CursorLine()
	if line != len(lines)-1 || col != 4 {
		t.Errorf("CursorLine() = %d,%d", line, col)
	}
}

func TestShellPersistsHistory(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "pilas.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := config.Default().Console
	cfg.PersistHistory = true

	first, err := New(newTestWorld(), Options{Console: cfg, Store: store, Session: "ana"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	first.Submit("add monkey m")
	first.Submit("add monkey m")
	first.Submit("actors")

	second, err := New(newTestWorld(), Options{Console: cfg, Store: store, Session: "ana"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	got := second.Editor().History().Entries()
	if strings.Join(got, "|") != "add monkey m|actors" {
		t.Errorf("seeded history = %q", got)
	}

	other, _ := New(newTestWorld(), Options{Console: cfg, Store: store, Session: "bob"})
	if n := other.Editor().History().Len(); n != 0 {
		t.Errorf("other session history len = %d", n)
	}
}

func TestShellWithoutPersistence(t *testing.T) {
	store := &fakeStore{}
	cfg := config.Default().Console
	cfg.PersistHistory = false

	sh, err := New(newTestWorld(), Options{Console: cfg, Store: store})
	if err != nil {
		t.Fatal(err)
	}
	sh.Submit("print x")
	if store.appended != 0 || store.loaded {
		t.Errorf("store used with persistence off: %+v", store)
	}
}

func TestShellLoadError(t *testing.T) {
	cfg := config.Default().Console
	cfg.PersistHistory = true

	_, err := New(newTestWorld(), Options{Console: cfg, Store: &fakeStore{err: errors.New("boom")}})
	if err == nil {
		t.Error("expected load error")
	}
}

func TestShellCancel(t *testing.T) {
	sh, _ := New(newTestWorld(), Options{Console: config.Default().Console})
	sh.Submit("repeat 2:")
	if sh.Editor().Prompt() != "... " {
		t.Fatalf("Prompt() = %q", sh.Editor().Prompt())
	}
	sh.Cancel()
	if sh.Editor().Prompt() != ">>> " {
		t.Errorf("Prompt() after Cancel() = %q", sh.Editor().Prompt())
	}
	sh.Submit("print ok")
	lines := sh.Lines()
	if lines[len(lines)-2] != "ok" {
		t.Errorf("output after cancel = %q", lines[len(lines)-2])
	}
}

type fakeStore struct {
	appended int
	loaded   bool
	err      error
}

func (f *fakeStore) AppendHistory(string, string) (int64, error) {
	f.appended++
	return int64(f.appended), nil
}

func (f *fakeStore) LoadHistory(string, int) ([]storage.HistoryEntry, error) {
	f.loaded = true
	return nil, f.err
}
