// Package shell assembles a pilas console: a line editor over an in-memory
// surface, the script interpreter bound to a world, and optional history
// persistence.
package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pilas/internal/config"
	"github.com/vovakirdan/tui-pilas/internal/console"
	"github.com/vovakirdan/tui-pilas/internal/core"
	"github.com/vovakirdan/tui-pilas/internal/registry"
	"github.com/vovakirdan/tui-pilas/internal/script"
	"github.com/vovakirdan/tui-pilas/internal/storage"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

// HistoryStore is the part of storage the shell needs.
type HistoryStore interface {
	AppendHistory(session, command string) (int64, error)
	LoadHistory(session string, limit int) ([]storage.HistoryEntry, error)
}

// Options configures a Shell.
type Options struct {
	Console config.ConsoleConfig
	Scheme  console.Scheme
	Store   HistoryStore // nil disables persistence
	Session string
	Logger  *log.Logger
	Banner  string
}

// Shell is one console session.
type Shell struct {
	world       *world.World
	surface     *console.TextSurface
	interp      *script.Interpreter
	editor      *console.Editor
	highlighter *console.Highlighter
	scheme      console.Scheme
	store       HistoryStore
	session     string
	logger      *log.Logger
}

// DefaultBanner is written above the first prompt.
func DefaultBanner() string {
	return fmt.Sprintf("pilas %s - type help for the command list", core.Version)
}

// New builds a shell driving w.
func New(w *world.World, opts Options) (*Shell, error) {
	if opts.Session == "" {
		opts.Session = storage.LocalSession
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Scheme == nil {
		opts.Scheme = console.DefaultScheme()
	}
	if opts.Banner == "" {
		opts.Banner = DefaultBanner()
	}

	s := &Shell{
		world:       w,
		surface:     console.NewTextSurface(""),
		interp:      script.New(w),
		highlighter: console.NewHighlighter(script.Keywords()),
		scheme:      opts.Scheme,
		session:     opts.Session,
		logger:      opts.Logger,
	}
	if opts.Console.PersistHistory {
		s.store = opts.Store
	}

	editorOpts := console.Options{
		Prompt:       opts.Console.Prompt,
		Continuation: opts.Console.Continuation,
		IndentWidth:  opts.Console.IndentWidth,
		HistoryLimit: opts.Console.HistoryLimit,
		Banner:       opts.Banner,
		OnRecord:     s.persist,
	}
	s.editor = console.NewEditor(s.surface, s.interp, editorOpts)

	if s.store != nil {
		entries, err := s.store.LoadHistory(s.session, opts.Console.HistoryLimit)
		if err != nil {
			return nil, fmt.Errorf("shell: cannot load history: %w", err)
		}
		cmds := make([]string, len(entries))
		for i, e := range entries {
			cmds[i] = e.Command
		}
		s.editor.History().Load(cmds)
	}

	return s, nil
}

func (s *Shell) persist(cmd string) {
	if s.store == nil {
		return
	}
	if _, err := s.store.AppendHistory(s.session, cmd); err != nil {
		s.logger.Warn("Cannot save history", "session", s.session, "error", err)
	}
}

// HandleKey feeds one key to the editor.
func (s *Shell) HandleKey(ev core.KeyEvent) {
	s.editor.HandleKey(ev)
}

// Cancel abandons the statement being typed.
func (s *Shell) Cancel() {
	s.editor.Cancel()
}

// Submit types line and presses Enter, as if a user had.
func (s *Shell) Submit(line string) {
	for _, r := range line {
		s.surface.Insert(string(r))
	}
	s.editor.HandleKey(core.KeyEvent{Code: core.KeyEnter})
}

// Editor returns the line editor.
func (s *Shell) Editor() *console.Editor { return s.editor }

// Surface returns the text buffer the editor writes to.
func (s *Shell) Surface() *console.TextSurface { return s.surface }

// Highlighter returns the syntax highlighter for console lines.
func (s *Shell) Highlighter() *console.Highlighter { return s.highlighter }

// Scheme returns the colour scheme.
func (s *Shell) Scheme() console.Scheme { return s.scheme }

// World returns the world the shell drives.
func (s *Shell) World() *world.World { return s.world }

// Lines returns the console transcript, one entry per line.
func (s *Shell) Lines() []string {
	return strings.Split(s.surface.Text(), "\n")
}

// CursorLine returns the cursor's line index and column.
func (s *Shell) CursorLine() (int, int) {
	text := s.surface.Runes()
	pos := s.surface.Position()
	line := 0
	for _, r := range text[:pos] {
		if r == '\n' {
			line++
		}
	}
	return line, s.surface.Column()
}

// FromEnv builds the console an engine opens for w.
func FromEnv(w *world.World, env registry.Env, session string) (*Shell, error) {
	opts := Options{
		Console: env.Config.Console,
		Scheme:  console.DefaultScheme().Merge(env.Config.Scheme),
		Session: session,
		Logger:  env.Logger,
	}
	if env.Store != nil {
		opts.Store = env.Store
	}
	return New(w, opts)
}
