package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-pilas/internal/config"
	"github.com/vovakirdan/tui-pilas/internal/core"
	"github.com/vovakirdan/tui-pilas/internal/registry"
	"github.com/vovakirdan/tui-pilas/internal/shell"
	"github.com/vovakirdan/tui-pilas/internal/storage"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig describes what the SSH server listens on and what every
// session gets.
type SSHServerConfig struct {
	// Address to listen on, e.g. ":23235".
	Address string

	// HostKeyPath defaults to ~/.pilas/host_key, generated on first use.
	HostKeyPath string

	// IdleTimeout disconnects sessions without input. Zero disables it.
	IdleTimeout time.Duration

	// Example populates every session's world when set.
	Example string

	// Config is the pilas configuration applied to every session.
	Config config.Config
}

// SSHServerConfigFrom builds the server configuration from a pilas config.
func SSHServerConfigFrom(cfg config.Config) SSHServerConfig {
	return SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKeyPath,
		IdleTimeout: time.Duration(cfg.Server.IdleTimeoutMin) * time.Minute,
		Config:      cfg,
	}
}

// SSHServer gives every SSH session its own world and console. Console
// history is kept per user under the session name "ssh:<user>".
type SSHServer struct {
	cfg    SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	// drain stops accepting and waits for open sessions until ctx ends.
	drain func(ctx context.Context) error
}

// NewSSHServer validates cfg, opens the history store, and prepares the
// listener. Nothing is accepted until Serve.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Example != "" {
		if _, err := registry.LookupExample(cfg.Example); err != nil {
			return nil, err
		}
	}

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{
		cfg: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pilas-ssh",
		}),
	}

	if cfg.Config.Console.PersistHistory {
		if s.store, err = storage.Open(cfg.Config.Console.DBPath); err != nil {
			// Sessions still work, they just forget their history.
			s.logger.Warn("History disabled", "error", err)
			s.store = nil
		}
	}

	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			s.logSessions,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("tui: ssh server: %w", err)
	}
	s.drain = s.server.Shutdown
	return s, nil
}

// resolveHostKey expands path, falling back to ~/.pilas/host_key, and
// makes sure its directory exists so wish can write a generated key.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		path = "~/.pilas/host_key"
	}
	path, err := config.ExpandHome(path)
	if err != nil {
		return "", fmt.Errorf("tui: host key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the world, console, and model of one connection.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	user := sess.User()
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("Session without a terminal", "user", user)
		return nil, nil
	}

	w, err := s.newSessionWorld(pty.Window.Width, pty.Window.Height)
	if err != nil {
		s.logger.Error("World setup failed", "user", user, "error", err)
		return nil, nil
	}

	env := registry.Env{Config: s.cfg.Config, Logger: s.logger, Console: true}
	if s.store != nil {
		env.Store = s.store
	}
	sh, err := shell.FromEnv(w, env, "ssh:"+user)
	if err != nil {
		s.logger.Error("Console setup failed", "user", user, "error", err)
		return nil, nil
	}

	return NewModel(w, sh, OptionsFromConfig(s.cfg.Config, true)), []tea.ProgramOption{tea.WithAltScreen()}
}

// newSessionWorld creates a world filling the client's terminal, minus
// the help line.
func (s *SSHServer) newSessionWorld(width, height int) (*world.World, error) {
	wc := s.cfg.Config.World
	w := world.New(core.RuntimeConfig{
		Title:    wc.Title,
		ScreenW:  width,
		ScreenH:  max(1, height-1),
		TickRate: wc.TickRate,
	})
	w.SetHoldTicks(s.cfg.Config.Control.HoldTicks)
	if bg, ok := core.ParseColor(wc.Background); ok && bg != core.ColorDefault {
		w.SetInitialScene(world.Normal(bg))
	}

	if s.cfg.Example == "" {
		return w, nil
	}
	ex, err := registry.LookupExample(s.cfg.Example)
	if err != nil {
		return nil, err
	}
	if err := ex.Setup(w); err != nil {
		return nil, fmt.Errorf("example %s: %w", ex.ID, err)
	}
	return w, nil
}

// logSessions logs every connection with how long it lasted.
func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("Connected", "user", sess.User(), "remote", sess.RemoteAddr())
		next(sess)
		s.logger.Info("Disconnected", "user", sess.User(), "duration", time.Since(start).Round(time.Second))
	}
}

// Serve accepts sessions until ctx is done, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("Listening", "address", s.cfg.Address)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		// A closed server is being shut down elsewhere, and Shutdown
		// closes the store once its sessions are gone.
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		s.closeStore()
		return fmt.Errorf("tui: ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	return s.Shutdown()
}

// Shutdown waits up to shutdownGrace for open sessions, then closes the
// history store. Sessions still open after the grace keep the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.drain(ctx); err != nil {
		s.logger.Warn("Sessions still open, history stays open", "error", err)
		return fmt.Errorf("tui: ssh shutdown: %w", err)
	}
	s.closeStore()
	return nil
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("Closing history", "error", err)
	}
	s.store = nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
