package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pilas/internal/core"
	"github.com/vovakirdan/tui-pilas/internal/shell"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

// ModelOptions configures a Model.
type ModelOptions struct {
	// ConsoleHeight is the number of transcript rows shown.
	ConsoleHeight int
	// ShowConsole opens the console at start.
	ShowConsole bool
	// Prompts are coloured as prompts in the transcript.
	Prompts []string
	// ScreenshotDir receives ctrl+s screenshots; empty disables them.
	ScreenshotDir string
}

// Model is the Bubble Tea model showing a world with an optional console
// docked at the bottom.
type Model struct {
	world       *world.World
	shell       *shell.Shell
	screen      *core.Screen
	keys        KeyMap
	help        help.Model
	opts        ModelOptions
	width       int
	height      int
	showConsole bool
	quitting    bool
	status      string
}

// NewModel creates a model for w. sh may be nil for a world without console.
func NewModel(w *world.World, sh *shell.Shell, opts ModelOptions) Model {
	if opts.ConsoleHeight <= 0 {
		opts.ConsoleHeight = 10
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		world:       w,
		shell:       sh,
		screen:      core.NewScreen(w.Width(), w.Height()),
		keys:        DefaultKeyMap(),
		help:        h,
		opts:        opts,
		width:       w.Width(),
		height:      w.Height() + 1,
		showConsole: sh != nil && opts.ShowConsole,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.world.Config().TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.world.Quit()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Console):
		if m.shell != nil {
			m.showConsole = !m.showConsole
		}
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.status = m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.showConsole {
			m.shell.Cancel()
			return m, nil
		}
		m.quitting = true
		m.world.Quit()
		return m, tea.Quit
	}

	for _, ev := range KeyEvents(msg) {
		if m.showConsole {
			m.shell.HandleKey(ev)
		} else {
			m.world.PressKey(ev)
		}
	}

	if m.world.Quitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize gives the world the whole window except the help line.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	worldH := max(1, msg.Height-1)
	m.world.Resize(msg.Width, worldH)
	m.screen.Resize(msg.Width, worldH)
	return m, nil
}

// handleTick advances the world.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.world.Quitting() {
		m.quitting = true
		return m, tea.Quit
	}
	m.world.Step()
	return m, tickCmd(m.world.Config().TickRate)
}

// saveScreenshot writes the current world as plain text and returns a status line.
func (m *Model) saveScreenshot() string {
	if m.opts.ScreenshotDir == "" {
		return "screenshots disabled"
	}
	m.world.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		return fmt.Sprintf("screenshot failed: %v", err)
	}
	name := strings.ToLower(strings.ReplaceAll(m.world.Title(), " ", "_"))
	filename := fmt.Sprintf("%s_%s.txt", name, time.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return fmt.Sprintf("screenshot failed: %v", err)
	}
	return "saved " + path
}

// ConsoleVisible reports whether the console is open.
func (m Model) ConsoleVisible() bool {
	return m.showConsole
}

// IsQuitting returns true if the user closed the window.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the world, the console over its bottom rows, and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.world.Render(m.screen)
	rows := strings.Split(RenderScreen(m.screen), "\n")

	if m.showConsole {
		ch := min(m.opts.ConsoleHeight, len(rows))
		panel := strings.Split(RenderConsole(m.shell, m.width, ch, m.opts.Prompts...), "\n")
		rows = append(rows[:len(rows)-len(panel)], panel...)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status + "  " + footer
	}
	return strings.Join(rows, "\n") + "\n" + helpStyle.Render(footer)
}
