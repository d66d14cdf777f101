package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-pilas/internal/storage"
)

const (
	sessionPaneWidth = 24
	sessionPaneMinW  = 72 // narrower terminals hide the session pane
	historyLoadLimit = 1000
)

// HistoryStore is the part of storage the browser reads.
type HistoryStore interface {
	Stats() ([]storage.SessionStats, error)
	LoadHistory(session string, limit int) ([]storage.HistoryEntry, error)
}

// HistoryKeyMap holds the history browser bindings.
type HistoryKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextSession key.Binding
	PrevSession key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Quit        key.Binding
}

func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSession, k.Filter, k.Quit}
}

func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextSession, k.PrevSession},
		{k.Filter, k.ClearFilter, k.Quit},
	}
}

// DefaultHistoryKeyMap returns the default history browser bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "older")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "newer")),
		NextSession: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next session")),
		PrevSession: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev session")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		ClearFilter: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// HistoryModel browses the stored console history one session at a time,
// newest command first, optionally narrowed by a substring filter.
type HistoryModel struct {
	store    HistoryStore
	sessions []storage.SessionStats
	current  int
	entries  []storage.HistoryEntry
	shown    int

	table  table.Model
	filter textinput.Model
	help   help.Model
	keys   HistoryKeyMap

	width, height int
	now           func() time.Time
	err           error
	quitting      bool
}

// NewHistoryModel loads the session list and the first session.
func NewHistoryModel(store HistoryStore, width, height int) HistoryModel {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter commands"

	m := HistoryModel{
		store:  store,
		table:  table.New(table.WithFocused(true)),
		filter: filter,
		help:   help.New(),
		keys:   DefaultHistoryKeyMap(),
		width:  width,
		height: height,
		now:    time.Now,
	}
	m.table.SetStyles(historyTableStyles())

	if store != nil {
		m.sessions, m.err = store.Stats()
	}
	m.layout()
	m.selectSession(0)
	return m
}

func historyTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	return s
}

func (m *HistoryModel) sessionPane() bool {
	return m.width >= sessionPaneMinW
}

// layout sizes the table columns to the window.
func (m *HistoryModel) layout() {
	avail := m.width - 4
	if m.sessionPane() {
		avail -= sessionPaneWidth + 2
	}
	m.table.SetColumns([]table.Column{
		{Title: "#", Width: 5},
		{Title: "When", Width: 16},
		{Title: "Command", Width: max(16, avail-25)},
	})
	m.table.SetHeight(max(3, m.height-7))
	m.help.Width = m.width
}

// selectSession switches to session index i and reloads its commands.
func (m *HistoryModel) selectSession(i int) {
	m.entries = nil
	if len(m.sessions) == 0 || m.store == nil {
		m.refresh()
		return
	}
	m.current = (i + len(m.sessions)) % len(m.sessions)
	entries, err := m.store.LoadHistory(m.sessions[m.current].Session, historyLoadLimit)
	if err != nil {
		m.err = err
	}
	m.entries = entries
	m.refresh()
}

// refresh rebuilds the rows from the loaded entries and the filter.
func (m *HistoryModel) refresh() {
	needle := strings.ToLower(m.filter.Value())
	rows := make([]table.Row, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if needle != "" && !strings.Contains(strings.ToLower(e.Command), needle) {
			continue
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			humanize.RelTime(e.CreatedAt, m.now(), "ago", "from now"),
			e.Command,
		})
	}
	m.shown = len(rows)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if m.filter.Focused() {
			return m.updateFilter(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextSession):
			m.selectSession(m.current + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevSession):
			m.selectSession(m.current - 1)
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			m.table.Blur()
			return m, m.filter.Focus()
		case key.Matches(msg, m.keys.ClearFilter):
			if m.filter.Value() == "" {
				m.quitting = true
				return m, tea.Quit
			}
			m.filter.SetValue("")
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateFilter edits the filter; enter keeps it, esc drops it.
func (m HistoryModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		if msg.Type == tea.KeyEsc {
			m.filter.SetValue("")
			m.refresh()
		}
		m.filter.Blur()
		m.table.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refresh()
	return m, cmd
}

// Session returns the selected session name, or "" when there is none.
func (m HistoryModel) Session() string {
	if len(m.sessions) == 0 {
		return ""
	}
	return m.sessions[m.current].Session
}

// Shown returns how many commands pass the filter.
func (m HistoryModel) Shown() int {
	return m.shown
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	heading := "Console history"
	if s := m.Session(); s != "" {
		heading += " · " + s
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
		Width(m.width).Align(lipgloss.Center).Render(heading)

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.tableView())
	if m.sessionPane() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sessionsView(), " ", body)
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footer := dim.Render(m.help.View(m.keys))
	if m.filter.Focused() || m.filter.Value() != "" {
		footer = m.filter.View() + "\n" + footer
	}
	return title + "\n\n" + body + "\n" + footer
}

// sessionsView lists sessions with their command count and last use.
func (m HistoryModel) sessionsView() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Underline(true).Render("Sessions"))
	for i, s := range m.sessions {
		line := truncate(s.Session, sessionPaneWidth-10) + " " + strconv.Itoa(s.Commands)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		if i == m.current {
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
			line = "▸ " + line
		} else {
			line = "  " + line
		}
		b.WriteString("\n" + style.Render(line))
		if !s.LastUsed.IsZero() {
			b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("    "+humanize.RelTime(s.LastUsed, m.now(), "ago", "from now")))
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sessionPaneWidth).
		Padding(0, 1).
		Render(b.String())
}

func (m HistoryModel) tableView() string {
	note := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	switch {
	case m.err != nil:
		return note.Render("Cannot read history: " + m.err.Error())
	case len(m.entries) == 0:
		return note.Render("No commands recorded yet.\nType a few in pilas console first.")
	case m.shown == 0:
		return note.Render("No command matches " + strconv.Quote(m.filter.Value()))
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// RunHistory opens the history browser full screen.
func RunHistory(store HistoryStore, width, height int) error {
	_, err := tea.NewProgram(NewHistoryModel(store, width, height), tea.WithAltScreen()).Run()
	return err
}
