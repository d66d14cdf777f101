package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-pilas/internal/storage"
)

type fakeHistory struct {
	stats   []storage.SessionStats
	entries map[string][]storage.HistoryEntry
	err     error
}

func (f *fakeHistory) Stats() ([]storage.SessionStats, error) {
	return f.stats, f.err
}

func (f *fakeHistory) LoadHistory(session string, _ int) ([]storage.HistoryEntry, error) {
	return f.entries[session], nil
}

func newFakeHistory() *fakeHistory {
	at := time.Now().Add(-time.Hour)
	entry := func(session, cmd string) storage.HistoryEntry {
		return storage.HistoryEntry{Session: session, Command: cmd, CreatedAt: at}
	}
	return &fakeHistory{
		stats: []storage.SessionStats{
			{Session: "local", Commands: 3, LastUsed: at},
			{Session: "ssh:ana", Commands: 1, LastUsed: at},
		},
		entries: map[string][]storage.HistoryEntry{
			"local": {
				entry("local", "add monkey m"),
				entry("local", "move m 1 0"),
				entry("local", "add ball b"),
			},
			"ssh:ana": {entry("ssh:ana", "help")},
		},
	}
}

func sendHistory(m HistoryModel, msg tea.Msg) HistoryModel {
	next, _ := m.Update(msg)
	return next.(HistoryModel)
}

func TestHistoryModelSessions(t *testing.T) {
	m := NewHistoryModel(newFakeHistory(), 100, 30)

	if m.Session() != "local" || m.Shown() != 3 {
		t.Fatalf("start: Session() = %q, Shown() = %d, expected local and 3", m.Session(), m.Shown())
	}

	tests := []struct {
		key     tea.KeyMsg
		session string
		shown   int
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, "ssh:ana", 1},
		{tea.KeyMsg{Type: tea.KeyTab}, "local", 3},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, "ssh:ana", 1},
	}
	for _, tt := range tests {
		m = sendHistory(m, tt.key)
		if m.Session() != tt.session || m.Shown() != tt.shown {
			t.Errorf("after %s: Session() = %q, Shown() = %d, expected %q and %d",
				tt.key, m.Session(), m.Shown(), tt.session, tt.shown)
		}
	}
}

func TestHistoryModelFilter(t *testing.T) {
	m := NewHistoryModel(newFakeHistory(), 100, 30)

	m = sendHistory(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m = sendHistory(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("add")})
	if m.Shown() != 2 {
		t.Errorf("Shown() with filter %q = %d, expected 2", "add", m.Shown())
	}

	m = sendHistory(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Shown() != 2 {
		t.Errorf("Shown() after enter = %d, expected the filter to stay", m.Shown())
	}

	m = sendHistory(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Shown() != 3 {
		t.Errorf("Shown() after esc = %d, expected 3", m.Shown())
	}
}

func TestHistoryModelView(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeHistory
		want  string
	}{
		{"commands", newFakeHistory(), "move m 1 0"},
		{"empty", &fakeHistory{}, "No commands recorded yet"},
		{"error", &fakeHistory{err: errors.New("disk gone")}, "disk gone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ansi.Strip(NewHistoryModel(tt.store, 100, 30).View())
			if !strings.Contains(view, tt.want) {
				t.Errorf("View() does not contain %q:\n%s", tt.want, view)
			}
		})
	}
}

func TestHistoryModelQuit(t *testing.T) {
	m := NewHistoryModel(newFakeHistory(), 100, 30)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil || next.(HistoryModel).View() != "" {
		t.Error("q did not quit")
	}
}
