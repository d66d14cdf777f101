package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pilas/internal/core"
)

// KeyEvents translates a Bubble Tea key message into platform-neutral key
// events. Pasted or buffered text yields one event per rune. Keys with no
// meaning for pilas yield nothing.
func KeyEvents(msg tea.KeyMsg) []core.KeyEvent {
	k := tea.Key(msg)

	if k.Type == tea.KeyRunes {
		events := make([]core.KeyEvent, 0, len(k.Runes))
		for _, r := range k.Runes {
			ev := core.RuneKey(r)
			ev.Alt = k.Alt
			events = append(events, ev)
		}
		return events
	}

	ev := core.KeyEvent{Alt: k.Alt}
	switch k.Type {
	case tea.KeySpace:
		ev.Code, ev.Rune = core.KeySpace, ' '
	case tea.KeyEnter:
		ev.Code = core.KeyEnter
	case tea.KeyTab:
		ev.Code = core.KeyTab
	case tea.KeyBackspace:
		ev.Code = core.KeyBackspace
	case tea.KeyDelete:
		ev.Code = core.KeyDelete
	case tea.KeyEsc:
		ev.Code = core.KeyEscape
	case tea.KeyLeft:
		ev.Code = core.KeyLeft
	case tea.KeyRight:
		ev.Code = core.KeyRight
	case tea.KeyUp:
		ev.Code = core.KeyUp
	case tea.KeyDown:
		ev.Code = core.KeyDown
	case tea.KeyShiftLeft:
		ev.Code, ev.Shift = core.KeyLeft, true
	case tea.KeyShiftRight:
		ev.Code, ev.Shift = core.KeyRight, true
	case tea.KeyHome:
		ev.Code = core.KeyHome
	case tea.KeyShiftHome:
		ev.Code, ev.Shift = core.KeyHome, true
	case tea.KeyEnd:
		ev.Code = core.KeyEnd
	case tea.KeyShiftEnd:
		ev.Code, ev.Shift = core.KeyEnd, true
	case tea.KeyPgUp:
		ev.Code = core.KeyPageUp
	case tea.KeyPgDown:
		ev.Code = core.KeyPageDown
	case tea.KeyF4:
		ev.Code = core.KeyF4
	default:
		return nil
	}
	return []core.KeyEvent{ev}
}

// KeyMap defines the window-level key bindings. Every other key goes to
// the console when it is open, or to the world otherwise.
type KeyMap struct {
	Console    key.Binding
	Cancel     key.Binding
	Quit       key.Binding
	Screenshot key.Binding
	History    key.Binding
	Submit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Console, k.Cancel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Console, k.Submit, k.History},
		{k.Cancel, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Console: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "console"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		History: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("up/down", "history"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
	}
}
