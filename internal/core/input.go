package core

import (
	"fmt"
	"sort"
)

// KeyCode identifies a physical key, abstracted from the platform
// (terminal escape sequences, ebiten keys).
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyRune         // printable character, see KeyEvent.Rune
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF4
)

var keyNames = map[KeyCode]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeySpace:     "space",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyEscape:    "esc",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyF4:        "f4",
}

// String returns a human-readable name for the key.
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// KeyEvent is a discrete key press or release with its modifier flags.
type KeyEvent struct {
	Code  KeyCode
	Rune  rune // set for KeyRune and KeySpace
	Shift bool
	Ctrl  bool
	Alt   bool
}

// RuneKey builds the event for typing a single character.
func RuneKey(r rune) KeyEvent {
	if r == ' ' {
		return KeyEvent{Code: KeySpace, Rune: ' '}
	}
	return KeyEvent{Code: KeyRune, Rune: r}
}

// Printable reports whether the event inserts text.
func (e KeyEvent) Printable() bool {
	return (e.Code == KeyRune || e.Code == KeySpace) && e.Rune != 0 && !e.Ctrl && !e.Alt
}

// Control is a simple keyboard control: four directions and one button,
// each true while its key is held down.
//
//	if w.Control().Left {
//		ship.X -= 5
//	}
type Control struct {
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Button bool
}

// OnKeyPressed marks the control mapped to the event's key as held.
func (c *Control) OnKeyPressed(ev KeyEvent) {
	c.set(ev.Code, true)
}

// OnKeyReleased marks the control mapped to the event's key as released.
func (c *Control) OnKeyReleased(ev KeyEvent) {
	c.set(ev.Code, false)
}

// Reset releases everything.
func (c *Control) Reset() {
	*c = Control{}
}

func (c *Control) set(code KeyCode, state bool) {
	switch code {
	case KeyLeft:
		c.Left = state
	case KeyRight:
		c.Right = state
	case KeyUp:
		c.Up = state
	case KeyDown:
		c.Down = state
	case KeySpace:
		c.Button = state
	}
}

// String renders the whole control state at once.
func (c Control) String() string {
	return fmt.Sprintf("<Control left: %t right: %t up: %t down: %t button: %t>",
		c.Left, c.Right, c.Up, c.Down, c.Button)
}

// KeyHold synthesizes key releases for platforms that only report presses.
// A key counts as held until it has not repeated for holdTicks ticks.
type KeyHold struct {
	holdTicks int
	held      map[KeyCode]int
}

// NewKeyHold creates a tracker releasing keys after holdTicks silent ticks.
func NewKeyHold(holdTicks int) *KeyHold {
	if holdTicks <= 0 {
		holdTicks = 1
	}
	return &KeyHold{
		holdTicks: holdTicks,
		held:      make(map[KeyCode]int),
	}
}

// Press refreshes the key's countdown. Returns true if the key was not
// already held, i.e. a press event should be emitted.
func (k *KeyHold) Press(code KeyCode) bool {
	_, already := k.held[code]
	k.held[code] = k.holdTicks
	return !already
}

// Tick advances one tick and returns the keys released on it, sorted.
func (k *KeyHold) Tick() []KeyCode {
	var released []KeyCode
	for code, left := range k.held {
		left--
		if left <= 0 {
			delete(k.held, code)
			released = append(released, code)
			continue
		}
		k.held[code] = left
	}
	sort.Slice(released, func(i, j int) bool { return released[i] < released[j] })
	return released
}

// Held reports whether the key is currently considered down.
func (k *KeyHold) Held(code KeyCode) bool {
	_, ok := k.held[code]
	return ok
}

// HoldTicks returns the release delay.
func (k *KeyHold) HoldTicks() int {
	return k.holdTicks
}
