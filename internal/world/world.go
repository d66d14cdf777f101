// Package world holds the state a pilas program manipulates: the window
// size, the actors and their skills, the current scene, the keyboard
// control, and the notice line. A World is driven by one goroutine (an
// engine); only Quit and Quitting are safe to call from others.
package world

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/vovakirdan/tui-pilas/internal/core"
	"github.com/vovakirdan/tui-pilas/internal/events"
)

var (
	ErrDuplicateActor = errors.New("world: actor already exists")
	ErrUnknownActor   = errors.New("world: unknown actor")
	ErrUnknownKind    = errors.New("world: unknown actor kind")
	ErrUnknownSkill   = errors.New("world: unknown skill")
)

// Scene is the backdrop actors are drawn on.
type Scene struct {
	Name       string
	Background core.Color
}

// Normal is the plain scene with a solid background.
func Normal(bg core.Color) Scene {
	return Scene{Name: "normal", Background: bg}
}

// World is the pilas window model.
type World struct {
	cfg      core.RuntimeConfig
	initial  Scene
	scene    Scene
	actors   []*Actor
	byName   map[string]*Actor
	control  core.Control
	hub      *events.Hub
	hold     *core.KeyHold
	notifier Notifier
	tick     int
	quitting atomic.Bool
}

// New creates a world with the initial Normal(lightgray) scene.
func New(cfg core.RuntimeConfig) *World {
	def := core.DefaultConfig()
	if cfg.ScreenW <= 0 {
		cfg.ScreenW = def.ScreenW
	}
	if cfg.ScreenH <= 0 {
		cfg.ScreenH = def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.Title == "" {
		cfg.Title = def.Title
	}

	w := &World{
		cfg:     cfg,
		initial: Normal(core.ColorLightGray),
		byName:  make(map[string]*Actor),
		hub:     events.NewHub(),
	}
	w.scene = w.initial
	w.hub.Attach(&w.control)
	return w
}

// Config returns the runtime configuration the world was built with.
func (w *World) Config() core.RuntimeConfig {
	return w.cfg
}

func (w *World) Title() string { return w.cfg.Title }
func (w *World) Width() int    { return w.cfg.ScreenW }
func (w *World) Height() int   { return w.cfg.ScreenH }

// Ticks returns how many steps have run since the last reset.
func (w *World) Ticks() int { return w.tick }

// Resize changes the window size, keeping actors inside it.
func (w *World) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.cfg.ScreenW = width
	w.cfg.ScreenH = height
	for _, a := range w.actors {
		w.keepInside(a)
	}
}

// Events returns the world's signal hub.
func (w *World) Events() *events.Hub {
	return w.hub
}

// Control returns the keyboard control state.
func (w *World) Control() core.Control {
	return w.control
}

// SetHoldTicks makes the world synthesize key releases after n silent
// ticks. Used by hosts without key-release events. n <= 0 disables it.
func (w *World) SetHoldTicks(n int) {
	if n <= 0 {
		w.hold = nil
		return
	}
	w.hold = core.NewKeyHold(n)
}

// PressKey emits a key-pressed event. With key hold enabled, repeats of a
// held key only refresh it.
func (w *World) PressKey(ev core.KeyEvent) {
	if w.hold != nil && !w.hold.Press(ev.Code) {
		return
	}
	w.hub.KeyPressed.Emit(ev)
}

// ReleaseKey emits a key-released event.
func (w *World) ReleaseKey(ev core.KeyEvent) {
	w.hub.KeyReleased.Emit(ev)
}

// Scene returns the current scene.
func (w *World) Scene() Scene {
	return w.scene
}

// SetScene switches to a new scene.
func (w *World) SetScene(s Scene) {
	w.scene = s
}

// SetInitialScene replaces the scene Reset returns to and switches to it.
func (w *World) SetInitialScene(s Scene) {
	w.initial = s
	w.scene = s
}

// Add creates an actor of the given kind at x, y.
func (w *World) Add(kind, name string, x, y int) (*Actor, error) {
	k, ok := LookupKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	if name == "" {
		name = w.freeName(kind)
	}
	if _, exists := w.byName[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateActor, name)
	}

	a := newActor(name, k, x, y)
	w.keepInside(a)
	w.actors = append(w.actors, a)
	w.byName[name] = a
	return a, nil
}

// AddText creates a text actor.
func (w *World) AddText(name, text string, x, y int) (*Actor, error) {
	a, err := w.Add("text", name, x, y)
	if err != nil {
		return nil, err
	}
	a.Text = text
	w.keepInside(a)
	return a, nil
}

func (w *World) freeName(kind string) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s%d", kind, i)
		if _, exists := w.byName[name]; !exists {
			return name
		}
	}
}

// Actor looks an actor up by name.
func (w *World) Actor(name string) (*Actor, error) {
	a, ok := w.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownActor, name)
	}
	return a, nil
}

// Actors returns the actors in creation order.
func (w *World) Actors() []*Actor {
	out := make([]*Actor, len(w.actors))
	copy(out, w.actors)
	return out
}

// Remove deletes an actor.
func (w *World) Remove(name string) error {
	if _, ok := w.byName[name]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownActor, name)
	}
	delete(w.byName, name)
	for i, a := range w.actors {
		if a.Name == name {
			w.actors = append(w.actors[:i], w.actors[i+1:]...)
			break
		}
	}
	return nil
}

// Touching reports whether two actors overlap.
func (w *World) Touching(a, b string) (bool, error) {
	first, err := w.Actor(a)
	if err != nil {
		return false, err
	}
	second, err := w.Actor(b)
	if err != nil {
		return false, err
	}
	return first.Bounds().Intersects(second.Bounds()), nil
}

// Notify shows msg at the bottom of the window, replacing the previous notice.
func (w *World) Notify(msg string) {
	w.notifier.Notify(msg)
}

// Notice returns the current notice.
func (w *World) Notice() string {
	return w.notifier.Notice()
}

// Step advances the simulation by one tick.
func (w *World) Step() {
	w.tick++
	if w.hold != nil {
		for _, code := range w.hold.Tick() {
			w.hub.KeyReleased.Emit(core.KeyEvent{Code: code})
		}
	}

	dt := 1 / float64(w.cfg.TickRate)
	for _, a := range w.Actors() {
		a.update(w, dt)
	}
	w.hub.Tick.Emit(w.tick)
}

// Render draws the scene, the actors, and the notice line into dst.
func (w *World) Render(dst *core.Screen) {
	dst.SetBackground(w.scene.Background)
	dst.Clear()

	for _, a := range w.actors {
		a.draw(dst)
	}

	if notice := w.notifier.Notice(); notice != "" {
		dst.DrawTextColor(1, dst.Height()-1, notice, noticeColor(w.scene.Background))
	}
}

// Reset removes every actor and returns to the initial scene.
func (w *World) Reset() {
	w.actors = nil
	w.byName = make(map[string]*Actor)
	w.scene = w.initial
	w.notifier.Clear()
	w.control.Reset()
	if w.hold != nil {
		w.hold = core.NewKeyHold(w.hold.HoldTicks())
	}
	w.tick = 0
}

// Quit asks the engine driving the world to stop.
func (w *World) Quit() {
	w.quitting.Store(true)
}

// Quitting reports whether Quit has been called.
func (w *World) Quitting() bool {
	return w.quitting.Load()
}

func (w *World) keepInside(a *Actor) {
	b := a.Bounds()
	a.X = core.ClampF(a.X, 0, float64(max(0, w.cfg.ScreenW-b.W)))
	a.Y = core.ClampF(a.Y, 0, float64(max(0, w.cfg.ScreenH-1)))
}

// noticeColor picks a notice colour readable on bg.
func noticeColor(bg core.Color) core.Color {
	switch bg {
	case core.ColorLightGray, core.ColorWhite, core.ColorYellow:
		return core.ColorBlack
	}
	return core.ColorWhite
}
