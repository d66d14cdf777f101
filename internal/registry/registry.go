// Package registry provides global registries for engine backends and
// bundled examples. Both register themselves in init() functions, so the
// facade and the CLI can discover them without hardcoded dependencies.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pilas/internal/config"
	"github.com/vovakirdan/tui-pilas/internal/storage"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

var (
	ErrUnknownEngine  = errors.New("registry: unknown engine")
	ErrUnknownExample = errors.New("registry: unknown example")
)

// Engine drives a world: it owns the main loop, feeds key events into the
// world, and draws it. Run blocks until the world quits, the user closes
// the window, or ctx is cancelled.
type Engine interface {
	// Name returns the identifier used in config and on the command line.
	Name() string

	// Run drives w until it stops.
	Run(ctx context.Context, w *world.World, env Env) error
}

// Env is what an engine may use besides the world.
type Env struct {
	Config config.Config
	Store  *storage.Store // nil when history is not persisted
	Logger *log.Logger
	// Console opens the interactive console with the world.
	Console bool
}

// EngineFactory creates a new engine instance.
type EngineFactory func() Engine

// Example is a bundled demo world.
type Example struct {
	ID          string
	Title       string
	Description string
	// Setup populates a freshly created world.
	Setup func(w *world.World) error
}

var (
	engines  = make(map[string]EngineFactory)
	examples = make(map[string]Example)
	mu       sync.RWMutex
)

// RegisterEngine adds an engine factory.
// Panics if an engine with the same name is already registered.
func RegisterEngine(name string, f EngineFactory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := engines[name]; exists {
		panic(fmt.Sprintf("registry: engine %q already registered", name))
	}
	engines[name] = f
}

// Engines returns the names of all registered engines, sorted.
func Engines() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEngine instantiates an engine by name. The error for an unknown name
// wraps ErrUnknownEngine and lists the available engines.
func NewEngine(name string) (Engine, error) {
	mu.RLock()
	f, ok := engines[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownEngine, name, strings.Join(Engines(), ", "))
	}
	return f(), nil
}

// RegisterExample adds an example.
// Panics if an example with the same ID is already registered.
func RegisterExample(ex Example) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := examples[ex.ID]; exists {
		panic(fmt.Sprintf("registry: example %q already registered", ex.ID))
	}
	examples[ex.ID] = ex
}

// Examples returns all registered examples, sorted by ID.
func Examples() []Example {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Example, 0, len(examples))
	for _, ex := range examples {
		result = append(result, ex)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// LookupExample returns the example registered under id.
func LookupExample(id string) (Example, error) {
	mu.RLock()
	defer mu.RUnlock()

	ex, ok := examples[id]
	if !ok {
		return Example{}, fmt.Errorf("%w %q", ErrUnknownExample, id)
	}
	return ex, nil
}
