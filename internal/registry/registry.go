// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the engine
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
)

// Game is the interface all panel games implement.
// Games contain pure logic: they never touch the device. The engine
// serializes every call, so implementations need no locking of their own.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "tictactoe").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Layout returns the cells the game uses. It does not change after
	// construction.
	Layout() *core.Layout

	// Init resets the game to its starting state and returns the full
	// picture of every layout cell.
	Init(cfg core.RuntimeConfig, now time.Time) core.Frame

	// OnInput handles a press or release of a layout cell.
	OnInput(ev core.Event, now time.Time) core.StepResult

	// OnTick advances timers and automata to now.
	OnTick(now time.Time) core.StepResult

	// State returns the current score and outcome.
	State() core.GameState
}

// PainterAware is implemented by games that paint from background tasks,
// such as lane animations.
type PainterAware interface {
	AttachPainter(p core.Painter)
}

// Stopper is implemented by games owning background tasks that must be
// joined on shutdown.
type Stopper interface {
	Stop()
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game for the configured panel.
type Factory func(cfg *config.Config) (Game, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered or the factory rejects
// the configuration.
func Create(id string, cfg *config.Config) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: create %s: %w", id, err)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
