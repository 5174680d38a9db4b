// Package fortune turns every cell of the panel into a fortune slip: a
// press shuffles for a moment, then reveals a random fortune.
package fortune

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "fortune"

var (
	idleSpec      = core.Spec("Fortune", core.FontSmall, core.Charcoal)
	shufflingSpec = core.Spec("...", core.FontLarge, core.Charcoal)
)

// Game implements the fortune board. It never ends; the score counts the
// fortunes drawn.
type Game struct {
	layout   *core.Layout
	cfg      config.FortuneConfig
	rng      *rand.Rand
	revealAt map[int]time.Time
	shown    map[int]string
	state    core.GameState
}

func init() {
	registry.Register(ID, "Fortune", func(cfg *config.Config) (registry.Game, error) {
		return New(cfg.Panel.Grid(), cfg.Fortune)
	})
}

// New creates a board covering the whole panel.
func New(p core.Panel, cfg config.FortuneConfig) (*Game, error) {
	if len(cfg.Fortunes) == 0 {
		return nil, fmt.Errorf("fortune: no fortunes configured")
	}
	layout, err := core.NewLayout(p.CellCount(), p.Block(0, 0, p.Rows, p.Cols), nil)
	if err != nil {
		return nil, err
	}
	return &Game{
		layout:   layout,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(1)),
		revealAt: make(map[int]time.Time),
		shown:    make(map[int]string),
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Fortune" }

// Layout returns the cell layout.
func (g *Game) Layout() *core.Layout { return g.layout }

// State returns the current state.
func (g *Game) State() core.GameState { return g.state }

// Shown returns the fortune revealed on a cell, if any.
func (g *Game) Shown(index int) (string, bool) {
	s, ok := g.shown[index]
	return s, ok
}

// Init clears every slip.
func (g *Game) Init(cfg core.RuntimeConfig, _ time.Time) core.Frame {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.revealAt = make(map[int]time.Time)
	g.shown = make(map[int]string)
	g.state = core.GameState{}

	f := core.NewFrame()
	f.Fill(g.layout.Board(), idleSpec)
	return f
}

// OnInput starts shuffling the pressed cell. Pressing a cell that is
// already shuffling does nothing; a revealed cell draws again.
func (g *Game) OnInput(ev core.Event, now time.Time) core.StepResult {
	f := core.NewFrame()
	if !ev.Pressed || !g.layout.IsBoard(ev.Index) {
		return core.StepResult{Frame: f, State: g.state}
	}
	if _, busy := g.revealAt[ev.Index]; busy {
		return core.StepResult{Frame: f, State: g.state}
	}

	delete(g.shown, ev.Index)
	g.revealAt[ev.Index] = now.Add(g.cfg.RevealDelay)
	f.Set(ev.Index, shufflingSpec)
	return core.StepResult{Frame: f, State: g.state}
}

// OnTick reveals every cell whose shuffle time is over.
func (g *Game) OnTick(now time.Time) core.StepResult {
	f := core.NewFrame()
	for _, idx := range g.layout.Board() {
		at, ok := g.revealAt[idx]
		if !ok || now.Before(at) {
			continue
		}
		delete(g.revealAt, idx)
		text := g.cfg.Fortunes[g.rng.Intn(len(g.cfg.Fortunes))]
		g.shown[idx] = text
		g.state.Score++
		f.Set(idx, core.Spec(text, core.FontMedium, core.Navy).WithForeground(core.Gold))
	}
	return core.StepResult{Frame: f, State: g.state}
}
