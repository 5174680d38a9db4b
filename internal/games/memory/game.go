// Package memory implements a memory match game on a 4x4 block of cells:
// eight pairs of face-down cards, flipped two at a time.
package memory

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "memory"

const size = 4

// Symbols are the card faces; each appears twice.
var Symbols = []string{"Carrot", "Leek", "Tomato", "Kale", "Avocado", "Eggplnt", "Corn", "Potato"}

var (
	hiddenSpec = core.Spec("?", core.FontHuge, core.LightBlue)
	clearSpec  = core.Spec("Clear!", core.FontLarge, core.Green)
	resetSpec  = core.Spec("Reset", core.FontLarge, core.OrangeRed)
)

// Game implements memory match.
type Game struct {
	layout *core.Layout
	dwell  time.Duration

	cards      map[int]string // board index -> symbol
	flipped    mapset.Set[int]
	solved     mapset.Set[int]
	selections int
	hideAt     time.Time // non-zero while a mismatched pair is shown
	state      core.GameState
}

func init() {
	registry.Register(ID, "Memory Match", func(cfg *config.Config) (registry.Game, error) {
		return New(cfg.Panel.Grid(), cfg.Memory)
	})
}

// New creates a game for the panel. The board is the left 4x4 block; the
// selection counter sits in the top-right corner and reset in the
// bottom-right corner.
func New(p core.Panel, cfg config.MemoryConfig) (*Game, error) {
	if !p.Fits(size+1, size) {
		return nil, fmt.Errorf("memory: panel %dx%d too small, need %dx%d", p.Cols, p.Rows, size+1, size)
	}
	layout, err := core.NewLayout(p.CellCount(), p.Block(0, 0, size, size), map[string]int{
		core.ControlStatus: p.Key(0, p.Cols-1),
		core.ControlReset:  p.Key(p.Rows-1, p.Cols-1),
	})
	if err != nil {
		return nil, err
	}
	return &Game{
		layout:  layout,
		dwell:   cfg.MismatchDwell,
		cards:   make(map[int]string),
		flipped: mapset.New[int](),
		solved:  mapset.New[int](),
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Memory Match" }

// Layout returns the cell layout.
func (g *Game) Layout() *core.Layout { return g.layout }

// State returns the current state. Score is the number of selections.
func (g *Game) State() core.GameState { return g.state }

// Init deals a freshly shuffled deck face down.
func (g *Game) Init(cfg core.RuntimeConfig, now time.Time) core.Frame {
	rng := rand.New(rand.NewSource(cfg.Seed))

	deck := make([]string, 0, 2*len(Symbols))
	deck = append(deck, Symbols...)
	deck = append(deck, Symbols...)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	g.cards = make(map[int]string, len(deck))
	for i, idx := range g.layout.Board() {
		g.cards[idx] = deck[i]
	}
	g.flipped = mapset.New[int]()
	g.solved = mapset.New[int]()
	g.selections = 0
	g.hideAt = time.Time{}
	g.state = core.GameState{}

	f := core.NewFrame()
	f.Fill(g.layout.Board(), hiddenSpec)
	g.setControl(&f, core.ControlStatus, g.counterSpec())
	g.setControl(&f, core.ControlReset, resetSpec)
	return f
}

func (g *Game) setControl(f *core.Frame, name string, spec core.VisualSpec) {
	if idx, err := g.layout.Control(name); err == nil {
		f.Set(idx, spec)
	}
}

func (g *Game) counterSpec() core.VisualSpec {
	return core.Spec(strconv.Itoa(g.selections), core.FontLarge, core.SteelBlue)
}

func faceSpec(symbol string) core.VisualSpec {
	return core.Spec(symbol, core.FontSmall, core.Black)
}

// OnInput flips a face-down card. While a mismatched pair is on show,
// board presses are ignored.
func (g *Game) OnInput(ev core.Event, now time.Time) core.StepResult {
	f := core.NewFrame()
	if !ev.Pressed || g.state.Terminal() || !g.hideAt.IsZero() {
		return core.StepResult{Frame: f, State: g.state}
	}
	if !g.layout.IsBoard(ev.Index) || g.flipped.Has(ev.Index) || g.solved.Has(ev.Index) {
		return core.StepResult{Frame: f, State: g.state}
	}

	g.selections++
	g.state.Score = g.selections
	g.flipped.Put(ev.Index)
	f.Set(ev.Index, faceSpec(g.cards[ev.Index]))
	g.setControl(&f, core.ControlStatus, g.counterSpec())

	if g.flipped.Size() < 2 {
		return core.StepResult{Frame: f, State: g.state}
	}

	pair := g.flippedPair()
	if g.cards[pair[0]] != g.cards[pair[1]] {
		g.hideAt = now.Add(g.dwell)
		return core.StepResult{Frame: f, State: g.state}
	}

	g.solved.Put(pair[0])
	g.solved.Put(pair[1])
	g.flipped = mapset.New[int]()
	if g.solved.Size() == len(g.cards) {
		g.state.Outcome = core.OutcomeWin
		f.Fill(g.layout.Board(), clearSpec)
	}
	return core.StepResult{Frame: f, State: g.state}
}

// OnTick turns a mismatched pair back over once its dwell has passed.
func (g *Game) OnTick(now time.Time) core.StepResult {
	f := core.NewFrame()
	if g.hideAt.IsZero() || now.Before(g.hideAt) {
		return core.StepResult{Frame: f, State: g.state}
	}

	g.flipped.Each(func(idx int) {
		f.Set(idx, hiddenSpec)
	})
	g.flipped = mapset.New[int]()
	g.hideAt = time.Time{}
	return core.StepResult{Frame: f, State: g.state}
}

func (g *Game) flippedPair() [2]int {
	var pair [2]int
	i := 0
	g.flipped.Each(func(idx int) {
		if i < 2 {
			pair[i] = idx
		}
		i++
	})
	return pair
}

// Flipped returns how many cards are face up and unsolved.
func (g *Game) Flipped() int { return g.flipped.Size() }

// Solved returns how many cards are matched.
func (g *Game) Solved() int { return g.solved.Size() }

// Card returns the symbol dealt to a board cell.
func (g *Game) Card(index int) string { return g.cards[index] }

// Selections returns the number of cards flipped since the deal.
func (g *Game) Selections() int { return g.selections }
