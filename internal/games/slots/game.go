// Package slots implements a three-reel slot machine. Each reel is a column
// of three cells animated by its own lane goroutine; stop buttons halt the
// reels one at a time and the 3x3 result is checked for any line of three.
package slots

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/lane"
	"github.com/vovakirdan/deck-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "slots"

const reels = 3

var (
	spinSpec  = core.Spec("Spin", core.FontLarge, core.Navy)
	stopSpec  = core.Spec("Stop", core.FontLarge, core.OrangeRed)
	startSpec = core.Spec("Start", core.FontLarge, core.Navy)
)

var symbolColors = map[string]core.RGB{
	"cherry":  core.Red,
	"lemon":   core.Yellow,
	"orange":  core.Orange,
	"grape":   core.SteelBlue,
	"star":    core.Gold,
	"diamond": core.SkyBlue,
}

// SymbolSpec is how a reel cell shows a symbol.
func SymbolSpec(symbol string) core.VisualSpec {
	fg, ok := symbolColors[symbol]
	if !ok {
		fg = core.White
	}
	return core.Spec(symbol, core.FontMedium, core.Black).WithForeground(fg)
}

// Phase is the machine's position in a round.
type Phase int

const (
	PhaseIdle     Phase = iota // showing Spin, waiting for start
	PhaseSpinning              // at least one reel turning
	PhaseReveal                // all reels stopped, final symbols on show
	PhaseResult                // Win!/Lose on show before auto reset
)

// Line identifies a winning triple: "row", "col" or "diag" with its index.
type Line struct {
	Kind string
	N    int
}

// Game implements the slot machine.
type Game struct {
	layout *core.Layout
	cfg    config.SlotsConfig
	lanes  [reels]*lane.Animator

	painter core.Painter
	rng     *rand.Rand
	phase   Phase
	until   time.Time // deadline of the reveal or result phase
	state   core.GameState
}

func init() {
	registry.Register(ID, "Slot Machine", func(cfg *config.Config) (registry.Game, error) {
		return New(cfg.Panel.Grid(), cfg.Slots)
	})
}

// New creates a machine for the panel: reels in the top-left 3x3 block,
// stop buttons below each reel and start in the bottom-right corner.
func New(p core.Panel, cfg config.SlotsConfig) (*Game, error) {
	if !p.Fits(reels+1, reels+1) {
		return nil, fmt.Errorf("slots: panel %dx%d too small, need %dx%d", p.Cols, p.Rows, reels+1, reels+1)
	}
	if len(cfg.Symbols) < 2 {
		return nil, fmt.Errorf("slots: need at least 2 symbols, got %d", len(cfg.Symbols))
	}

	controls := map[string]int{
		core.ControlStart: p.Key(p.Rows-1, p.Cols-1),
	}
	for c := range reels {
		controls[core.ControlStopLane(c)] = p.Key(reels, c)
	}
	layout, err := core.NewLayout(p.CellCount(), p.Block(0, 0, reels, reels), controls)
	if err != nil {
		return nil, err
	}

	g := &Game{
		layout: layout,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(1)),
	}
	forward := core.PainterFunc(g.paint)
	for c := range reels {
		cells := make([]int, reels)
		for r := range reels {
			cells[r] = p.Key(r, c)
		}
		g.lanes[c] = lane.New(cells, cfg.Symbols, lane.Options{
			FrameInterval: cfg.FrameInterval,
			Repeats:       cfg.Repeats,
			Style:         SymbolSpec,
			Painter:       forward,
		})
	}
	return g, nil
}

func (g *Game) paint(index int, spec core.VisualSpec) error {
	if g.painter == nil {
		return nil
	}
	return g.painter.Paint(index, spec)
}

// AttachPainter sets where reel frames are painted. It must be called
// before the first round starts.
func (g *Game) AttachPainter(p core.Painter) { g.painter = p }

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Slot Machine" }

// Layout returns the cell layout.
func (g *Game) Layout() *core.Layout { return g.layout }

// State returns the current state.
func (g *Game) State() core.GameState { return g.state }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Lane returns the animator of reel c.
func (g *Game) Lane(c int) *lane.Animator { return g.lanes[c] }

// Init halts any spinning reel and shows the idle machine.
func (g *Game) Init(cfg core.RuntimeConfig, now time.Time) core.Frame {
	g.Stop()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.phase = PhaseIdle
	g.until = time.Time{}
	g.state = core.GameState{}

	f := core.NewFrame()
	f.Fill(g.layout.Board(), spinSpec)
	for c := range reels {
		if idx, err := g.layout.Control(core.ControlStopLane(c)); err == nil {
			f.Set(idx, stopSpec)
		}
	}
	if idx, err := g.layout.Control(core.ControlStart); err == nil {
		f.Set(idx, startSpec)
	}
	return f
}

// Stop halts every reel and waits for the lane goroutines to exit.
func (g *Game) Stop() {
	for _, l := range g.lanes {
		l.Stop()
	}
}

// OnInput starts a round from idle, or stops one reel while spinning.
// Everything else is ignored.
func (g *Game) OnInput(ev core.Event, now time.Time) core.StepResult {
	f := core.NewFrame()
	if !ev.Pressed {
		return core.StepResult{Frame: f, State: g.state}
	}
	name, ok := g.layout.ControlName(ev.Index)
	if !ok {
		return core.StepResult{Frame: f, State: g.state}
	}

	switch {
	case name == core.ControlStart && g.phase == PhaseIdle:
		g.phase = PhaseSpinning
		g.state = core.GameState{}
		for _, l := range g.lanes {
			l.Start(g.rng.Int63())
		}

	case g.phase == PhaseSpinning:
		for c, l := range g.lanes {
			if name == core.ControlStopLane(c) {
				l.Stop()
			}
		}
		if g.allStopped() {
			g.phase = PhaseReveal
			g.until = now.Add(g.cfg.RevealDelay)
		}
	}
	return core.StepResult{Frame: f, State: g.state}
}

// OnTick moves from reveal to result and from result back to idle once
// their durations pass.
func (g *Game) OnTick(now time.Time) core.StepResult {
	f := core.NewFrame()
	if g.until.IsZero() || now.Before(g.until) {
		return core.StepResult{Frame: f, State: g.state}
	}

	switch g.phase {
	case PhaseReveal:
		var grid [reels][]string
		for c, l := range g.lanes {
			grid[c] = l.Result()
		}
		text := "Lose"
		g.state = core.GameState{Outcome: core.OutcomeLose}
		if _, ok := Evaluate(grid); ok {
			text = "Win!"
			g.state = core.GameState{Outcome: core.OutcomeWin}
		}
		f.Fill(g.layout.Board(), core.Spec(text, core.FontLarge, core.Green))
		g.phase = PhaseResult
		g.until = now.Add(g.cfg.ResultDuration)

	case PhaseResult:
		f.Fill(g.layout.Board(), spinSpec)
		g.phase = PhaseIdle
		g.until = time.Time{}
		g.state = core.GameState{}
	}
	return core.StepResult{Frame: f, State: g.state}
}

func (g *Game) allStopped() bool {
	for _, l := range g.lanes {
		if l.Spinning() {
			return false
		}
	}
	return true
}

// Evaluate checks the stopped reels for three equal symbols in a row,
// column or diagonal, in that order. lanes[c][r] is the symbol of reel c at
// row r.
func Evaluate(lanes [reels][]string) (Line, bool) {
	at := func(r, c int) string {
		if r >= len(lanes[c]) {
			return ""
		}
		return lanes[c][r]
	}
	same := func(a, b, c string) bool {
		return a != "" && a == b && b == c
	}

	for r := range reels {
		if same(at(r, 0), at(r, 1), at(r, 2)) {
			return Line{Kind: "row", N: r}, true
		}
	}
	for c := range reels {
		if same(at(0, c), at(1, c), at(2, c)) {
			return Line{Kind: "col", N: c}, true
		}
	}
	if same(at(0, 0), at(1, 1), at(2, 2)) {
		return Line{Kind: "diag", N: 0}, true
	}
	if same(at(0, 2), at(1, 1), at(2, 0)) {
		return Line{Kind: "diag", N: 1}, true
	}
	return Line{}, false
}
