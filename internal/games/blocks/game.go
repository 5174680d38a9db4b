// Package blocks implements a small falling-blocks puzzle on a 4x4 well.
// Pieces are single cells; a full row clears and scores.
package blocks

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "blocks"

const size = 4

var spawnAt = core.Pos{Row: 0, Col: 1}

// Piece colors. A board cell holds the index into this slice plus one.
var colors = []core.RGB{core.Red, core.Blue, core.BrightGreen, core.Yellow}

var (
	emptySpec    = core.Blank(core.Black)
	gameOverSpec = core.Spec("Game\nOver", core.FontLarge, core.Black).WithForeground(core.Red)
)

type move int

const (
	moveNone move = iota
	moveLeft
	moveRight
	moveRotate
)

// Game implements falling blocks.
type Game struct {
	layout *core.Layout
	cfg    config.BlocksConfig
	rng    *rand.Rand

	well     [size][size]int
	piece    core.Pos
	kind     int
	pending  move
	nextFall time.Time
	lines    int
	state    core.GameState
}

func init() {
	registry.Register(ID, "Falling Blocks", func(cfg *config.Config) (registry.Game, error) {
		return New(cfg.Panel.Grid(), cfg.Blocks)
	})
}

// New creates a game for the panel: the well is the left 4x4 block, left
// and right sit beside its top row with rotate below right, and reset, which
// also shows the score, is in the bottom-right corner.
func New(p core.Panel, cfg config.BlocksConfig) (*Game, error) {
	if !p.Fits(size+2, size) {
		return nil, fmt.Errorf("blocks: panel %dx%d too small, need %dx%d", p.Cols, p.Rows, size+2, size)
	}
	layout, err := core.NewLayout(p.CellCount(), p.Block(0, 0, size, size), map[string]int{
		core.ControlLeft:   p.Key(0, size),
		core.ControlRight:  p.Key(0, size+1),
		core.ControlRotate: p.Key(1, size+1),
		core.ControlReset:  p.Key(p.Rows-1, p.Cols-1),
	})
	if err != nil {
		return nil, err
	}
	return &Game{
		layout: layout,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(1)),
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Falling Blocks" }

// Layout returns the cell layout.
func (g *Game) Layout() *core.Layout { return g.layout }

// State returns the current state.
func (g *Game) State() core.GameState { return g.state }

// Piece returns the position of the falling piece.
func (g *Game) Piece() core.Pos { return g.piece }

// Filled reports whether a well cell holds a locked block.
func (g *Game) Filled(p core.Pos) bool { return g.well[p.Row][p.Col] != 0 }

// Lines returns how many rows have been cleared.
func (g *Game) Lines() int { return g.lines }

// Init empties the well and drops the first piece.
func (g *Game) Init(cfg core.RuntimeConfig, now time.Time) core.Frame {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.well = [size][size]int{}
	g.pending = moveNone
	g.lines = 0
	g.state = core.GameState{}
	g.nextFall = now.Add(g.cfg.GravityInterval)
	g.spawn()

	f := g.draw()
	g.drawControls(&f)
	return f
}

// OnInput queues a move for the next tick. A later press replaces an
// earlier one that has not been applied yet.
func (g *Game) OnInput(ev core.Event, _ time.Time) core.StepResult {
	f := core.NewFrame()
	if !ev.Pressed || g.state.Terminal() {
		return core.StepResult{Frame: f, State: g.state}
	}
	name, ok := g.layout.ControlName(ev.Index)
	if !ok {
		return core.StepResult{Frame: f, State: g.state}
	}

	switch name {
	case core.ControlLeft:
		g.pending = moveLeft
	case core.ControlRight:
		g.pending = moveRight
	case core.ControlRotate:
		g.pending = moveRotate
	}
	return core.StepResult{Frame: f, State: g.state}
}

// OnTick applies the queued move, then lets gravity pull the piece down one
// row per interval. A piece that cannot fall locks in place.
func (g *Game) OnTick(now time.Time) core.StepResult {
	if g.state.Terminal() {
		return core.StepResult{Frame: core.NewFrame(), State: g.state}
	}

	switch g.pending {
	case moveLeft:
		g.shift(-1)
	case moveRight:
		g.shift(1)
	case moveRotate:
		// Single-cell pieces look the same in every orientation.
	}
	g.pending = moveNone

	if !now.Before(g.nextFall) {
		g.nextFall = now.Add(g.cfg.GravityInterval)
		below := g.piece.Add(1, 0)
		if g.free(below) {
			g.piece = below
		} else {
			g.lock()
		}
	}

	f := g.draw()
	if g.state.Terminal() {
		g.drawControls(&f)
	}
	return core.StepResult{Frame: f, State: g.state}
}

func (g *Game) shift(dCol int) {
	if next := g.piece.Add(0, dCol); g.free(next) {
		g.piece = next
	}
}

func (g *Game) free(p core.Pos) bool {
	if p.Row < 0 || p.Row >= size || p.Col < 0 || p.Col >= size {
		return false
	}
	return g.well[p.Row][p.Col] == 0
}

func (g *Game) lock() {
	g.well[g.piece.Row][g.piece.Col] = g.kind
	g.clearLines()
	if g.well[spawnAt.Row][spawnAt.Col] != 0 {
		g.state.Outcome = core.OutcomeOver
		return
	}
	g.spawn()
}

func (g *Game) spawn() {
	g.piece = spawnAt
	g.kind = g.rng.Intn(len(colors)) + 1
}

// clearLines removes every full row, dropping the rows above it.
func (g *Game) clearLines() {
	dst := size - 1
	for src := size - 1; src >= 0; src-- {
		if g.full(src) {
			g.lines++
			g.state.Score += g.cfg.LinePoints
			continue
		}
		g.well[dst] = g.well[src]
		dst--
	}
	for ; dst >= 0; dst-- {
		g.well[dst] = [size]int{}
	}
}

func (g *Game) full(row int) bool {
	for _, v := range g.well[row] {
		if v == 0 {
			return false
		}
	}
	return true
}

func (g *Game) draw() core.Frame {
	f := core.NewFrame()
	reset, _ := g.layout.Control(core.ControlReset)
	score := fmt.Sprintf("Score:\n%d", g.state.Score)

	if g.state.Terminal() {
		f.Fill(g.layout.Board(), gameOverSpec)
		f.Set(reset, core.Spec(score, core.FontSmall, core.Red))
		return f
	}

	for r := range size {
		for c := range size {
			p := core.Pos{Row: r, Col: c}
			spec := emptySpec
			switch {
			case g.well[r][c] != 0:
				spec = core.Blank(colors[g.well[r][c]-1])
			case p == g.piece:
				spec = core.Blank(colors[g.kind-1])
			}
			f.Set(g.layout.At(p), spec)
		}
	}
	f.Set(reset, core.Spec(score, core.FontSmall, core.OrangeRed))
	return f
}

// drawControls paints the move keys, dimmed once the game is over.
func (g *Game) drawControls(f *core.Frame) {
	bg, accent := core.Black, core.Orange
	if g.state.Terminal() {
		bg, accent = core.Graphite, core.Graphite
	}
	for name, spec := range map[string]core.VisualSpec{
		core.ControlLeft:   core.Spec("<", core.FontHuge, bg),
		core.ControlRight:  core.Spec(">", core.FontHuge, bg),
		core.ControlRotate: core.Spec("Rot", core.FontLarge, accent),
	} {
		if idx, err := g.layout.Control(name); err == nil {
			f.Set(idx, spec)
		}
	}
}
