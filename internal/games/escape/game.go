// Package escape implements snake escape: a snake climbs a walled 4x4 board
// one row per step and must open the door in the top row to get out.
package escape

import (
	"fmt"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "snake"

const size = 4

// Board landmarks. Columns 0 and 3 are walls.
var (
	door  = core.Pos{Row: 0, Col: 2}
	start = core.Pos{Row: size - 1, Col: 1}
)

var (
	wallSpec     = core.Blank(core.Gray)
	floorSpec    = core.Blank(core.LightGray)
	headSpec     = core.Spec("@", core.FontHuge, core.Red)
	bodySpec     = core.Spec("o", core.FontHuge, core.BrightGreen)
	doorSpec     = core.Spec("Door", core.FontMedium, core.Blue)
	doorOpenSpec = core.Spec("Door", core.FontMedium, core.Green)
	lostSpec     = core.Spec("Game\nOver", core.FontLarge, core.Red)
	wonSpec      = core.Spec("Free!", core.FontLarge, core.Green)
	leftSpec     = core.Spec("<", core.FontHuge, core.Black)
	rightSpec    = core.Spec(">", core.FontHuge, core.Black)
	openSpec     = core.Spec("Open", core.FontLarge, core.Orange)
	resetSpec    = core.Spec("Reset", core.FontLarge, core.OrangeRed)
)

// Game implements snake escape.
type Game struct {
	layout *core.Layout
	cfg    config.SnakeConfig

	body        []core.Pos // tail first, head last
	nextCol     int
	pendingOpen bool
	doorOpen    bool
	nextStep    time.Time
	state       core.GameState
}

func init() {
	registry.Register(ID, "Snake Escape", func(cfg *config.Config) (registry.Game, error) {
		return New(cfg.Panel.Grid(), cfg.Snake)
	})
}

// New creates a game for the panel. The board is the left 4x4 block; left
// and right sit next to it on the top row with open below right, and reset
// is in the bottom-right corner.
func New(p core.Panel, cfg config.SnakeConfig) (*Game, error) {
	if !p.Fits(size+2, size) {
		return nil, fmt.Errorf("snake: panel %dx%d too small, need %dx%d", p.Cols, p.Rows, size+2, size)
	}
	layout, err := core.NewLayout(p.CellCount(), p.Block(0, 0, size, size), map[string]int{
		core.ControlLeft:  p.Key(0, size),
		core.ControlRight: p.Key(0, size+1),
		core.ControlOpen:  p.Key(1, size+1),
		core.ControlReset: p.Key(p.Rows-1, p.Cols-1),
	})
	if err != nil {
		return nil, err
	}
	return &Game{layout: layout, cfg: cfg}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Snake Escape" }

// Layout returns the cell layout.
func (g *Game) Layout() *core.Layout { return g.layout }

// State returns the current state.
func (g *Game) State() core.GameState { return g.state }

// Head returns the position of the snake's head.
func (g *Game) Head() core.Pos { return g.body[len(g.body)-1] }

// Body returns the snake from tail to head.
func (g *Game) Body() []core.Pos { return append([]core.Pos(nil), g.body...) }

// NextColumn returns the column the next step moves into.
func (g *Game) NextColumn() int { return g.nextCol }

// DoorOpen reports whether the door has been opened.
func (g *Game) DoorOpen() bool { return g.doorOpen }

// Init places the snake at the bottom and schedules the first step.
func (g *Game) Init(_ core.RuntimeConfig, now time.Time) core.Frame {
	g.body = []core.Pos{start}
	g.nextCol = start.Col
	g.pendingOpen = false
	g.doorOpen = false
	g.nextStep = now.Add(g.cfg.StepInterval)
	g.state = core.GameState{}

	f := g.draw()
	g.drawControls(&f)
	return f
}

// OnInput records the requested column or door action for the next tick.
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
		g.nextCol = 1
	case core.ControlRight:
		g.nextCol = 2
	case core.ControlOpen:
		g.pendingOpen = true
	}
	return core.StepResult{Frame: f, State: g.state}
}

// OnTick applies a pending door action, then advances the snake one row
// when the step interval has passed. The snake waits in the top row.
func (g *Game) OnTick(now time.Time) core.StepResult {
	if g.state.Terminal() {
		return core.StepResult{Frame: core.NewFrame(), State: g.state}
	}

	if g.pendingOpen {
		g.pendingOpen = false
		// The door only opens once the head has reached the top row.
		if head := g.Head(); head.Row == 0 {
			g.doorOpen = true
			if head == door {
				g.state.Outcome = core.OutcomeWin
			} else {
				g.state.Outcome = core.OutcomeLose
			}
		}
	}

	if !g.state.Terminal() && !now.Before(g.nextStep) {
		g.nextStep = now.Add(g.cfg.StepInterval)
		if head := g.Head(); head.Row > 0 {
			g.body = append(g.body, core.Pos{Row: head.Row - 1, Col: g.nextCol})
			g.state.Score = len(g.body) - 1
		}
	}

	return core.StepResult{Frame: g.draw(), State: g.state}
}

func (g *Game) draw() core.Frame {
	f := core.NewFrame()
	switch g.state.Outcome {
	case core.OutcomeWin:
		f.Fill(g.layout.Board(), wonSpec)
		return f
	case core.OutcomeLose:
		f.Fill(g.layout.Board(), lostSpec)
		return f
	}

	occupied := make(map[core.Pos]bool, len(g.body))
	for _, p := range g.body {
		occupied[p] = true
	}
	for r := range size {
		for c := range size {
			p := core.Pos{Row: r, Col: c}
			var spec core.VisualSpec
			switch {
			case c == 0 || c == size-1:
				spec = wallSpec
			case p == g.Head():
				spec = headSpec
			case p == door && g.doorOpen:
				spec = doorOpenSpec
			case p == door:
				spec = doorSpec
			case occupied[p]:
				spec = bodySpec
			default:
				spec = floorSpec
			}
			f.Set(g.layout.At(p), spec)
		}
	}
	return f
}

func (g *Game) drawControls(f *core.Frame) {
	for name, spec := range map[string]core.VisualSpec{
		core.ControlLeft:  leftSpec,
		core.ControlRight: rightSpec,
		core.ControlOpen:  openSpec,
		core.ControlReset: resetSpec,
	} {
		if idx, err := g.layout.Control(name); err == nil {
			f.Set(idx, spec)
		}
	}
}
