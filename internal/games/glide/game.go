// Package glide implements the flying fish game: the fish leaps out of the
// sea, loses altitude every step unless it glides, and scores the distance
// covered before it splashes down.
package glide

import (
	"fmt"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "glide"

const size = 4

var (
	skySpec    = core.Blank(core.SkyBlue)
	waveSpec   = core.Spec("~~", core.FontHuge, core.Blue)
	calmSpec   = core.Blank(core.Blue)
	fishSpec   = core.Spec("Fish", core.FontLarge, core.Gold)
	splashSpec = core.Spec("Splash", core.FontLarge, core.Blue)
	jumpSpec   = core.Spec("Jump", core.FontSmall, core.Black)
	glideSpec  = core.Spec("Glide", core.FontSmall, core.Orange)
	resetSpec  = core.Spec("Reset", core.FontSmall, core.OrangeRed)
)

// Game implements the glide game.
type Game struct {
	layout *core.Layout
	cfg    config.GlideConfig

	x            int // distance flown
	alt          int // 0 is the sea surface
	flying       bool
	pendingJump  bool
	pendingGlide bool
	nextStep     time.Time
	state        core.GameState
}

func init() {
	registry.Register(ID, "Flying Fish", func(cfg *config.Config) (registry.Game, error) {
		return New(cfg.Panel.Grid(), cfg.Glide)
	})
}

// New creates a game for the panel: the view is the left 4x4 block with the
// sea on its bottom row, two jump keys beside the top row, glide below the
// second jump key and reset in the bottom-right corner.
func New(p core.Panel, cfg config.GlideConfig) (*Game, error) {
	if !p.Fits(size+2, size) {
		return nil, fmt.Errorf("glide: panel %dx%d too small, need %dx%d", p.Cols, p.Rows, size+2, size)
	}
	layout, err := core.NewLayout(p.CellCount(), p.Block(0, 0, size, size), map[string]int{
		core.ControlJump:  p.Key(0, size),
		core.ControlJump2: p.Key(0, size+1),
		core.ControlGlide: p.Key(1, size+1),
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
func (g *Game) Title() string { return "Flying Fish" }

// Layout returns the cell layout.
func (g *Game) Layout() *core.Layout { return g.layout }

// State returns the current state.
func (g *Game) State() core.GameState { return g.state }

// Distance returns how far the fish has flown.
func (g *Game) Distance() int { return g.x }

// Altitude returns the fish's height above the sea.
func (g *Game) Altitude() int { return g.alt }

// Flying reports whether the fish is in the air.
func (g *Game) Flying() bool { return g.flying }

// Init puts the fish back in the sea.
func (g *Game) Init(_ core.RuntimeConfig, _ time.Time) core.Frame {
	g.x, g.alt = 0, 0
	g.flying = false
	g.pendingJump = false
	g.pendingGlide = false
	g.nextStep = time.Time{}
	g.state = core.GameState{}

	f := g.draw()
	f.Set(g.mustControl(core.ControlJump), jumpSpec)
	f.Set(g.mustControl(core.ControlJump2), jumpSpec)
	f.Set(g.mustControl(core.ControlGlide), glideSpec)
	return f
}

// OnInput queues a jump before the flight or a glide during it.
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
	case core.ControlJump, core.ControlJump2:
		if !g.flying && g.x == 0 {
			g.pendingJump = true
		}
	case core.ControlGlide:
		if g.flying {
			g.pendingGlide = true
		}
	}
	return core.StepResult{Frame: f, State: g.state}
}

// OnTick launches a queued jump, and once per step moves the fish forward
// and lowers it unless a glide was queued. Touching the sea ends the flight.
func (g *Game) OnTick(now time.Time) core.StepResult {
	if g.state.Terminal() {
		return core.StepResult{Frame: core.NewFrame(), State: g.state}
	}

	switch {
	case g.pendingJump:
		g.pendingJump = false
		g.flying = true
		g.alt = g.cfg.JumpAltitude
		g.nextStep = now.Add(g.cfg.StepInterval)

	case g.flying && !now.Before(g.nextStep):
		g.nextStep = now.Add(g.cfg.StepInterval)
		g.x++
		if !g.pendingGlide && g.alt > 0 {
			g.alt--
		}
		g.pendingGlide = false
		g.state.Score = g.x
		if g.alt == 0 {
			g.flying = false
			g.state.Outcome = core.OutcomeLose
		}
	}

	return core.StepResult{Frame: g.draw(), State: g.state}
}

// draw renders the view window, which keeps the fish in its second column
// once it has left the start.
func (g *Game) draw() core.Frame {
	f := core.NewFrame()
	reset := g.mustControl(core.ControlReset)

	if g.state.Terminal() {
		f.Fill(g.layout.Board(), splashSpec)
		f.Set(reset, core.Spec(fmt.Sprintf("Score:\n%d", g.state.Score), core.FontSmall, core.Red))
		return f
	}

	start := 0
	if g.x >= 2 {
		start = g.x - 1
	}
	fish := core.Pos{Row: core.Clamp(size-1-g.alt, 0, size-1), Col: g.x - start}

	for r := range size {
		for c := range size {
			p := core.Pos{Row: r, Col: c}
			spec := skySpec
			switch {
			case p == fish:
				spec = fishSpec
			case r == size-1 && (start+c)%2 == 0:
				spec = waveSpec
			case r == size-1:
				spec = calmSpec
			}
			f.Set(g.layout.At(p), spec)
		}
	}
	f.Set(reset, resetSpec)
	return f
}

func (g *Game) mustControl(name string) int {
	idx, err := g.layout.Control(name)
	if err != nil {
		panic(err)
	}
	return idx
}
