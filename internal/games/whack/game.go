// Package whack implements a timed whack-a-mole game on a 4x4 block of
// cells. Moles pop up at random holes for a short time; hitting one scores a
// point. The reset cell doubles as the score and time display.
package whack

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "whack"

const size = 4

var (
	holeSpec     = core.Blank(core.DarkGray)
	moleSpec     = core.Spec("Mole", core.FontLarge, core.Brown)
	gameOverSpec = core.Spec("Game\nOver", core.FontLarge, core.DarkRed)
)

// Game implements whack-a-mole.
type Game struct {
	layout *core.Layout
	cfg    config.WhackConfig
	rng    *rand.Rand

	active    mapset.Set[int]
	expires   map[int]time.Time
	nextSpawn time.Time
	endAt     time.Time
	state     core.GameState
}

func init() {
	registry.Register(ID, "Whack-a-Mole", func(cfg *config.Config) (registry.Game, error) {
		return New(cfg.Panel.Grid(), cfg.Whack)
	})
}

// New creates a game for the panel with the board in the left 4x4 block and
// the reset/status cell in the bottom-right corner.
func New(p core.Panel, cfg config.WhackConfig) (*Game, error) {
	if !p.Fits(size+1, size) {
		return nil, fmt.Errorf("whack: panel %dx%d too small, need %dx%d", p.Cols, p.Rows, size+1, size)
	}
	if cfg.MaxMoles < 1 || cfg.MaxMoles > size*size {
		return nil, fmt.Errorf("whack: max moles %d out of range [1,%d]", cfg.MaxMoles, size*size)
	}
	layout, err := core.NewLayout(p.CellCount(), p.Block(0, 0, size, size), map[string]int{
		core.ControlReset: p.Key(p.Rows-1, p.Cols-1),
	})
	if err != nil {
		return nil, err
	}
	return &Game{
		layout:  layout,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(1)),
		active:  mapset.New[int](),
		expires: make(map[int]time.Time),
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Whack-a-Mole" }

// Layout returns the cell layout.
func (g *Game) Layout() *core.Layout { return g.layout }

// State returns the current state.
func (g *Game) State() core.GameState { return g.state }

// Init starts a new round at now. The first mole appears on the first tick.
func (g *Game) Init(cfg core.RuntimeConfig, now time.Time) core.Frame {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.active = mapset.New[int]()
	g.expires = make(map[int]time.Time)
	g.nextSpawn = now
	g.endAt = now.Add(g.cfg.GameDuration)
	g.state = core.GameState{}

	f := core.NewFrame()
	f.Fill(g.layout.Board(), holeSpec)
	g.setStatus(&f, now)
	return f
}

// OnInput scores a hit on an active mole.
func (g *Game) OnInput(ev core.Event, now time.Time) core.StepResult {
	f := core.NewFrame()
	if !ev.Pressed || g.state.Terminal() || !g.active.Has(ev.Index) {
		return core.StepResult{Frame: f, State: g.state}
	}

	g.state.Score++
	g.active.Remove(ev.Index)
	delete(g.expires, ev.Index)
	g.nextSpawn = now.Add(g.uniform(g.cfg.HitDelayMin, g.cfg.HitDelayMax))

	f.Set(ev.Index, holeSpec)
	g.setStatus(&f, now)
	return core.StepResult{Frame: f, State: g.state}
}

// OnTick ends the game when time is up, otherwise expires old moles and
// spawns new ones up to the cap.
func (g *Game) OnTick(now time.Time) core.StepResult {
	f := core.NewFrame()
	if g.state.Terminal() {
		return core.StepResult{Frame: f, State: g.state}
	}

	if !now.Before(g.endAt) {
		g.state.Outcome = core.OutcomeOver
		g.active = mapset.New[int]()
		g.expires = make(map[int]time.Time)
		f.Fill(g.layout.Board(), gameOverSpec)
		g.setStatus(&f, now)
		return core.StepResult{Frame: f, State: g.state}
	}

	for _, idx := range g.layout.Board() {
		if g.active.Has(idx) && !now.Before(g.expires[idx]) {
			g.active.Remove(idx)
			delete(g.expires, idx)
			f.Set(idx, holeSpec)
		}
	}

	for g.active.Size() < g.cfg.MaxMoles && !now.Before(g.nextSpawn) {
		idx, ok := g.randomHole()
		if !ok {
			break
		}
		g.active.Put(idx)
		g.expires[idx] = now.Add(g.cfg.MoleLifetime)
		g.nextSpawn = now.Add(g.uniform(g.cfg.SpawnDelayMin, g.cfg.SpawnDelayMax))
		f.Set(idx, moleSpec)
	}

	g.setStatus(&f, now)
	return core.StepResult{Frame: f, State: g.state}
}

func (g *Game) randomHole() (int, bool) {
	var holes []int
	for _, idx := range g.layout.Board() {
		if !g.active.Has(idx) {
			holes = append(holes, idx)
		}
	}
	if len(holes) == 0 {
		return 0, false
	}
	return holes[g.rng.Intn(len(holes))], true
}

// uniform returns a duration drawn uniformly from [lo, hi].
func (g *Game) uniform(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(g.rng.Int63n(int64(hi-lo)+1))
}

func (g *Game) setStatus(f *core.Frame, now time.Time) {
	idx, err := g.layout.Control(core.ControlReset)
	if err != nil {
		return
	}
	if g.state.Terminal() {
		f.Set(idx, core.Spec(fmt.Sprintf("Score: %d\nReset", g.state.Score), core.FontSmall, core.OrangeRed))
		return
	}
	left := max(0, int(g.endAt.Sub(now)/time.Second))
	f.Set(idx, core.Spec(fmt.Sprintf("Score: %d\nTime: %d", g.state.Score, left), core.FontSmall, core.DarkGreen))
}

// Moles returns the active moles and when each one disappears.
func (g *Game) Moles() map[int]time.Time {
	out := make(map[int]time.Time, len(g.expires))
	for k, v := range g.expires {
		out[k] = v
	}
	return out
}
