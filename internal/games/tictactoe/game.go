// Package tictactoe implements two-player tic-tac-toe on a 3x3 block of
// cells. X always moves first.
package tictactoe

import (
	"fmt"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "tictactoe"

const size = 3

var (
	emptySpec = core.Spec("", core.FontHuge, core.LightBlue)
	titleSpec = core.Spec("XO\nGame", core.FontMedium, core.Navy)
	resetSpec = core.Spec("Reset", core.FontLarge, core.OrangeRed)
	drawSpec  = core.Spec("Draw", core.FontLarge, core.Gray)
)

// lines are the eight winning triples: rows, columns, then diagonals.
var lines = [8][3]core.Pos{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// Game implements tic-tac-toe.
type Game struct {
	layout *core.Layout
	board  [size][size]string
	turn   string
	moves  int
	state  core.GameState
}

func init() {
	registry.Register(ID, "Tic-Tac-Toe", func(cfg *config.Config) (registry.Game, error) {
		return New(cfg.Panel.Grid())
	})
}

// New creates a game for the panel: the board takes the top-left 3x3
// block, reset sits below it and the title in the top-right corner.
func New(p core.Panel) (*Game, error) {
	if !p.Fits(size+1, size+1) {
		return nil, fmt.Errorf("tictactoe: panel %dx%d too small, need %dx%d", p.Cols, p.Rows, size+1, size+1)
	}
	layout, err := core.NewLayout(p.CellCount(), p.Block(0, 0, size, size), map[string]int{
		core.ControlReset: p.Key(size, 0),
		core.ControlTitle: p.Key(0, p.Cols-1),
	})
	if err != nil {
		return nil, err
	}
	return &Game{layout: layout, turn: "X"}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Tic-Tac-Toe" }

// Layout returns the cell layout.
func (g *Game) Layout() *core.Layout { return g.layout }

// State returns the current state.
func (g *Game) State() core.GameState { return g.state }

// Turn returns the symbol to move next.
func (g *Game) Turn() string { return g.turn }

// At returns the symbol at a board position, "" when empty.
func (g *Game) At(row, col int) string { return g.board[row][col] }

// Init clears the board and gives X the first move.
func (g *Game) Init(cfg core.RuntimeConfig, now time.Time) core.Frame {
	g.board = [size][size]string{}
	g.turn = "X"
	g.moves = 0
	g.state = core.GameState{}

	f := core.NewFrame()
	f.Fill(g.layout.Board(), emptySpec)
	g.setControl(&f, core.ControlTitle, titleSpec)
	g.setControl(&f, core.ControlReset, resetSpec)
	return f
}

func (g *Game) setControl(f *core.Frame, name string, spec core.VisualSpec) {
	if idx, err := g.layout.Control(name); err == nil {
		f.Set(idx, spec)
	}
}

// OnInput places the current symbol on a pressed empty board cell.
func (g *Game) OnInput(ev core.Event, now time.Time) core.StepResult {
	f := core.NewFrame()
	if !ev.Pressed || g.state.Terminal() {
		return core.StepResult{Frame: f, State: g.state}
	}
	pos, ok := g.layout.Pos(ev.Index)
	if !ok {
		return core.StepResult{Frame: f, State: g.state}
	}

	symbol := g.turn
	if err := g.Place(pos.Row, pos.Col); err != nil {
		return core.StepResult{Frame: f, State: g.state}
	}
	f.Set(ev.Index, core.Spec(symbol, core.FontHuge, core.Black))

	switch g.state.Outcome {
	case core.OutcomeWin:
		f.Fill(g.layout.Board(), core.Spec("Winner\n"+g.state.Winner, core.FontMedium, core.Green))
	case core.OutcomeDraw:
		f.Fill(g.layout.Board(), drawSpec)
	}
	return core.StepResult{Frame: f, State: g.state}
}

// Place puts the current symbol at (row, col), evaluates the board and
// passes the turn. It returns core.ErrInvalidTransition for occupied cells
// or a finished game and core.ErrOutOfLayout for positions off the board.
func (g *Game) Place(row, col int) error {
	if row < 0 || row >= size || col < 0 || col >= size {
		return fmt.Errorf("%w: (%d,%d)", core.ErrOutOfLayout, row, col)
	}
	if g.state.Terminal() {
		return fmt.Errorf("%w: game over", core.ErrInvalidTransition)
	}
	if g.board[row][col] != "" {
		return fmt.Errorf("%w: (%d,%d) taken by %s", core.ErrInvalidTransition, row, col, g.board[row][col])
	}

	g.board[row][col] = g.turn
	g.moves++
	g.evaluate()
	if !g.state.Terminal() {
		g.turn = other(g.turn)
	}
	return nil
}

// evaluate checks the triples first; a full board without one is a draw.
func (g *Game) evaluate() {
	for _, line := range lines {
		a := g.board[line[0].Row][line[0].Col]
		if a == "" {
			continue
		}
		if a == g.board[line[1].Row][line[1].Col] && a == g.board[line[2].Row][line[2].Col] {
			g.state = core.GameState{Outcome: core.OutcomeWin, Winner: a}
			return
		}
	}
	if g.moves == size*size {
		g.state = core.GameState{Outcome: core.OutcomeDraw}
	}
}

// OnTick does nothing; the game has no timers.
func (g *Game) OnTick(now time.Time) core.StepResult {
	return core.StepResult{Frame: core.NewFrame(), State: g.state}
}

func other(symbol string) string {
	if symbol == "X" {
		return "O"
	}
	return "X"
}
