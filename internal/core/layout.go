package core

import (
	"errors"
	"fmt"
	"sort"
)

// Layout errors.
var (
	ErrOutOfLayout    = errors.New("core: position is not part of the layout")
	ErrUnknownControl = errors.New("core: unknown control cell")
	ErrInvalidLayout  = errors.New("core: invalid layout")
)

// Standard control cell names used across games.
const (
	ControlReset  = "reset"
	ControlStart  = "start"
	ControlLeft   = "left"
	ControlRight  = "right"
	ControlRotate = "rotate"
	ControlOpen   = "open"
	ControlJump   = "jump"
	ControlJump2  = "jump2"
	ControlGlide  = "glide"
	ControlTitle  = "title"
	ControlStatus = "status"
)

// ControlStopLane returns the control name of the stop button for lane n.
func ControlStopLane(n int) string {
	return fmt.Sprintf("stop-lane-%d", n)
}

// Layout is the bijection between logical board positions and physical cell
// indices used by one game, plus the named control cells outside the board.
// A Layout is immutable after construction.
type Layout struct {
	rows, cols int
	byPos      map[Pos]int
	byIndex    map[int]Pos
	controls   map[string]int
	controlOf  map[int]string
	board      []int // board indices in row-major order
}

// NewLayout builds a layout for a panel with cellCount physical cells.
// grid[row][col] holds the physical index of that board position; -1 marks a
// hole in an irregular layout. Every index must be in [0, cellCount) and may
// appear at most once across the grid and the controls.
func NewLayout(cellCount int, grid [][]int, controls map[string]int) (*Layout, error) {
	l := &Layout{
		rows:      len(grid),
		byPos:     make(map[Pos]int),
		byIndex:   make(map[int]Pos),
		controls:  make(map[string]int, len(controls)),
		controlOf: make(map[int]string, len(controls)),
	}

	seen := make(map[int]bool)
	claim := func(idx int, what string) error {
		if idx < 0 || idx >= cellCount {
			return fmt.Errorf("%w: %s index %d out of range [0,%d)", ErrInvalidLayout, what, idx, cellCount)
		}
		if seen[idx] {
			return fmt.Errorf("%w: %s index %d used twice", ErrInvalidLayout, what, idx)
		}
		seen[idx] = true
		return nil
	}

	for r, row := range grid {
		if len(row) > l.cols {
			l.cols = len(row)
		}
		for c, idx := range row {
			if idx == -1 {
				continue
			}
			if err := claim(idx, fmt.Sprintf("board (%d,%d)", r, c)); err != nil {
				return nil, err
			}
			p := Pos{Row: r, Col: c}
			l.byPos[p] = idx
			l.byIndex[idx] = p
			l.board = append(l.board, idx)
		}
	}

	// Sorted for deterministic error reporting.
	names := make([]string, 0, len(controls))
	for name := range controls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		idx := controls[name]
		if err := claim(idx, "control "+name); err != nil {
			return nil, err
		}
		l.controls[name] = idx
		l.controlOf[idx] = name
	}

	return l, nil
}

// MustLayout is like NewLayout but panics on error.
// Intended for layouts fixed at compile time.
func MustLayout(cellCount int, grid [][]int, controls map[string]int) *Layout {
	l, err := NewLayout(cellCount, grid, controls)
	if err != nil {
		panic(err)
	}
	return l
}

// Rows returns the number of board rows.
func (l *Layout) Rows() int { return l.rows }

// Cols returns the width of the widest board row.
func (l *Layout) Cols() int { return l.cols }

// Index returns the physical index of a board position.
func (l *Layout) Index(row, col int) (int, error) {
	idx, ok := l.byPos[Pos{Row: row, Col: col}]
	if !ok {
		return -1, fmt.Errorf("%w: (%d,%d)", ErrOutOfLayout, row, col)
	}
	return idx, nil
}

// At is Index for positions known to be on the board; it returns -1 otherwise.
func (l *Layout) At(p Pos) int {
	idx, ok := l.byPos[p]
	if !ok {
		return -1
	}
	return idx
}

// Pos returns the board position of a physical index.
// Control cells and unused cells report false.
func (l *Layout) Pos(index int) (Pos, bool) {
	p, ok := l.byIndex[index]
	return p, ok
}

// Control resolves a named control cell.
func (l *Layout) Control(name string) (int, error) {
	idx, ok := l.controls[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	return idx, nil
}

// ControlName returns the control name bound to a physical index.
func (l *Layout) ControlName(index int) (string, bool) {
	name, ok := l.controlOf[index]
	return name, ok
}

// IsBoard reports whether the physical index is a board cell.
func (l *Layout) IsBoard(index int) bool {
	_, ok := l.byIndex[index]
	return ok
}

// Contains reports whether the index is a board or control cell.
func (l *Layout) Contains(index int) bool {
	if l.IsBoard(index) {
		return true
	}
	_, ok := l.controlOf[index]
	return ok
}

// Board returns the board indices in row-major order.
func (l *Layout) Board() []int {
	out := make([]int, len(l.board))
	copy(out, l.board)
	return out
}

// Cells returns every index used by the layout: board cells first, then
// controls sorted by index.
func (l *Layout) Cells() []int {
	out := l.Board()
	ctrl := make([]int, 0, len(l.controlOf))
	for idx := range l.controlOf {
		ctrl = append(ctrl, idx)
	}
	sort.Ints(ctrl)
	return append(out, ctrl...)
}
