package core

import (
	"errors"
	"testing"
)

func tttLayout(t *testing.T) *Layout {
	t.Helper()
	p := Panel{Cols: 8, Rows: 4}
	l, err := NewLayout(p.CellCount(), p.Block(0, 0, 3, 3), map[string]int{
		ControlReset: p.Key(3, 0),
		ControlTitle: p.Key(0, 7),
	})
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}
	return l
}

func TestLayoutBijection(t *testing.T) {
	l := tttLayout(t)

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			idx, err := l.Index(r, c)
			if err != nil {
				t.Fatalf("Index(%d, %d) error = %v", r, c, err)
			}
			p, ok := l.Pos(idx)
			if !ok || p != (Pos{Row: r, Col: c}) {
				t.Errorf("Pos(%d) = %+v, %v; expected {%d %d}", idx, p, ok, r, c)
			}
		}
	}

	if idx, _ := l.Index(1, 2); idx != 10 {
		t.Errorf("Index(1, 2) = %d, expected 10", idx)
	}
	if l.Rows() != 3 || l.Cols() != 3 {
		t.Errorf("Rows/Cols = %d/%d, expected 3/3", l.Rows(), l.Cols())
	}
}

func TestLayoutOutOfLayout(t *testing.T) {
	l := tttLayout(t)

	tests := []struct {
		name     string
		row, col int
	}{
		{"row past board", 3, 0},
		{"col past board", 0, 3},
		{"negative", -1, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Index(tc.row, tc.col)
			if !errors.Is(err, ErrOutOfLayout) {
				t.Errorf("Index(%d, %d) error = %v, expected ErrOutOfLayout", tc.row, tc.col, err)
			}
		})
	}

	if _, ok := l.Pos(24); ok {
		t.Error("control cell should not have a board position")
	}
}

func TestLayoutControls(t *testing.T) {
	l := tttLayout(t)

	idx, err := l.Control(ControlReset)
	if err != nil || idx != 24 {
		t.Errorf("Control(reset) = %d, %v; expected 24", idx, err)
	}
	if _, err := l.Control("stop-lane-9"); !errors.Is(err, ErrUnknownControl) {
		t.Errorf("Control(unknown) error = %v, expected ErrUnknownControl", err)
	}
	if name, ok := l.ControlName(7); !ok || name != ControlTitle {
		t.Errorf("ControlName(7) = %q, %v; expected title", name, ok)
	}
	if !l.Contains(24) || !l.Contains(0) || l.Contains(3) {
		t.Error("Contains() mismatch for reset, board and unused cells")
	}
	if l.IsBoard(24) {
		t.Error("reset should not be a board cell")
	}
}

func TestLayoutCells(t *testing.T) {
	l := tttLayout(t)

	cells := l.Cells()
	expected := []int{0, 1, 2, 8, 9, 10, 16, 17, 18, 7, 24}
	if len(cells) != len(expected) {
		t.Fatalf("Cells() = %v, expected %v", cells, expected)
	}
	for i := range expected {
		if cells[i] != expected[i] {
			t.Errorf("Cells()[%d] = %d, expected %d", i, cells[i], expected[i])
		}
	}

	board := l.Board()
	board[0] = 99
	if l.Board()[0] != 0 {
		t.Error("Board() should return a copy")
	}
}

func TestLayoutValidation(t *testing.T) {
	tests := []struct {
		name     string
		grid     [][]int
		controls map[string]int
	}{
		{"duplicate board index", [][]int{{0, 1}, {1, 2}}, nil},
		{"board out of range", [][]int{{0, 32}}, nil},
		{"negative board index", [][]int{{0, -2}}, nil},
		{"control reuses board cell", [][]int{{0, 1}}, map[string]int{ControlReset: 1}},
		{"control out of range", [][]int{{0}}, map[string]int{ControlReset: 40}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLayout(32, tc.grid, tc.controls)
			if !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("NewLayout() error = %v, expected ErrInvalidLayout", err)
			}
		})
	}
}

func TestLayoutHoles(t *testing.T) {
	l, err := NewLayout(32, [][]int{{0, -1, 2}, {8, 9}}, nil)
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}
	if _, err := l.Index(0, 1); !errors.Is(err, ErrOutOfLayout) {
		t.Errorf("hole should be out of layout, got %v", err)
	}
	if l.Cols() != 3 || len(l.Board()) != 4 {
		t.Errorf("Cols() = %d, board = %v", l.Cols(), l.Board())
	}
}
