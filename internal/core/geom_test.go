package core

import "testing"

func TestPanelKey(t *testing.T) {
	p := Panel{Cols: 8, Rows: 4}

	tests := []struct {
		name     string
		row, col int
		expected int
	}{
		{"origin", 0, 0, 0},
		{"first row end", 0, 7, 7},
		{"second row start", 1, 0, 8},
		{"last cell", 3, 7, 31},
		{"negative row", -1, 0, -1},
		{"col past edge", 0, 8, -1},
		{"row past edge", 4, 0, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Key(tc.row, tc.col); got != tc.expected {
				t.Errorf("Key(%d, %d) = %d, expected %d", tc.row, tc.col, got, tc.expected)
			}
		})
	}
}

func TestPanelBlock(t *testing.T) {
	p := Panel{Cols: 8, Rows: 4}

	grid := p.Block(0, 0, 3, 3)
	expected := [][]int{{0, 1, 2}, {8, 9, 10}, {16, 17, 18}}
	for r := range expected {
		for c := range expected[r] {
			if grid[r][c] != expected[r][c] {
				t.Errorf("Block[%d][%d] = %d, expected %d", r, c, grid[r][c], expected[r][c])
			}
		}
	}

	edge := p.Block(3, 7, 2, 2)
	if edge[0][0] != 31 || edge[0][1] != -1 || edge[1][0] != -1 {
		t.Errorf("Block at panel edge = %v, expected out-of-panel cells as -1", edge)
	}
}

func TestPanelCellCountAndFits(t *testing.T) {
	p := Panel{Cols: 8, Rows: 4}
	if p.CellCount() != 32 {
		t.Errorf("CellCount() = %d, expected 32", p.CellCount())
	}
	if !p.Fits(8, 4) {
		t.Error("8x4 panel should fit 8x4")
	}
	if p.Fits(5, 5) {
		t.Error("8x4 panel should not fit 5 rows")
	}
}

func TestPosAdd(t *testing.T) {
	p := Pos{Row: 2, Col: 1}.Add(-1, 2)
	if p != (Pos{Row: 1, Col: 3}) {
		t.Errorf("Add() = %+v, expected {1 3}", p)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
