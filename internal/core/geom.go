// Package core provides the fundamental types of the grid engine: colors,
// cell addressing, visual specs and update frames. It has no dependencies on
// devices, rendering or the terminal so game logic stays pure and testable.
package core

// Pos is a logical (row, col) position on a game board.
type Pos struct {
	Row, Col int
}

// Add returns the position offset by the given deltas.
func (p Pos) Add(dRow, dCol int) Pos {
	return Pos{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Panel describes the physical cell grid of a device.
// Physical indices run row-major: index = row*Cols + col.
type Panel struct {
	Cols int
	Rows int
}

// CellCount returns the number of physical cells.
func (p Panel) CellCount() int {
	return p.Cols * p.Rows
}

// Key returns the physical index of the cell at (row, col).
// Returns -1 when the position lies outside the panel.
func (p Panel) Key(row, col int) int {
	if row < 0 || row >= p.Rows || col < 0 || col >= p.Cols {
		return -1
	}
	return row*p.Cols + col
}

// Block returns the physical indices of an h x w rectangle whose top-left
// corner is (row, col). Cells outside the panel are reported as -1.
func (p Panel) Block(row, col, h, w int) [][]int {
	grid := make([][]int, h)
	for r := range h {
		grid[r] = make([]int, w)
		for c := range w {
			grid[r][c] = p.Key(row+r, col+c)
		}
	}
	return grid
}

// Fits reports whether the panel has at least the given dimensions.
func (p Panel) Fits(cols, rows int) bool {
	return p.Cols >= cols && p.Rows >= rows
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
