package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/deck-arcade/internal/core"
)

// Cell box size in terminal columns and lines, and the gap between boxes.
const (
	cellWidth  = 11
	cellHeight = 4
	cellGap    = 1
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	darkStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#101010"))
)

// PanelSize returns the terminal columns and lines needed to draw a grid.
func PanelSize(grid core.Panel) (cols, lines int) {
	cols = grid.Cols*(cellWidth+cellGap) - cellGap
	lines = grid.Rows*(cellHeight+cellGap) - cellGap
	return cols, lines
}

// RenderPanel draws every cell as a colored box with its caption centred.
func RenderPanel(grid core.Panel, cells []Cell) string {
	rows := make([]string, 0, grid.Rows)
	gap := strings.Repeat(" ", cellGap)
	for r := range grid.Rows {
		boxes := make([]string, 0, 2*grid.Cols)
		for c := range grid.Cols {
			if c > 0 {
				boxes = append(boxes, gap)
			}
			boxes = append(boxes, renderCell(cells[grid.Key(r, c)]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return strings.Join(rows, strings.Repeat("\n", cellGap+1))
}

func renderCell(c Cell) string {
	style := darkStyle
	if c.Lit {
		style = lipgloss.NewStyle().
			Background(hexColor(c.Background)).
			Foreground(hexColor(c.Foreground))
	}
	return style.
		Width(cellWidth).
		Height(cellHeight).
		MaxHeight(cellHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(truncateLines(c.Text, cellWidth))
}

func truncateLines(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if r := []rune(l); len(r) > width {
			lines[i] = string(r[:width])
		}
	}
	return strings.Join(lines, "\n")
}

func hexColor(c core.RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// cellAt maps terminal coordinates relative to the panel's top-left corner
// to a cell index. Gaps between cells map to nothing.
func cellAt(grid core.Panel, x, y int) (int, bool) {
	if x < 0 || y < 0 {
		return -1, false
	}
	col, cx := x/(cellWidth+cellGap), x%(cellWidth+cellGap)
	row, cy := y/(cellHeight+cellGap), y%(cellHeight+cellGap)
	if cx >= cellWidth || cy >= cellHeight {
		return -1, false
	}
	idx := grid.Key(row, col)
	return idx, idx >= 0
}
