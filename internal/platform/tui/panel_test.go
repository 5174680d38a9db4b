package tui

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/device"
	"github.com/vovakirdan/deck-arcade/internal/render"
)

var grid = core.Panel{Cols: 8, Rows: 4}

func TestSampleColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	draw.Draw(img, img.Bounds(), image.NewUniform(core.Navy.RGBA()), image.Point{}, draw.Src)

	bg, fg := sampleColors(img)
	if bg != core.Navy || fg != core.Navy {
		t.Errorf("uniform image: bg=%v fg=%v", bg, fg)
	}

	img.Set(16, 16, color.RGBA{R: 255, G: 215, A: 255})
	img.Set(8, 8, color.RGBA{R: 10, G: 10, B: 140, A: 255})
	bg, fg = sampleColors(img)
	if bg != core.Navy || fg != core.Gold {
		t.Errorf("bg=%v fg=%v, expected navy and gold", bg, fg)
	}
}

func TestPanelPushAndCaption(t *testing.T) {
	p := NewPanel(grid, 96)
	r := render.NewRenderer()
	spec := core.Spec("Hi", core.FontLarge, core.DarkGreen)

	if err := p.PushImage(3, r.Render(spec, 96, 96)); err != nil {
		t.Fatalf("PushImage() error = %v", err)
	}
	p.Caption(3, spec.Text)

	c := p.Cells()[3]
	if !c.Lit || c.Background != core.DarkGreen || c.Foreground != core.White || c.Text != "Hi" {
		t.Errorf("cell = %+v", c)
	}
	select {
	case <-p.Changed():
	default:
		t.Error("no change signalled")
	}

	if err := p.PushImage(32, r.Render(spec, 96, 96)); err == nil {
		t.Error("expected error for out of range index")
	}

	if err := p.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if p.Cells()[3].Lit {
		t.Error("cell lit after reset")
	}
}

func TestPanelInputDelivery(t *testing.T) {
	p := NewPanel(grid, 96)
	if err := p.Tap(0); err == nil {
		t.Error("expected error before Open")
	}

	got := make(chan [2]int, 4)
	p.SetInputCallback(func(index int, pressed bool) {
		v := 0
		if pressed {
			v = 1
		}
		got <- [2]int{index, v}
	})
	if err := p.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := p.Tap(9); err != nil {
		t.Fatalf("Tap() error = %v", err)
	}

	for _, want := range [][2]int{{9, 1}, {9, 0}} {
		select {
		case ev := <-got:
			if ev != want {
				t.Errorf("event = %v, expected %v", ev, want)
			}
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	select {
	case <-p.Done():
	default:
		t.Error("Done not closed")
	}
	if err := p.PushImage(0, image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, device.ErrClosed) {
		t.Errorf("PushImage after Close = %v, expected ErrClosed", err)
	}
}

func TestKeyMap(t *testing.T) {
	km := DefaultKeyMap(grid)
	tests := []struct {
		key  string
		cell int
		ok   bool
	}{
		{"1", 0, true},
		{"8", 7, true},
		{"q", 8, true},
		{"k", 23, true},
		{",", 31, true},
		{"p", -1, false},
	}
	for _, tt := range tests {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)}
		cell, ok := km.Cell(msg)
		if cell != tt.cell || ok != tt.ok {
			t.Errorf("Cell(%q) = %d, %v; expected %d, %v", tt.key, cell, ok, tt.cell, tt.ok)
		}
	}

	small := DefaultKeyMap(core.Panel{Cols: 3, Rows: 2})
	if cell, ok := small.Cell(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")}); ok {
		t.Errorf("key 4 mapped to cell %d on a 3-wide panel", cell)
	}
	if len(small.Rows) != 2 {
		t.Errorf("help rows = %d, expected 2", len(small.Rows))
	}
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		x, y int
		cell int
		ok   bool
	}{
		{0, 0, 0, true},
		{cellWidth - 1, cellHeight - 1, 0, true},
		{cellWidth, 0, -1, false},
		{cellWidth + cellGap, 0, 1, true},
		{0, cellHeight + cellGap, 8, true},
		{7 * (cellWidth + cellGap), 3 * (cellHeight + cellGap), 31, true},
		{8 * (cellWidth + cellGap), 0, -1, false},
		{-1, 0, -1, false},
	}
	for _, tt := range tests {
		cell, ok := cellAt(grid, tt.x, tt.y)
		if cell != tt.cell || ok != tt.ok {
			t.Errorf("cellAt(%d,%d) = %d, %v; expected %d, %v", tt.x, tt.y, cell, ok, tt.cell, tt.ok)
		}
	}
}

func TestRenderPanelShowsCaptions(t *testing.T) {
	cells := make([]Cell, grid.CellCount())
	cells[0] = Cell{Lit: true, Background: core.Navy, Foreground: core.White, Text: "Start"}
	cells[31] = Cell{Lit: true, Background: core.OrangeRed, Foreground: core.White, Text: "a very long caption"}

	out := RenderPanel(grid, cells)
	if !strings.Contains(out, "Start") {
		t.Error("caption missing")
	}
	if strings.Contains(out, "a very long caption") {
		t.Error("caption not truncated to the cell width")
	}

	cols, lines := PanelSize(grid)
	if cols != 95 || lines != 19 {
		t.Errorf("PanelSize = %d, %d", cols, lines)
	}
}

func TestModelForwardsKeys(t *testing.T) {
	p := NewPanel(grid, 96)
	got := make(chan int, 2)
	p.SetInputCallback(func(index int, pressed bool) {
		if pressed {
			got <- index
		}
	})
	if err := p.Open(); err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	m := NewModel(p, "Test")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	select {
	case idx := <-got:
		if idx != 16 {
			t.Errorf("pressed %d, expected 16", idx)
		}
	case <-time.After(time.Second):
		t.Fatal("key not forwarded")
	}

	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).Quitting() || cmd == nil {
		t.Error("esc should quit a standalone panel")
	}

	m.embedded = true
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).Back() || next.(Model).Quitting() {
		t.Error("esc inside a session should go back")
	}
}
