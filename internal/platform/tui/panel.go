package tui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/device"
)

// Cell is what the terminal shows for one panel cell. Colors are sampled
// from the last bitmap pushed to the cell.
type Cell struct {
	Background core.RGB
	Foreground core.RGB
	Text       string
	Lit        bool // a bitmap has been pushed since the last reset
}

// Panel is a device.Device that shows the panel in a terminal. Bitmaps are
// reduced to their background and text colors, and the text comes from
// Caption. Input from the Bubble Tea model is delivered on a dedicated
// goroutine, like a hardware panel's reader thread.
type Panel struct {
	grid     core.Panel
	cellSize int

	mu       sync.Mutex
	cells    []Cell
	callback device.InputFunc
	open     bool
	closed   bool

	changed chan struct{}
	done    chan struct{}

	qmu    sync.Mutex // guards events; never held together with mu
	events chan inputEvent
	wg     sync.WaitGroup
}

type inputEvent struct {
	index   int
	pressed bool
}

var _ device.Captioner = (*Panel)(nil)

// NewPanel creates a terminal panel with the given grid and bitmap size.
func NewPanel(grid core.Panel, cellSize int) *Panel {
	return &Panel{
		grid:     grid,
		cellSize: cellSize,
		cells:    make([]Cell, grid.CellCount()),
		changed:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Grid returns the panel geometry.
func (p *Panel) Grid() core.Panel { return p.grid }

// Open starts input delivery.
func (p *Panel) Open() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return device.ErrClosed
	}
	if p.open {
		p.mu.Unlock()
		return nil
	}
	p.open = true
	p.mu.Unlock()

	p.qmu.Lock()
	p.events = make(chan inputEvent, 64)
	p.wg.Add(1)
	go p.deliver(p.events)
	p.qmu.Unlock()
	return nil
}

func (p *Panel) deliver(events <-chan inputEvent) {
	defer p.wg.Done()
	for ev := range events {
		p.mu.Lock()
		cb := p.callback
		p.mu.Unlock()
		if cb != nil {
			cb(ev.index, ev.pressed)
		}
	}
}

// Reset blanks every cell.
func (p *Panel) Reset() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return device.ErrClosed
	}
	p.cells = make([]Cell, p.grid.CellCount())
	p.mu.Unlock()
	p.notify()
	return nil
}

// Close stops input delivery and wakes any view waiting for changes.
func (p *Panel) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.qmu.Lock()
	if p.events != nil {
		close(p.events)
		p.events = nil
	}
	p.qmu.Unlock()
	p.wg.Wait()
	close(p.done)
	return nil
}

// CellCount returns the number of cells.
func (p *Panel) CellCount() int { return p.grid.CellCount() }

// CellSize returns the bitmap edge length.
func (p *Panel) CellSize() int { return p.cellSize }

// PushImage samples img into the cell's colors.
func (p *Panel) PushImage(index int, img image.Image) error {
	if index < 0 || index >= p.grid.CellCount() {
		return fmt.Errorf("tui: index %d out of range [0,%d)", index, p.grid.CellCount())
	}
	bg, fg := sampleColors(img)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return device.ErrClosed
	}
	c := &p.cells[index]
	c.Background, c.Foreground, c.Lit = bg, fg, true
	p.mu.Unlock()
	p.notify()
	return nil
}

// Caption sets the text shown on a cell.
func (p *Panel) Caption(index int, text string) {
	if index < 0 || index >= p.grid.CellCount() {
		return
	}
	p.mu.Lock()
	p.cells[index].Text = text
	p.mu.Unlock()
	p.notify()
}

// SetInputCallback installs the input callback.
func (p *Panel) SetInputCallback(fn device.InputFunc) {
	p.mu.Lock()
	p.callback = fn
	p.mu.Unlock()
}

// Input queues a press or release of a cell.
func (p *Panel) Input(index int, pressed bool) error {
	p.qmu.Lock()
	defer p.qmu.Unlock()
	if p.events == nil {
		return errors.New("tui: panel not open")
	}
	p.events <- inputEvent{index: index, pressed: pressed}
	return nil
}

// Tap queues a press immediately followed by a release. Terminals report
// key presses only, so keyboard input arrives as taps.
func (p *Panel) Tap(index int) error {
	if err := p.Input(index, true); err != nil {
		return err
	}
	return p.Input(index, false)
}

// Cells returns a copy of every cell.
func (p *Panel) Cells() []Cell {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Cell(nil), p.cells...)
}

// Changed is signalled after any cell changes. Several changes may be
// coalesced into one signal.
func (p *Panel) Changed() <-chan struct{} { return p.changed }

// Done is closed when the panel is closed.
func (p *Panel) Done() <-chan struct{} { return p.done }

func (p *Panel) notify() {
	select {
	case p.changed <- struct{}{}:
	default:
	}
}

// sampleColors returns the background, taken from the top-left pixel, and
// the foreground, the pixel that differs most from it. A uniform image has
// equal background and foreground.
func sampleColors(img image.Image) (bg, fg core.RGB) {
	b := img.Bounds()
	if b.Empty() {
		return core.Black, core.Black
	}
	bg = toRGB(img.At(b.Min.X, b.Min.Y))
	fg = bg

	best := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := toRGB(img.At(x, y))
			if d := distance(c, bg); d > best {
				best, fg = d, c
			}
		}
	}
	return bg, fg
}

func toRGB(c color.Color) core.RGB {
	r, g, b, _ := c.RGBA()
	return core.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

func distance(a, b core.RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
