// Package lane animates a column of cells cycling through symbols, as the
// reels of a slot machine do. Each spinning lane runs its own goroutine and
// paints through a shared core.Painter.
package lane

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/core"
)

// Default animation settings.
const (
	DefaultFrameInterval = 200 * time.Millisecond
	DefaultRepeats       = 10
)

// Options configures an Animator.
type Options struct {
	FrameInterval time.Duration
	// Repeats is how many shuffled copies of the alphabet make up the order.
	Repeats int
	// Style maps a symbol to what its cell shows.
	Style func(symbol string) core.VisualSpec
	// Painter receives every frame. Write errors are reported by the painter
	// itself; the animation keeps running.
	Painter core.Painter
}

// Animator drives one lane. The zero value is not usable; create with New.
type Animator struct {
	cells    []int
	alphabet []string
	opts     Options

	mu       sync.Mutex
	spinning bool
	order    []string
	offset   int
	result   []string
	stop     chan struct{}
	done     chan struct{}
}

// New creates an animator painting the given cells, top to bottom.
func New(cells []int, alphabet []string, opts Options) *Animator {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Repeats <= 0 {
		opts.Repeats = DefaultRepeats
	}
	if opts.Style == nil {
		opts.Style = func(s string) core.VisualSpec {
			return core.Spec(s, core.FontMedium, core.Black)
		}
	}
	return &Animator{
		cells:    append([]int(nil), cells...),
		alphabet: append([]string(nil), alphabet...),
		opts:     opts,
	}
}

// Start shuffles a fresh order from seed and launches the animation.
// Starting a spinning lane is a no-op.
func (a *Animator) Start(seed int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.spinning {
		return
	}

	rng := rand.New(rand.NewSource(seed))
	order := make([]string, 0, len(a.alphabet)*a.opts.Repeats)
	for range a.opts.Repeats {
		chunk := append([]string(nil), a.alphabet...)
		rng.Shuffle(len(chunk), func(i, j int) { chunk[i], chunk[j] = chunk[j], chunk[i] })
		order = append(order, chunk...)
	}

	a.order = order
	a.offset = 0
	a.result = nil
	a.spinning = true
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	go a.run(a.stop, a.done)
}

// Stop ends the animation and blocks until the lane goroutine has snapped
// to its final position and painted it. Stopping an idle lane is a no-op.
func (a *Animator) Stop() {
	a.mu.Lock()
	if !a.spinning {
		a.mu.Unlock()
		return
	}
	a.spinning = false
	close(a.stop)
	done := a.done
	a.mu.Unlock()

	<-done
}

func (a *Animator) run(stop, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-stop:
			a.finish()
			return
		default:
		}

		a.mu.Lock()
		visible := a.windowLocked()
		if len(a.order) > 0 {
			a.offset = (a.offset + 1) % len(a.order)
		}
		a.mu.Unlock()
		a.paint(visible)

		timer := time.NewTimer(a.opts.FrameInterval)
		select {
		case <-stop:
			timer.Stop()
			a.finish()
			return
		case <-timer.C:
		}
	}
}

// finish snaps the offset down to a whole window, paints it and records
// the visible symbols as the result.
func (a *Animator) finish() {
	a.mu.Lock()
	a.offset -= a.offset % len(a.cells)
	visible := a.windowLocked()
	a.result = visible
	a.mu.Unlock()

	a.paint(visible)
}

func (a *Animator) windowLocked() []string {
	out := make([]string, len(a.cells))
	if len(a.order) == 0 {
		return out
	}
	for j := range a.cells {
		out[j] = a.order[(a.offset+j)%len(a.order)]
	}
	return out
}

func (a *Animator) paint(symbols []string) {
	if a.opts.Painter == nil {
		return
	}
	for j, idx := range a.cells {
		_ = a.opts.Painter.Paint(idx, a.opts.Style(symbols[j]))
	}
}

// Spinning reports whether the lane is animating.
func (a *Animator) Spinning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.spinning
}

// Offset returns the current position in the order.
func (a *Animator) Offset() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}

// Order returns a copy of the current symbol order.
func (a *Animator) Order() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.order...)
}

// Result returns the symbols the lane stopped on, top to bottom, or nil
// if it has not stopped since the last Start.
func (a *Animator) Result() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.result...)
}

// Cells returns the physical cells of the lane.
func (a *Animator) Cells() []int {
	return append([]int(nil), a.cells...)
}
