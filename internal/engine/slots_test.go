package engine

import (
	"context"
	"image"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/device"
	"github.com/vovakirdan/deck-arcade/internal/games/slots"
	"github.com/vovakirdan/deck-arcade/internal/render"
)

const slotsCellSize = 24

// startSlots runs a slot machine with fast reels on an in-memory device.
// The returned channel yields the result of Run.
func startSlots(t *testing.T, ctx context.Context, seed int64) (*Engine, *slots.Game, *device.Memory, <-chan error) {
	t.Helper()
	cfg := config.Default().Slots
	cfg.FrameInterval = time.Millisecond
	cfg.RevealDelay = time.Hour // keep the final symbols on the reels

	g, err := slots.New(panel, cfg)
	if err != nil {
		t.Fatalf("slots.New() error = %v", err)
	}
	dev := device.NewMemory(panel.CellCount(), slotsCellSize)
	e := New(dev, g, render.NewRenderer(), Options{
		Runtime: core.RuntimeConfig{Seed: seed, TickInterval: time.Millisecond},
		Logger:  log.New(io.Discard),
	})

	errc := make(chan error, 1)
	go func() { errc <- e.Run(ctx) }()
	return e, g, dev, errc
}

// spin presses start until the reels turn. The first presses may arrive
// before the engine has installed its input callback.
func spin(t *testing.T, g *slots.Game, dev *device.Memory) {
	t.Helper()
	start := panel.Key(panel.Rows-1, panel.Cols-1)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := dev.Press(start); err == nil && g.Lane(0).Spinning() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("reels never started")
}

func waitRun(t *testing.T, errc <-chan error) {
	t.Helper()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func samePixels(a, b image.Image) bool {
	if a == nil || b == nil || a.Bounds() != b.Bounds() {
		return false
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb || aa != ba {
				return false
			}
		}
	}
	return true
}

func TestSlotsStoppedReelsShowResult(t *testing.T) {
	want := render.NewRenderer()

	for round := range 10 {
		ctx, cancel := context.WithCancel(context.Background())
		e, g, dev, errc := startSlots(t, ctx, int64(round+1))

		spin(t, g, dev)
		time.Sleep(5 * time.Millisecond)
		for c := range 3 {
			if err := dev.Press(panel.Key(3, c)); err != nil {
				t.Fatalf("round %d: stop lane %d: %v", round, c, err)
			}
			if g.Lane(c).Spinning() {
				t.Fatalf("round %d: lane %d still spinning after its stop key", round, c)
			}
		}

		for c := range 3 {
			l := g.Lane(c)
			if l.Offset()%3 != 0 {
				t.Errorf("round %d: lane %d offset %d not snapped", round, c, l.Offset())
			}
			result := l.Result()
			for r := range 3 {
				idx := panel.Key(r, c)
				spec := slots.SymbolSpec(result[r])

				e.writeMu.Lock()
				cached, ok := e.cache.Get(idx)
				e.writeMu.Unlock()
				if !ok || cached != spec {
					t.Errorf("round %d: cell %d cached %+v, expected %+v", round, idx, cached, spec)
				}

				img, ok := dev.Image(idx)
				if !ok || !samePixels(img, want.Render(spec, slotsCellSize, slotsCellSize)) {
					t.Errorf("round %d: cell %d does not show %q", round, idx, result[r])
				}
			}
		}

		cancel()
		waitRun(t, errc)
	}
}

func TestSlotsShutdownMidSpin(t *testing.T) {
	for round := range 10 {
		ctx, cancel := context.WithCancel(context.Background())
		_, g, dev, errc := startSlots(t, ctx, int64(round+1))

		spin(t, g, dev)
		if round%2 == 1 {
			// one reel already stopped, the others still turning
			if err := dev.Press(panel.Key(3, 1)); err != nil {
				t.Fatalf("round %d: stop lane 1: %v", round, err)
			}
		}
		time.Sleep(3 * time.Millisecond)

		cancel()
		waitRun(t, errc)

		for c := range 3 {
			if g.Lane(c).Spinning() {
				t.Errorf("round %d: lane %d spinning after shutdown", round, c)
			}
		}
		if !dev.Closed() {
			t.Errorf("round %d: device not closed", round)
		}
		if dev.Resets() != 2 {
			t.Errorf("round %d: device resets = %d, expected 2", round, dev.Resets())
		}
	}
}
