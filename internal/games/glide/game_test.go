package glide

import (
	"testing"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
)

var (
	panel = core.Panel{Cols: 8, Rows: 4}
	t0    = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
)

const (
	jumpKey  = 4
	jump2Key = 5
	glideKey = 13
	resetKey = 31
	interval = 500 * time.Millisecond
)

func newGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(panel, config.Default().Glide)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	g.Init(core.RuntimeConfig{}, t0)
	return g
}

// launch jumps at t0 and returns the time of the first step.
func launch(t *testing.T, g *Game) time.Time {
	t.Helper()
	g.OnInput(core.Press(jumpKey), t0)
	g.OnTick(t0)
	if !g.Flying() || g.Altitude() != 3 {
		t.Fatalf("after jump flying=%v altitude=%d", g.Flying(), g.Altitude())
	}
	return t0.Add(interval)
}

func TestInitFrame(t *testing.T) {
	g := newGame(t)
	f := g.Init(core.RuntimeConfig{}, t0)

	checks := map[int]core.VisualSpec{
		24:       fishSpec,
		0:        skySpec,
		26:       waveSpec,
		27:       calmSpec,
		jumpKey:  jumpSpec,
		jump2Key: jumpSpec,
		glideKey: glideSpec,
		resetKey: resetSpec,
	}
	for idx, want := range checks {
		if got, _ := f.Get(idx); got != want {
			t.Errorf("cell %d = %+v, expected %+v", idx, got, want)
		}
	}
}

func TestFreeFall(t *testing.T) {
	g := newGame(t)
	now := launch(t, g)

	for want := 2; want > 0; want-- {
		res := g.OnTick(now)
		if g.Altitude() != want || res.State.Terminal() {
			t.Fatalf("altitude = %d, expected %d", g.Altitude(), want)
		}
		now = now.Add(interval)
	}
	res := g.OnTick(now)
	if res.State.Outcome != core.OutcomeLose || res.State.Score != 3 {
		t.Fatalf("state = %+v, expected lose with score 3", res.State)
	}
	if spec, _ := res.Frame.Get(resetKey); spec.Text != "Score:\n3" {
		t.Errorf("reset cell = %q", spec.Text)
	}
	if spec, _ := res.Frame.Get(0); spec != splashSpec {
		t.Errorf("board = %+v, expected splash", spec)
	}
}

func TestGlideHoldsAltitude(t *testing.T) {
	g := newGame(t)
	now := launch(t, g)

	for range 5 {
		g.OnInput(core.Press(glideKey), now)
		g.OnTick(now)
		now = now.Add(interval)
	}
	if g.Altitude() != 3 || g.Distance() != 5 {
		t.Fatalf("altitude=%d distance=%d, expected 3 and 5", g.Altitude(), g.Distance())
	}

	// A glide lasts one step only.
	g.OnTick(now)
	if g.Altitude() != 2 {
		t.Errorf("altitude = %d after unglided step", g.Altitude())
	}
}

func TestStepInterval(t *testing.T) {
	g := newGame(t)
	now := launch(t, g)
	g.OnTick(now.Add(-time.Millisecond))
	if g.Distance() != 0 {
		t.Fatal("fish moved before the step interval")
	}
	g.OnTick(now)
	if g.Distance() != 1 {
		t.Errorf("distance = %d, expected 1", g.Distance())
	}
}

func TestViewScrolls(t *testing.T) {
	g := newGame(t)
	now := launch(t, g)
	for range 3 {
		g.OnInput(core.Press(glideKey), now)
		g.OnTick(now)
		now = now.Add(interval)
	}
	// Distance 3 puts the fish in view column 1, altitude 3 in row 0.
	res := g.OnTick(now.Add(-time.Millisecond))
	if spec, _ := res.Frame.Get(1); spec != fishSpec {
		t.Errorf("fish cell = %+v", spec)
	}
	// The window starts at world column 2, so wave parity shifts.
	if spec, _ := res.Frame.Get(24); spec != waveSpec {
		t.Errorf("sea cell 24 = %+v, expected wave", spec)
	}
	if spec, _ := res.Frame.Get(25); spec != calmSpec {
		t.Errorf("sea cell 25 = %+v, expected calm", spec)
	}
}

func TestInputGuards(t *testing.T) {
	g := newGame(t)

	// Glide before the jump does nothing.
	g.OnInput(core.Press(glideKey), t0)
	g.OnTick(t0)
	if g.Flying() {
		t.Fatal("glide launched the fish")
	}

	// Releases and board presses are ignored.
	g.OnInput(core.Release(jumpKey), t0)
	g.OnInput(core.Press(0), t0)
	g.OnTick(t0)
	if g.Flying() {
		t.Fatal("fish launched without a jump press")
	}

	g.OnInput(core.Press(jump2Key), t0)
	g.OnTick(t0)
	if !g.Flying() {
		t.Fatal("second jump key did not launch")
	}
}

func TestPanelTooSmall(t *testing.T) {
	if _, err := New(core.Panel{Cols: 4, Rows: 4}, config.Default().Glide); err == nil {
		t.Error("expected error for 4x4 panel")
	}
}
