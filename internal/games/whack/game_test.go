package whack

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
)

var (
	panel = core.Panel{Cols: 8, Rows: 4}
	t0    = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
)

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := New(panel, config.Default().Whack)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	g.Init(core.RuntimeConfig{Seed: seed}, t0)
	return g
}

func TestFirstSpawnImmediate(t *testing.T) {
	g := newGame(t, 1)
	res := g.OnTick(t0)
	if len(g.Moles()) != 1 {
		t.Fatalf("moles = %d after first tick, expected 1", len(g.Moles()))
	}
	for idx := range g.Moles() {
		if spec, _ := res.Frame.Get(idx); spec != moleSpec {
			t.Errorf("mole cell %d = %+v", idx, spec)
		}
	}
	status, _ := res.Frame.Get(31)
	if status.Text != "Score: 0\nTime: 60" || status.Background != core.DarkGreen {
		t.Errorf("status = %+v", status)
	}
}

func TestHitScoresAndReschedules(t *testing.T) {
	g := newGame(t, 2)
	g.OnTick(t0)

	var mole int
	for idx := range g.Moles() {
		mole = idx
	}
	now := t0.Add(50 * time.Millisecond)
	res := g.OnInput(core.Press(mole), now)
	if res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", res.State.Score)
	}
	if spec, _ := res.Frame.Get(mole); spec != holeSpec {
		t.Errorf("hit cell = %+v, expected hole", spec)
	}
	if g.nextSpawn.Before(now.Add(500*time.Millisecond)) || g.nextSpawn.After(now.Add(1500*time.Millisecond)) {
		t.Errorf("next spawn %s outside hit delay range", g.nextSpawn.Sub(now))
	}

	// Pressing an empty hole does nothing.
	if res := g.OnInput(core.Press(mole), now); !res.Frame.Empty() || res.State.Score != 1 {
		t.Error("empty hole press should be ignored")
	}
}

func TestCapAndLifetime(t *testing.T) {
	cfg := config.Default().Whack
	rng := rand.New(rand.NewSource(7))

	for seed := int64(1); seed <= 5; seed++ {
		g := newGame(t, seed)
		for now := t0; now.Before(t0.Add(cfg.GameDuration)); now = now.Add(100 * time.Millisecond) {
			g.OnTick(now)

			moles := g.Moles()
			if len(moles) > cfg.MaxMoles {
				t.Fatalf("seed %d at %s: %d moles, cap %d", seed, now.Sub(t0), len(moles), cfg.MaxMoles)
			}
			for idx, exp := range moles {
				age := cfg.MoleLifetime - exp.Sub(now)
				if age < 0 || age > cfg.MoleLifetime {
					t.Fatalf("seed %d: mole %d age %s outside [0, %s]", seed, idx, age, cfg.MoleLifetime)
				}
				if rng.Intn(4) == 0 {
					g.OnInput(core.Press(idx), now)
				}
			}
		}
	}
}

func TestGameOver(t *testing.T) {
	g := newGame(t, 3)
	g.OnTick(t0)
	g.state.Score = 5

	res := g.OnTick(t0.Add(60 * time.Second))
	if res.State.Outcome != core.OutcomeOver {
		t.Fatalf("outcome = %s, expected over", res.State.Outcome)
	}
	for _, idx := range g.Layout().Board() {
		if spec, _ := res.Frame.Get(idx); spec != gameOverSpec {
			t.Errorf("cell %d = %+v, expected game over", idx, spec)
		}
	}
	if spec, _ := res.Frame.Get(31); spec.Text != "Score: 5\nReset" || spec.Background != core.OrangeRed {
		t.Errorf("reset cell = %+v", spec)
	}

	// Afterwards input is ignored and tick is a no-op.
	if res := g.OnTick(t0.Add(61 * time.Second)); !res.Frame.Empty() {
		t.Error("tick after game over should be a no-op")
	}
	if res := g.OnInput(core.Press(0), t0.Add(61*time.Second)); !res.Frame.Empty() {
		t.Error("input after game over should be ignored")
	}
}

func TestNewRejectsBadCap(t *testing.T) {
	cfg := config.Default().Whack
	cfg.MaxMoles = 17
	if _, err := New(panel, cfg); err == nil {
		t.Error("New() should reject a cap larger than the board")
	}
}
