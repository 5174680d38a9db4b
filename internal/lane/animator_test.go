package lane

import (
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/core"
)

var symbols = []string{"cherry", "lemon", "orange", "grape", "star", "diamond"}

type recordingPainter struct {
	mu     sync.Mutex
	paints []core.Update
}

func (p *recordingPainter) Paint(index int, spec core.VisualSpec) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paints = append(p.paints, core.Update{Index: index, Spec: spec})
	return nil
}

func (p *recordingPainter) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.paints)
}

func (p *recordingPainter) last(n int) []core.Update {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]core.Update(nil), p.paints[len(p.paints)-n:]...)
}

func newTestAnimator(p core.Painter) *Animator {
	return New([]int{0, 8, 16}, symbols, Options{
		FrameInterval: time.Millisecond,
		Painter:       p,
		Style: func(s string) core.VisualSpec {
			return core.Spec(s, core.FontSmall, core.Black)
		},
	})
}

func TestOrderIsShuffledRepeats(t *testing.T) {
	a := newTestAnimator(nil)
	a.Start(42)
	defer a.Stop()

	order := a.Order()
	if len(order) != len(symbols)*DefaultRepeats {
		t.Fatalf("len(order) = %d, expected %d", len(order), len(symbols)*DefaultRepeats)
	}
	// Every chunk is a permutation of the alphabet.
	for c := 0; c < DefaultRepeats; c++ {
		seen := map[string]bool{}
		for _, s := range order[c*len(symbols) : (c+1)*len(symbols)] {
			seen[s] = true
		}
		if len(seen) != len(symbols) {
			t.Errorf("chunk %d is not a permutation: %v", c, order[c*len(symbols):(c+1)*len(symbols)])
		}
	}
}

func TestStopSnapsToWindow(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		p := &recordingPainter{}
		a := newTestAnimator(p)
		a.Start(seed)
		time.Sleep(time.Duration(seed*3) * time.Millisecond)
		a.Stop()

		if a.Spinning() {
			t.Fatal("lane should not spin after Stop")
		}
		off := a.Offset()
		if off%3 != 0 {
			t.Errorf("seed %d: offset %d not divisible by 3", seed, off)
		}
		order := a.Order()
		res := a.Result()
		for j := 0; j < 3; j++ {
			if res[j] != order[(off+j)%len(order)] {
				t.Errorf("seed %d: result %v is not order[%d:%d]", seed, res, off, off+3)
			}
		}

		final := p.last(3)
		for j, up := range final {
			if up.Index != []int{0, 8, 16}[j] || up.Spec.Text != res[j] {
				t.Errorf("seed %d: final paint %d = %+v, expected %s", seed, j, up, res[j])
			}
		}
	}
}

func TestNoPaintsAfterStop(t *testing.T) {
	p := &recordingPainter{}
	a := newTestAnimator(p)
	a.Start(7)
	time.Sleep(5 * time.Millisecond)
	a.Stop()

	n := p.count()
	time.Sleep(10 * time.Millisecond)
	if p.count() != n {
		t.Errorf("paints after Stop returned: %d -> %d", n, p.count())
	}
}

func TestStartStopIdempotent(t *testing.T) {
	a := newTestAnimator(nil)
	a.Stop() // idle stop is a no-op

	a.Start(1)
	order := a.Order()
	a.Start(2) // already spinning
	if got := a.Order(); got[0] != order[0] || len(got) != len(order) {
		t.Error("Start on a spinning lane should not reshuffle")
	}
	a.Stop()
	a.Stop()
	if len(a.Result()) != 3 {
		t.Errorf("Result() = %v, expected 3 symbols", a.Result())
	}
}
