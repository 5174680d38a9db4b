package core

import "testing"

func TestFrameLastWriteWins(t *testing.T) {
	f := NewFrame()
	f.Set(3, Spec("a", FontMedium, Black))
	f.Set(1, Spec("b", FontMedium, Black))
	f.Set(3, Spec("c", FontMedium, Red))

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", f.Len())
	}
	ups := f.Updates()
	if ups[0].Index != 3 || ups[1].Index != 1 {
		t.Errorf("order = [%d %d], expected [3 1]", ups[0].Index, ups[1].Index)
	}
	if ups[0].Spec.Text != "c" || ups[0].Spec.Background != Red {
		t.Errorf("index 3 spec = %+v, expected last write", ups[0].Spec)
	}
}

func TestFrameMergeAndFill(t *testing.T) {
	var f Frame
	f.Fill([]int{0, 1, 2}, Blank(LightBlue))

	other := NewFrame()
	other.Set(1, Spec("X", FontHuge, Black))
	other.Set(5, Blank(Gray))
	f.Merge(other)

	if f.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", f.Len())
	}
	if s, _ := f.Get(1); s.Text != "X" {
		t.Errorf("Get(1) = %+v, expected merged X", s)
	}
	if _, ok := f.Get(9); ok {
		t.Error("Get(9) should be absent")
	}
}

func TestVisualSpecEquality(t *testing.T) {
	a := Spec("Win!", FontLarge, Green)
	b := Spec("Win!", FontLarge, Green).WithForeground(White)
	if a != b {
		t.Error("default and explicit white foreground should compare equal")
	}
	if a == a.WithText("Lose") {
		t.Error("different text should not compare equal")
	}
}

func TestOutcome(t *testing.T) {
	if OutcomeNone.Terminal() {
		t.Error("none should not be terminal")
	}
	for _, o := range []Outcome{OutcomeWin, OutcomeLose, OutcomeDraw, OutcomeOver} {
		if !o.Terminal() {
			t.Errorf("%s should be terminal", o)
		}
	}
	if (GameState{Outcome: OutcomeDraw}).Terminal() != true {
		t.Error("draw state should be terminal")
	}
}
