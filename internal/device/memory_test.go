package device

import (
	"errors"
	"image"
	"sync"
	"testing"
)

func TestMemoryPushAndFail(t *testing.T) {
	m := NewMemory(32, 72)
	if err := m.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer m.Close()

	img := image.NewRGBA(image.Rect(0, 0, 72, 72))
	if err := m.PushImage(3, img); err != nil {
		t.Fatalf("PushImage() error = %v", err)
	}
	if m.PushCount(3) != 1 {
		t.Errorf("PushCount(3) = %d, expected 1", m.PushCount(3))
	}
	if err := m.PushImage(32, img); err == nil {
		t.Error("PushImage out of range should fail")
	}

	boom := errors.New("usb gone")
	m.FailWrites(3, boom)
	if err := m.PushImage(3, img); !errors.Is(err, boom) {
		t.Errorf("PushImage() error = %v, expected injected failure", err)
	}
	m.FailWrites(3, nil)
	if err := m.PushImage(3, img); err != nil {
		t.Errorf("PushImage() after clearing failure error = %v", err)
	}
	if len(m.Pushes()) != 2 {
		t.Errorf("Pushes() = %d, expected 2 successful", len(m.Pushes()))
	}
}

func TestMemoryDeliversInOrder(t *testing.T) {
	m := NewMemory(32, 72)
	if err := m.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var mu sync.Mutex
	var got []Push
	m.SetInputCallback(func(index int, pressed bool) {
		mu.Lock()
		defer mu.Unlock()
		p := Push{Index: index}
		if !pressed {
			p.Index = -index - 1
		}
		got = append(got, p)
	})

	if err := m.Press(5); err != nil {
		t.Fatalf("Press() error = %v", err)
	}
	if err := m.Press(6); err != nil {
		t.Fatalf("Press() error = %v", err)
	}

	mu.Lock()
	expected := []int{5, -6, 6, -7}
	if len(got) != len(expected) {
		t.Fatalf("events = %v, expected %d", got, len(expected))
	}
	for i, e := range expected {
		if got[i].Index != e {
			t.Errorf("event %d = %d, expected %d", i, got[i].Index, e)
		}
	}
	mu.Unlock()

	m.Close()
	if !m.Closed() {
		t.Error("Closed() should be true")
	}
	if err := m.Emit(1, true); err == nil {
		t.Error("Emit after Close should fail")
	}
	if err := m.PushImage(0, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("PushImage after Close error = %v, expected ErrClosed", err)
	}
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory(4, 8)
	m.PushImage(0, image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if err := m.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if _, ok := m.Image(0); ok {
		t.Error("Reset should blank cells")
	}
	if m.Resets() != 1 {
		t.Errorf("Resets() = %d, expected 1", m.Resets())
	}
}
