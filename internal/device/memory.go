package device

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

// Push is one recorded PushImage call.
type Push struct {
	Index int
	Image image.Image
}

// Memory is a Device that keeps everything in memory. It is used for tests
// and headless runs. Events injected with Press or Emit are delivered on a
// dedicated goroutine, in order.
type Memory struct {
	cells    int
	cellSize int

	mu       sync.Mutex
	open     bool
	closed   bool
	callback InputFunc
	images   map[int]image.Image
	pushes   []Push
	resets   int
	failing  map[int]error // index -> error returned by PushImage; -1 fails all

	qmu    sync.Mutex // guards events; never held together with mu
	events chan event
	wg     sync.WaitGroup
}

type event struct {
	index   int
	pressed bool
	done    chan struct{}
}

// NewMemory creates an in-memory device with the given cell count and
// bitmap size.
func NewMemory(cells, cellSize int) *Memory {
	return &Memory{
		cells:    cells,
		cellSize: cellSize,
		images:   make(map[int]image.Image),
		failing:  make(map[int]error),
	}
}

// Open starts the input delivery goroutine.
func (m *Memory) Open() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.open {
		m.mu.Unlock()
		return nil
	}
	m.open = true
	m.mu.Unlock()

	m.qmu.Lock()
	m.events = make(chan event, 64)
	m.wg.Add(1)
	go m.deliver(m.events)
	m.qmu.Unlock()
	return nil
}

func (m *Memory) deliver(events <-chan event) {
	defer m.wg.Done()
	for ev := range events {
		m.mu.Lock()
		cb := m.callback
		m.mu.Unlock()
		if cb != nil {
			cb(ev.index, ev.pressed)
		}
		if ev.done != nil {
			close(ev.done)
		}
	}
}

// Reset blanks all cells.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.resets++
	m.images = make(map[int]image.Image)
	return nil
}

// Close stops event delivery and waits for pending callbacks to finish.
func (m *Memory) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.qmu.Lock()
	if m.events != nil {
		close(m.events)
		m.events = nil
	}
	m.qmu.Unlock()
	m.wg.Wait()
	return nil
}

// CellCount returns the number of cells.
func (m *Memory) CellCount() int { return m.cells }

// CellSize returns the bitmap edge length.
func (m *Memory) CellSize() int { return m.cellSize }

// PushImage stores img as the content of cell index.
func (m *Memory) PushImage(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if index < 0 || index >= m.cells {
		return fmt.Errorf("device: index %d out of range [0,%d)", index, m.cells)
	}
	if err, ok := m.failing[index]; ok {
		return err
	}
	if err, ok := m.failing[-1]; ok {
		return err
	}
	m.images[index] = img
	m.pushes = append(m.pushes, Push{Index: index, Image: img})
	return nil
}

// SetInputCallback installs the input callback.
func (m *Memory) SetInputCallback(fn InputFunc) {
	m.mu.Lock()
	m.callback = fn
	m.mu.Unlock()
}

// Emit queues an input event for asynchronous delivery.
func (m *Memory) Emit(index int, pressed bool) error {
	_, err := m.enqueue(index, pressed, false)
	return err
}

// Press delivers a press followed by a release and waits until the
// callback has handled both.
func (m *Memory) Press(index int) error {
	if _, err := m.enqueue(index, true, false); err != nil {
		return err
	}
	done, err := m.enqueue(index, false, true)
	if err != nil {
		return err
	}
	<-done
	return nil
}

func (m *Memory) enqueue(index int, pressed, wait bool) (chan struct{}, error) {
	m.qmu.Lock()
	defer m.qmu.Unlock()
	if m.events == nil {
		return nil, errors.New("device: not open")
	}
	ev := event{index: index, pressed: pressed}
	if wait {
		ev.done = make(chan struct{})
	}
	m.events <- ev
	return ev.done, nil
}

// FailWrites makes PushImage to index return err. Index -1 fails every
// cell. A nil err clears the failure.
func (m *Memory) FailWrites(index int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failing, index)
		return
	}
	m.failing[index] = err
}

// Image returns the current content of a cell.
func (m *Memory) Image(index int) (image.Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[index]
	return img, ok
}

// Pushes returns a copy of every successful push so far.
func (m *Memory) Pushes() []Push {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Push, len(m.pushes))
	copy(out, m.pushes)
	return out
}

// PushCount returns the number of successful pushes to index.
func (m *Memory) PushCount(index int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.pushes {
		if p.Index == index {
			n++
		}
	}
	return n
}

// Resets returns how many times Reset was called.
func (m *Memory) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

// Closed reports whether Close was called.
func (m *Memory) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
