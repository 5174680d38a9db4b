package core

import "errors"

// ErrInvalidTransition marks input that a game rejects in its current state,
// such as a move into an occupied cell. It causes no state change and no
// repaint.
var ErrInvalidTransition = errors.New("core: invalid transition")

// Event is one press or release of a physical cell.
type Event struct {
	Index   int
	Pressed bool
}

// Press is shorthand for a pressed event on index.
func Press(index int) Event {
	return Event{Index: index, Pressed: true}
}

// Release is shorthand for a released event on index.
func Release(index int) Event {
	return Event{Index: index, Pressed: false}
}

// Painter pushes one cell spec to the device through the engine's write
// path. Background tasks such as lane animations paint through it.
type Painter interface {
	Paint(index int, spec VisualSpec) error
}

// PainterFunc adapts a function to the Painter interface.
type PainterFunc func(index int, spec VisualSpec) error

// Paint calls f(index, spec).
func (f PainterFunc) Paint(index int, spec VisualSpec) error {
	return f(index, spec)
}
