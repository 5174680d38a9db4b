// Package device defines the contract of a grid panel of display buttons and
// provides an in-memory implementation.
package device

import (
	"errors"
	"image"
)

// ErrClosed is returned by operations on a closed device.
var ErrClosed = errors.New("device: closed")

// InputFunc receives press (true) and release (false) events for a cell.
// Devices invoke it from their own goroutine, never from the caller of
// PushImage.
type InputFunc func(index int, pressed bool)

// Device is a panel of square display buttons addressed by physical index.
type Device interface {
	Open() error
	// Reset blanks every cell.
	Reset() error
	Close() error
	CellCount() int
	// CellSize returns the bitmap edge length in pixels.
	CellSize() int
	PushImage(index int, img image.Image) error
	// SetInputCallback installs the single input callback; nil detaches it.
	SetInputCallback(fn InputFunc)
}

// Captioner is implemented by devices that can also show a cell's text
// natively, such as a terminal simulator that cannot display bitmaps at a
// legible size. The engine calls Caption after every successful PushImage.
type Captioner interface {
	Caption(index int, text string)
}
