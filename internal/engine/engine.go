// Package engine runs one game on one device: it owns the tick driver, the
// input path and the single write path to the device.
//
// Two locks serialize everything. gameMu guards the game and is held for
// every Init, OnInput and OnTick call. writeMu is the device write gate and
// guards the render cache. The order is always gameMu then writeMu; lane
// goroutines take only writeMu, so a game may join its lanes while gameMu
// is held.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/device"
	"github.com/vovakirdan/deck-arcade/internal/registry"
	"github.com/vovakirdan/deck-arcade/internal/render"
)

// ErrDeviceWrite wraps failures to push a cell bitmap.
var ErrDeviceWrite = errors.New("engine: device write failed")

// Renderer turns a spec into a cell bitmap.
type Renderer interface {
	Render(spec core.VisualSpec, w, h int) image.Image
}

// ResultRecorder persists finished games.
type ResultRecorder interface {
	RecordResult(gameID string, state core.GameState) error
}

// Options configures an Engine.
type Options struct {
	Runtime  core.RuntimeConfig
	Logger   *log.Logger
	Recorder ResultRecorder // optional
	Now      func() time.Time
}

// Engine drives a game on a device.
type Engine struct {
	dev      device.Device
	game     registry.Game
	renderer Renderer
	runtime  core.RuntimeConfig
	logger   *log.Logger
	recorder ResultRecorder
	now      func() time.Time

	layout   *core.Layout
	resetIdx int

	gameMu   sync.Mutex
	open     bool
	resets   int64
	recorded bool // terminal state of the current round already recorded

	writeMu sync.Mutex
	cache   *render.Cache
}

// New creates an engine. The device is opened by Open or Run.
func New(dev device.Device, game registry.Game, renderer Renderer, opts Options) *Engine {
	if opts.Runtime.TickInterval <= 0 {
		opts.Runtime.TickInterval = core.DefaultConfig().TickInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "engine",
		})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Engine{
		dev:      dev,
		game:     game,
		renderer: renderer,
		runtime:  opts.Runtime,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		now:      opts.Now,
		layout:   game.Layout(),
		resetIdx: -1,
		cache:    render.NewCache(),
	}
	if idx, err := e.layout.Control(core.ControlReset); err == nil {
		e.resetIdx = idx
	}
	return e
}

// Game returns the game driven by the engine.
func (e *Engine) Game() registry.Game {
	return e.game
}

// Run opens the device, ticks the game until ctx is done, then shuts down
// in order: tick driver, input, game tasks, device.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Open(); err != nil {
		return err
	}

	ticker := time.NewTicker(e.runtime.TickInterval)
	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			return e.Close()
		case <-ticker.C:
			e.Tick(e.now())
		}
	}
}

// Open prepares the device, starts the first round and begins accepting
// input.
func (e *Engine) Open() error {
	if err := e.dev.Open(); err != nil {
		return fmt.Errorf("engine: open device: %w", err)
	}
	if err := e.dev.Reset(); err != nil {
		return fmt.Errorf("engine: reset device: %w", err)
	}

	if pa, ok := e.game.(registry.PainterAware); ok {
		pa.AttachPainter(core.PainterFunc(e.Paint))
	}

	e.gameMu.Lock()
	e.open = true
	e.resetLocked()
	e.gameMu.Unlock()

	e.dev.SetInputCallback(e.HandleInput)
	e.logger.Info("engine started", "game", e.game.ID(), "cells", len(e.layout.Cells()), "tick", e.runtime.TickInterval)
	return nil
}

// Close detaches input, joins game background tasks, then resets and
// closes the device.
func (e *Engine) Close() error {
	e.dev.SetInputCallback(nil)

	e.gameMu.Lock()
	wasOpen := e.open
	e.open = false
	if s, ok := e.game.(registry.Stopper); ok {
		s.Stop()
	}
	e.gameMu.Unlock()

	if !wasOpen {
		return nil
	}

	var errs []error
	if err := e.dev.Reset(); err != nil {
		errs = append(errs, fmt.Errorf("engine: reset device: %w", err))
	}
	if err := e.dev.Close(); err != nil {
		errs = append(errs, fmt.Errorf("engine: close device: %w", err))
	}
	e.logger.Info("engine stopped", "game", e.game.ID())
	return errors.Join(errs...)
}

// Reset starts a new round and repaints every layout cell.
func (e *Engine) Reset() {
	e.gameMu.Lock()
	defer e.gameMu.Unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	cfg := e.runtime
	if cfg.Seed == 0 {
		cfg.Seed = e.now().UnixNano()
	} else {
		cfg.Seed += e.resets
	}
	e.resets++
	e.recorded = false

	full := core.NewFrame()
	full.Fill(e.layout.Cells(), core.Blank(core.Black))
	full.Merge(e.game.Init(cfg, e.now()))

	e.writeMu.Lock()
	for _, u := range full.Updates() {
		_, _ = e.cache.Repaint(u.Index, u.Spec, e.write)
	}
	e.writeMu.Unlock()

	e.logger.Debug("game reset", "game", e.game.ID(), "seed", cfg.Seed)
}

// HandleInput is the device input callback.
func (e *Engine) HandleInput(index int, pressed bool) {
	e.gameMu.Lock()
	defer e.gameMu.Unlock()

	if !e.open {
		return
	}
	if !e.layout.Contains(index) {
		e.logger.Debug("input outside layout", "index", index, "pressed", pressed)
		return
	}
	if index == e.resetIdx {
		if pressed {
			e.logger.Info("reset requested", "game", e.game.ID())
			e.resetLocked()
		}
		return
	}

	res := e.game.OnInput(core.Event{Index: index, Pressed: pressed}, e.now())
	e.applyLocked(res.Frame)
}

// Tick advances the game to now.
func (e *Engine) Tick(now time.Time) {
	e.gameMu.Lock()
	defer e.gameMu.Unlock()

	if !e.open {
		return
	}
	res := e.game.OnTick(now)
	e.applyLocked(res.Frame)
}

// Paint pushes one cell through the render cache. It is the painter handed
// to games with background tasks and is safe for concurrent use.
func (e *Engine) Paint(index int, spec core.VisualSpec) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	_, err := e.cache.Apply(index, spec, e.write)
	return err
}

func (e *Engine) applyLocked(frame core.Frame) {
	if !frame.Empty() {
		e.writeMu.Lock()
		for _, u := range frame.Updates() {
			_, _ = e.cache.Apply(u.Index, u.Spec, e.write)
		}
		e.writeMu.Unlock()
	}

	st := e.game.State()
	if st.Terminal() && !e.recorded {
		e.logger.Info("game finished", "game", e.game.ID(), "outcome", st.Outcome, "score", st.Score, "winner", st.Winner)
		if e.recorder != nil {
			if err := e.recorder.RecordResult(e.game.ID(), st); err != nil {
				e.logger.Warn("record result", "game", e.game.ID(), "err", err)
			}
		}
	}
	e.recorded = st.Terminal()
}

// write renders and pushes one cell. Callers hold writeMu.
func (e *Engine) write(index int, spec core.VisualSpec) error {
	size := e.dev.CellSize()
	img := e.renderer.Render(spec, size, size)
	if err := e.dev.PushImage(index, img); err != nil {
		err = fmt.Errorf("%w: cell %d: %w", ErrDeviceWrite, index, err)
		e.logger.Error("device write failed", "index", index, "err", err)
		return err
	}
	if c, ok := e.dev.(device.Captioner); ok {
		c.Caption(index, spec.Text)
	}
	return nil
}
