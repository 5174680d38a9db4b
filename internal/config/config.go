// Package config provides YAML-based configuration loading for the panel,
// the engine and every game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/deck-arcade/internal/core"
)

// Config is the complete runtime configuration.
type Config struct {
	Panel   PanelConfig   `yaml:"panel"`
	Engine  EngineConfig  `yaml:"engine"`
	Memory  MemoryConfig  `yaml:"memory"`
	Whack   WhackConfig   `yaml:"whack"`
	Slots   SlotsConfig   `yaml:"slots"`
	Snake   SnakeConfig   `yaml:"snake"`
	Glide   GlideConfig   `yaml:"glide"`
	Blocks  BlocksConfig  `yaml:"blocks"`
	Fortune FortuneConfig `yaml:"fortune"`
}

// PanelConfig describes the physical cell grid.
type PanelConfig struct {
	Cols     int    `yaml:"cols"`
	Rows     int    `yaml:"rows"`
	CellSize int    `yaml:"cell_size"` // bitmap edge in pixels
	FontPath string `yaml:"font_path"` // optional TrueType font; built-in bitmap font if empty
}

// Grid returns the panel geometry.
func (p PanelConfig) Grid() core.Panel {
	return core.Panel{Cols: p.Cols, Rows: p.Rows}
}

// EngineConfig configures the event loop.
type EngineConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// MemoryConfig configures the memory match game.
type MemoryConfig struct {
	MismatchDwell time.Duration `yaml:"mismatch_dwell"` // how long a mismatched pair stays visible
}

// WhackConfig configures whack-a-mole.
type WhackConfig struct {
	MaxMoles      int           `yaml:"max_moles"`
	MoleLifetime  time.Duration `yaml:"mole_lifetime"`
	SpawnDelayMin time.Duration `yaml:"spawn_delay_min"` // after a spawn
	SpawnDelayMax time.Duration `yaml:"spawn_delay_max"`
	HitDelayMin   time.Duration `yaml:"hit_delay_min"` // after a hit
	HitDelayMax   time.Duration `yaml:"hit_delay_max"`
	GameDuration  time.Duration `yaml:"game_duration"`
}

// SlotsConfig configures the slot machine.
type SlotsConfig struct {
	Symbols        []string      `yaml:"symbols"`
	Repeats        int           `yaml:"repeats"` // shuffled alphabet copies per lane order
	FrameInterval  time.Duration `yaml:"frame_interval"`
	RevealDelay    time.Duration `yaml:"reveal_delay"`    // pause after the last lane stops
	ResultDuration time.Duration `yaml:"result_duration"` // how long Win/Lose is shown
}

// SnakeConfig configures snake escape.
type SnakeConfig struct {
	StepInterval time.Duration `yaml:"step_interval"`
}

// GlideConfig configures the glide game.
type GlideConfig struct {
	StepInterval time.Duration `yaml:"step_interval"`
	JumpAltitude int           `yaml:"jump_altitude"`
}

// BlocksConfig configures falling blocks.
type BlocksConfig struct {
	GravityInterval time.Duration `yaml:"gravity_interval"`
	LinePoints      int           `yaml:"line_points"`
}

// FortuneConfig configures the fortune board.
type FortuneConfig struct {
	RevealDelay time.Duration `yaml:"reveal_delay"`
	Fortunes    []string      `yaml:"fortunes"`
}

// Validate rejects configurations the engine cannot run.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, d time.Duration) {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	atLeast := func(name string, v, minimum int) {
		if v < minimum {
			errs = append(errs, fmt.Errorf("%s must be at least %d, got %d", name, minimum, v))
		}
	}

	atLeast("panel.cols", c.Panel.Cols, 1)
	atLeast("panel.rows", c.Panel.Rows, 1)
	atLeast("panel.cell_size", c.Panel.CellSize, 8)
	positive("engine.tick_interval", c.Engine.TickInterval)
	positive("memory.mismatch_dwell", c.Memory.MismatchDwell)

	atLeast("whack.max_moles", c.Whack.MaxMoles, 1)
	positive("whack.mole_lifetime", c.Whack.MoleLifetime)
	positive("whack.game_duration", c.Whack.GameDuration)
	if c.Whack.SpawnDelayMin < 0 || c.Whack.SpawnDelayMax < c.Whack.SpawnDelayMin {
		errs = append(errs, fmt.Errorf("whack spawn delay range [%s, %s] is invalid", c.Whack.SpawnDelayMin, c.Whack.SpawnDelayMax))
	}
	if c.Whack.HitDelayMin < 0 || c.Whack.HitDelayMax < c.Whack.HitDelayMin {
		errs = append(errs, fmt.Errorf("whack hit delay range [%s, %s] is invalid", c.Whack.HitDelayMin, c.Whack.HitDelayMax))
	}

	atLeast("slots.symbols", len(c.Slots.Symbols), 2)
	atLeast("slots.repeats", c.Slots.Repeats, 1)
	positive("slots.frame_interval", c.Slots.FrameInterval)
	positive("slots.reveal_delay", c.Slots.RevealDelay)
	positive("slots.result_duration", c.Slots.ResultDuration)

	positive("snake.step_interval", c.Snake.StepInterval)
	positive("glide.step_interval", c.Glide.StepInterval)
	atLeast("glide.jump_altitude", c.Glide.JumpAltitude, 1)
	positive("blocks.gravity_interval", c.Blocks.GravityInterval)
	atLeast("blocks.line_points", c.Blocks.LinePoints, 0)
	positive("fortune.reveal_delay", c.Fortune.RevealDelay)
	atLeast("fortune.fortunes", len(c.Fortune.Fortunes), 1)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
