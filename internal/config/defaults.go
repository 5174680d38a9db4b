package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/deck-arcade.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hard-coded configuration used when no file and no
// embedded default can be read.
func Default() *Config {
	return &Config{
		Panel: PanelConfig{
			Cols:     8,
			Rows:     4,
			CellSize: 96,
		},
		Engine: EngineConfig{
			TickInterval: 100 * time.Millisecond,
		},
		Memory: MemoryConfig{
			MismatchDwell: time.Second,
		},
		Whack: WhackConfig{
			MaxMoles:      2,
			MoleLifetime:  time.Second,
			SpawnDelayMin: 100 * time.Millisecond,
			SpawnDelayMax: 300 * time.Millisecond,
			HitDelayMin:   500 * time.Millisecond,
			HitDelayMax:   1500 * time.Millisecond,
			GameDuration:  60 * time.Second,
		},
		Slots: SlotsConfig{
			Symbols:        []string{"cherry", "lemon", "orange", "grape", "star", "diamond"},
			Repeats:        10,
			FrameInterval:  200 * time.Millisecond,
			RevealDelay:    2 * time.Second,
			ResultDuration: 3 * time.Second,
		},
		Snake: SnakeConfig{
			StepInterval: time.Second,
		},
		Glide: GlideConfig{
			StepInterval: 500 * time.Millisecond,
			JumpAltitude: 3,
		},
		Blocks: BlocksConfig{
			GravityInterval: 500 * time.Millisecond,
			LinePoints:      10,
		},
		Fortune: FortuneConfig{
			RevealDelay: time.Second,
			Fortunes: []string{
				"Great\nluck", "Good\nluck", "Small\nluck", "Luck", "Some\nluck", "Bad\nluck",
			},
		},
	}
}
