package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	Seed         int64         // RNG seed for deterministic gameplay; 0 means time-based
	TickInterval time.Duration // Engine tick period
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Seed:         0, // 0 means use current time in the engine
		TickInterval: 100 * time.Millisecond,
	}
}

// Outcome is the terminal classification of a game.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
	OutcomeDraw
	OutcomeOver // time or moves ran out; score is what counts
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomeDraw:
		return "draw"
	case OutcomeOver:
		return "over"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the game.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the engine.
type GameState struct {
	Score   int     // Current score
	Outcome Outcome // OutcomeNone while the game is running
	Winner  string  // Winning side, for games that have one (e.g. "X")
}

// Terminal reports whether the game has ended.
func (s GameState) Terminal() bool {
	return s.Outcome.Terminal()
}

// StepResult is returned by Game.OnInput and Game.OnTick.
// Frame holds the cell updates to push; State the status after the step.
type StepResult struct {
	Frame Frame
	State GameState
}
