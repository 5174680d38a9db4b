package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/core"
	"github.com/vovakirdan/deck-arcade/internal/engine"
	"github.com/vovakirdan/deck-arcade/internal/platform/tui"
	"github.com/vovakirdan/deck-arcade/internal/registry"
)

// chromeLines is the title and help text around the simulated panel.
const chromeLines = 3

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start the specified game on the simulated panel.

Controls:
  Mouse      - Click a button to press it
  1-8, q-i,
  a-k, z-,   - Tap the button in that row and column
  ?          - Toggle help
  Esc/Ctrl+C - Quit

Examples:
  deckarcade play tictactoe
  deckarcade play slots --seed 42
  deckarcade play whack --config ./my-arcade.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'deckarcade list' to see available games.")
		os.Exit(1)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	grid := cfg.Panel.Grid()
	warnTerminalSize(grid)

	logger, closeLog, err := sessionLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore()
	opts := engine.Options{
		Runtime: core.RuntimeConfig{
			Seed:         flagSeed,
			TickInterval: cfg.Engine.TickInterval,
		},
		Logger: logger.With("game", gameID),
	}
	if store != nil {
		opts.Recorder = store
	}

	panel := tui.NewPanel(grid, cfg.Panel.CellSize)
	eng := engine.New(panel, game, newRenderer(cfg, logger), opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := tui.Run(ctx, eng, panel, game.Title())
	stop()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// warnTerminalSize reports a terminal too small to show the whole panel.
// The game still starts; the panel is clipped.
func warnTerminalSize(grid core.Panel) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return
	}
	needW, needH := tui.PanelSize(grid)
	needH += chromeLines
	if w < needW || h < needH {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the panel needs %dx%d\n", w, h, needW, needH)
	}
}
