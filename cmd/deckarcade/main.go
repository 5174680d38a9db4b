// deckarcade runs small games on a grid of lit push buttons. Without
// hardware it simulates the panel in the terminal or over SSH.
//
// Usage:
//
//	deckarcade list              - List available games
//	deckarcade play <game>       - Play a game on the simulated panel
//	deckarcade menu              - Pick games interactively
//	deckarcade serve             - Start SSH server for remote play
//	deckarcade scores <game>     - Show results for a game
//
// Global flags:
//
//	--config <path>    - Configuration file (default: search path)
//	--seed <value>     - Set RNG seed for reproducible rounds
//	--db <path>        - Set database path (default: ~/.deck-arcade/scores.db)
//	--log-file <path>  - Log destination for terminal sessions
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/engine"
	"github.com/vovakirdan/deck-arcade/internal/render"
	"github.com/vovakirdan/deck-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/deck-arcade/internal/games/blocks"
	_ "github.com/vovakirdan/deck-arcade/internal/games/escape"
	_ "github.com/vovakirdan/deck-arcade/internal/games/fortune"
	_ "github.com/vovakirdan/deck-arcade/internal/games/glide"
	_ "github.com/vovakirdan/deck-arcade/internal/games/memory"
	_ "github.com/vovakirdan/deck-arcade/internal/games/slots"
	_ "github.com/vovakirdan/deck-arcade/internal/games/tictactoe"
	_ "github.com/vovakirdan/deck-arcade/internal/games/whack"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deckarcade",
	Short: "Deck Arcade - Play games on a grid of lit buttons",
	Long: `Deck Arcade runs small games on a panel of buttons that each show
an image. Without a hardware panel, the panel is simulated in your terminal:
every button is a box you can click or reach with a key.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View results

Examples:
  deckarcade list
  deckarcade play memory
  deckarcade menu
  deckarcade serve --ssh :2222
  deckarcade scores whack`,
}

func init() {
	defaultDB := "~/.deck-arcade/scores.db"
	defaultLog := ""
	if dir := config.Dir(); dir != "" {
		defaultLog = filepath.Join(dir, "arcade.log")
	}

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDB, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", defaultLog, "Log file for terminal sessions (empty discards logs)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "deck-arcade",
		Level:           level,
	}), nil
}

// sessionLogger logs to --log-file, since the terminal belongs to the
// panel while a game runs. The returned func closes the file.
func sessionLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		l, err := newLogger(io.Discard)
		return l, func() {}, err
	}
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, func() { f.Close() }, nil
}

// newRenderer loads the configured TrueType font, or falls back to the
// built-in bitmap font.
func newRenderer(cfg *config.Config, logger *log.Logger) engine.Renderer {
	if cfg.Panel.FontPath == "" {
		return render.NewRenderer()
	}
	r, err := render.NewRendererFromFile(cfg.Panel.FontPath)
	if err != nil {
		logger.Warn("using built-in font", "err", err)
		return render.NewRenderer()
	}
	return r
}

// openStore opens the results database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
