package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deck-arcade/internal/config"
	"github.com/vovakirdan/deck-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive game picker",
	Long: `Opens the game list. Pick a game with the arrow keys and Enter;
Esc in a game returns to the list.`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	warnTerminalSize(cfg.Panel.Grid())

	logger, closeLog, err := sessionLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore()
	deps := tui.SessionDeps{
		Config:   cfg,
		Renderer: newRenderer(cfg, logger),
		Store:    store,
		Logger:   logger,
		Seed:     flagSeed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := tui.RunSession(ctx, deps, "")
	stop()

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
