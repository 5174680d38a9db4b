package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deck-arcade/internal/registry"
	"github.com/vovakirdan/deck-arcade/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show results for a game",
	Long: `Display the best results for the specified game. Without a game,
shows a summary of every game played so far.

Examples:
  deckarcade scores whack
  deckarcade scores blocks --limit 5
  deckarcade scores`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'deckarcade list' to see available games.")
		os.Exit(1)
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Results - %s\n", titleOf(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'deckarcade play %s' to set the first one!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %s\n", "Rank", "Score", "Outcome", "Date")
	fmt.Printf("  %-4s  %-8s  %-7s  %s\n", "----", "-----", "-------", "----")
	for i, entry := range scores {
		outcome := entry.Outcome
		if entry.Winner != "" {
			outcome += " " + entry.Winner
		}
		fmt.Printf("  %-4d  %-8d  %-7s  %s\n", i+1, entry.Score, outcome, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if st, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Played: %d  Won: %d  Lost: %d  Drawn: %d  Avg: %.1f\n",
			st.GamesCount, st.Wins, st.Losses, st.Draws, st.AvgScore)
	}
	if highScore, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Printf("  %-20s  %-6s  %-4s  %-5s  %-4s  %s\n", "Game", "Played", "Won", "Lost", "Best", "Last played")
	fmt.Printf("  %-20s  %-6s  %-4s  %-5s  %-4s  %s\n", "----", "------", "---", "----", "----", "-----------")
	for _, g := range registry.List() {
		st, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-20s  %-6d  %-4d  %-5d  %-4d  %s\n", g.Title, st.GamesCount, st.Wins, st.Losses,
			st.HighScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func titleOf(id string) string {
	for _, g := range registry.List() {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}
