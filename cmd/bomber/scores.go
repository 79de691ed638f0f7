package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Display the best runs for a mode, with overall statistics.
Mode is bomber (campaign, the default) or bomber_endless.

Examples:
  bomber scores
  bomber scores bomber_endless --limit 20
  bomber scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "bomber"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (bomber or bomber_endless)\n", gameID)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs for %s\n", gameID)
		return
	}

	if err := printScores(os.Stdout, store, gameID, flagLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printScores(w io.Writer, store *storage.Store, gameID string, limit int) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	runs, err := store.TopRuns(gameID, limit)
	if err != nil {
		return fmt.Errorf("cannot read runs: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", game.Title())
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %-5s  %-4s  %s\n", "Rank", "Player", "Score", "Level", "", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %-5s  %-4s  %s\n", "----", "------", "-----", "-----", "", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		won := ""
		if r.Won {
			won = "WON"
		}
		fmt.Fprintf(w, "  %-4d  %-12s  %-8d  %-5d  %-4s  %s\n",
			i+1, player, r.Score, r.Level, won, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return fmt.Errorf("cannot read stats: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Runs: %d  Wins: %d  Best: %d  Best level: %d  Average: %.0f\n",
		stats.RunsCount, stats.Wins, stats.HighScore, stats.BestLevel, stats.AvgScore)
	return nil
}
