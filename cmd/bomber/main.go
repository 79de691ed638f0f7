// bomber is a terminal grid bomb game: clear each level's enemies, find the
// hidden door and work through fifty levels of growing pressure.
//
// Usage:
//
//	bomber play              - Play the campaign (or --endless)
//	bomber menu              - Pick a mode or level interactively
//	bomber serve             - Start SSH server for remote play
//	bomber scores [mode]     - Show the best runs
//	bomber levels            - Print the level catalog
//	bomber sim <level>       - Build a level headless and print it
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible layouts
//	--db <path>     - Set database path (default: ~/.bomber/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register both game modes
	_ "github.com/vovakirdan/tui-bomber/internal/games/bomber"
)

var (
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bomber",
	Short: "Bomber - a grid bomb game in your terminal",
	Long: `Bomber is a terminal maze game. Drop bombs to break soft blocks,
defeat every enemy and reach the hidden door to clear a level. Each
cleared level grants a power-up; losing a life takes them away.

Available commands:
  play     - Play the campaign or endless mode
  menu     - Interactive mode and level picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  levels   - Print the level catalog
  sim      - Build a level without a terminal

Examples:
  bomber play
  bomber play --endless --difficulty hard
  bomber play --level 12
  bomber serve --ssh :2222
  bomber sim 5 --door`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bomber/runs.db", "Path to runs database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simCmd)
}

// playerName identifies the local player in stored runs.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}
