package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber"
	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagEndless    bool
	flagLevel      int
	flagGod        bool
	flagLogPath    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing from level one, or from --level.

Controls:
  WASD/Arrows  - Move
  Space        - Drop bomb
  E            - Detonate (with Remote Control)
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  bomber play
  bomber play --endless
  bomber play --level 20 --difficulty hard
  bomber play --config ./my-bomber.yaml --log ./bomber.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Loop the level catalog until out of lives")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at")
	playCmd.Flags().BoolVar(&flagGod, "god", false, "Start every life with a maxed loadout")
	playCmd.Flags().StringVar(&flagLogPath, "log", "", "Write level lifecycle logs to this file")
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// configureGame applies the CLI settings shared by play and menu.
func configureGame() (closeLog func(), err error) {
	bomber.SetConfigPath(flagConfig)
	bomber.SetDifficultyPreset(flagDifficulty)

	closeLog = func() {}
	if flagLogPath == "" {
		bomber.SetLogger(nil)
		return closeLog, nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return closeLog, fmt.Errorf("cannot open log file: %w", err)
	}
	bomber.SetLogger(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "bomber",
	}))
	return func() { f.Close() }, nil
}

func runPlay(_ *cobra.Command, _ []string) {
	closeLog, err := configureGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	gameID := "bomber"
	if flagEndless {
		gameID = "bomber_endless"
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	if ls, ok := game.(registry.LevelSelectable); ok {
		ls.SetStartLevel(flagLevel)
	}
	if gm, ok := game.(registry.GodModer); ok {
		gm.SetGodMode(flagGod)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, terminalConfig(), playerName())

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
