package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/events"
	"github.com/vovakirdan/tui-bomber/internal/level"
	"github.com/vovakirdan/tui-bomber/internal/probe"
	"github.com/vovakirdan/tui-bomber/internal/spawn"
	"github.com/vovakirdan/tui-bomber/internal/timer"
)

var (
	flagSimCountdown bool
	flagSimDoor      bool
	flagSimVerbose   bool
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Build a level without a terminal and print it",
	Long: `Builds a level with the same generator and spawn rules the game uses,
optionally fires the countdown and door signals, then prints the grid and
what was placed. Useful for checking layouts for a given --seed.

Grid legend: # wall, = pillar, + soft block, D door, P power-up,
e enemy, @ start, . floor.

Examples:
  bomber sim 1
  bomber sim 12 --seed 7 --door
  bomber sim 30 --countdown --verbose`,
	Args: cobra.ExactArgs(1),
	Run:  runSimCmd,
}

func init() {
	simCmd.Flags().BoolVar(&flagSimCountdown, "countdown", false, "Expire the countdown after building")
	simCmd.Flags().BoolVar(&flagSimDoor, "door", false, "Hit the door after building")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log orchestrator debug output")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

type simOptions struct {
	Level     int
	Seed      int64
	Countdown bool
	Door      bool
	Config    config.BomberConfig
	Logger    *log.Logger
}

func runSimCmd(_ *cobra.Command, args []string) {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: level must be a number: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadBomber(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultBomberConfig()
	}

	logLevel := log.InfoLevel
	if flagSimVerbose {
		logLevel = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: logLevel, Prefix: "sim"})

	err = runSim(os.Stdout, simOptions{
		Level:     index,
		Seed:      flagSeed,
		Countdown: flagSimCountdown,
		Door:      flagSimDoor,
		Config:    cfg,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSim(w io.Writer, opts simOptions) error {
	cfg := opts.Config
	world := newSimWorld()
	bus := events.NewBus()
	sched := timer.New()

	orch := spawn.New(spawn.Config{
		TileSize:        cfg.Grid.TileSize,
		WaveDelay:       secondsOf(cfg.Timing.WaveDelaySeconds),
		EscalationSteps: cfg.Timing.EscalationSteps,
	}, spawn.Deps{
		Levels: catalog.Default(),
		Generator: &level.ClassicGenerator{
			Seed:        opts.Seed,
			SoftDensity: cfg.Generator.SoftDensity,
			SafeRadius:  cfg.Generator.SafeRadius,
		},
		World:     world,
		Bus:       bus,
		Scheduler: sched,
		Rand:      rand.New(rand.NewSource(opts.Seed)),
		Logger:    opts.Logger,
	})
	defer orch.Close()

	def, ok := orch.BuildLevel(opts.Level)
	if !ok {
		return fmt.Errorf("no level %d (catalog has 1-%d)", opts.Level, catalog.Default().Len())
	}
	grid := orch.Grid()

	if opts.Countdown {
		bus.Publish(events.CountdownOver)
	}
	if opts.Door {
		bus.Publish(events.DoorHit)
	}

	fmt.Fprintf(w, "Level %d  grants %s  %dx%d\n\n", def.Index, def.GrantedPower, grid.Width(), grid.Height())
	fmt.Fprint(w, grid.String())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "blocks:    wall %d  pillar %d  soft %d\n",
		grid.CountBlocks(level.Wall), grid.CountBlocks(level.Hard), grid.CountBlocks(level.Soft))
	fmt.Fprintf(w, "floor:     %d tiles\n", world.placed[spawn.Floor])
	for _, pu := range catalog.PowerUpKinds {
		if n := world.powerUps[pu]; n > 0 {
			fmt.Fprintf(w, "power-up:  %s x%d\n", pu, n)
		}
	}

	fmt.Fprintf(w, "enemies:   %d", len(world.enemies))
	if n := world.invulnerable(); n > 0 {
		fmt.Fprintf(w, " (%d invulnerable)", n)
	}
	fmt.Fprintln(w)
	counts := world.enemyCounts()
	for _, k := range catalog.EnemyKinds {
		if n := counts[k]; n > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", k, n)
		}
	}

	if opts.Door {
		sched.Advance(secondsOf(cfg.Timing.WaveDelaySeconds))
		fmt.Fprintf(w, "after wave delay: %d invulnerable\n", world.invulnerable())
	}
	return nil
}

// simWorld records what the orchestrator places.
type simWorld struct {
	placed   map[spawn.Prototype]int
	powerUps map[catalog.PowerUpKind]int
	enemies  []*simEnemy
	player   *simHandle
}

type simHandle struct {
	pos probe.Point
}

func (h *simHandle) MoveTo(p probe.Point) { h.pos = p }

type simEnemy struct {
	simHandle
	kind         catalog.EnemyKind
	invulnerable bool
}

func (e *simEnemy) SetInvulnerable(v bool) { e.invulnerable = v }

func newSimWorld() *simWorld {
	w := &simWorld{}
	w.Reset()
	return w
}

func (w *simWorld) Reset() {
	w.placed = make(map[spawn.Prototype]int)
	w.powerUps = make(map[catalog.PowerUpKind]int)
	w.enemies = nil
}

func (w *simWorld) Instantiate(p spawn.Prototype) spawn.Handle {
	w.placed[p]++
	if p == spawn.Player {
		w.player = &simHandle{}
		return w.player
	}
	return &simHandle{}
}

func (w *simWorld) ProduceEnemy(kind catalog.EnemyKind) spawn.EnemyHandle {
	e := &simEnemy{kind: kind}
	w.enemies = append(w.enemies, e)
	return e
}

func (w *simWorld) ProducePowerUp(kind catalog.PowerUpKind) spawn.Handle {
	w.powerUps[kind]++
	return &simHandle{}
}

func (w *simWorld) enemyCounts() map[catalog.EnemyKind]int {
	out := make(map[catalog.EnemyKind]int)
	for _, e := range w.enemies {
		out[e.kind]++
	}
	return out
}

func (w *simWorld) invulnerable() int {
	n := 0
	for _, e := range w.enemies {
		if e.invulnerable {
			n++
		}
	}
	return n
}

func secondsOf(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
