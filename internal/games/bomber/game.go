// Package bomber is the playable grid bomb game: a maze of pillars and
// soft blocks, a hidden door, a hidden power-up and a roster of enemies
// per level.
package bomber

import (
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/events"
	"github.com/vovakirdan/tui-bomber/internal/level"
	"github.com/vovakirdan/tui-bomber/internal/power"
	"github.com/vovakirdan/tui-bomber/internal/probe"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/spawn"
	"github.com/vovakirdan/tui-bomber/internal/timer"
)

// Game states
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover"
	StateWin      = "win" // Campaign finished
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play through the catalog, win at the end
	ModeEndless                  // Loop the catalog until the lives run out
)

const (
	minScreenW = 20
	minScreenH = 8
)

var (
	// configPath stores the custom config path set via CLI
	configPath string

	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset

	logger *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	if preset == "" {
		difficultyPreset = ""
		return
	}
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger routes level lifecycle logs. Nil discards them.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game implements the bomber game logic.
type Game struct {
	mode       GameMode
	startLevel int
	godMode    bool

	runtime    core.RuntimeConfig
	cfg        config.BomberConfig
	difficulty *config.DifficultyManager
	catalog    *catalog.Catalog

	bus       *events.Bus
	sched     *timer.Scheduler
	orch      *spawn.Orchestrator
	world     *World
	loadout   *power.State
	query     *probe.Query
	passQuery *probe.Query // Ignores bombs
	camera    *camera
	rng       *rand.Rand

	state          string
	level          catalog.LevelDefinition
	levelIndex     int
	cycle          int // Completed passes through the catalog (endless)
	tick           uint64
	dt             time.Duration
	speedScale     float64
	countdown      time.Duration
	levelStart     time.Duration
	grantCollected bool
	overtime       bool // Countdown ran out this level
	doorOpened     bool // Door wave spawned this level
	immortal       bool

	levelTasks  []*timer.Task // Cancelled on every rebuild
	lifeTasks   []*timer.Task // Cancelled on death
	unsubscribe []func()

	screenTooSmall bool
}

// New creates a new game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "bomber_endless"
	}
	return "bomber"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Bomber (Endless)"
	}
	return "Bomber"
}

// SetStartLevel picks the first level for the next Reset.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// LevelCount returns the number of levels in the catalog.
func (g *Game) LevelCount() int {
	if g.catalog != nil {
		return g.catalog.Len()
	}
	return catalog.Default().Len()
}

// SetGodMode maxes out the loadout now and after every death.
func (g *Game) SetGodMode(on bool) {
	g.godMode = on
	if on && g.loadout != nil {
		g.loadout.MaxOut()
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.teardown()

	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.dt = time.Second / time.Duration(runtime.TickRate)

	cfg, err := config.LoadBomber(configPath)
	if err != nil {
		cfg = config.DefaultBomberConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBomberPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.catalog = catalog.Default()
	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	g.loadout = power.New(power.Defaults{
		BaseSpeed: cfg.Player.BaseSpeed,
		SpeedStep: cfg.Player.SpeedStep,
		MaxSpeed:  cfg.Player.MaxSpeed,
		GodSpeed:  cfg.Player.GodSpeed,
		Lives:     cfg.Player.Lives,
	})
	g.bus = events.NewBus()
	g.sched = timer.New()
	g.world = NewWorld(cfg.Grid.TileSize, g.catalog, g.loadout)
	g.query = probe.NewQuery(&gridCaster{w: g.world})
	g.passQuery = probe.NewQuery(&gridCaster{w: g.world, skipBombs: true})
	g.camera = &camera{}
	g.rng = rand.New(rand.NewSource(runtime.Seed + 1))

	g.orch = spawn.New(spawn.Config{
		TileSize:        g.world.tileSize,
		WaveDelay:       seconds(cfg.Timing.WaveDelaySeconds),
		EscalationSteps: cfg.Timing.EscalationSteps,
	}, spawn.Deps{
		Levels: g.catalog,
		Generator: &level.ClassicGenerator{
			Seed:        runtime.Seed,
			SoftDensity: cfg.Generator.SoftDensity,
			SafeRadius:  cfg.Generator.SafeRadius,
		},
		World:     g.world,
		Tracker:   g.camera,
		Bus:       g.bus,
		Scheduler: g.sched,
		Rand:      rand.New(rand.NewSource(runtime.Seed)),
		Logger:    logger,
	})
	g.unsubscribe = append(g.unsubscribe,
		g.bus.Subscribe(events.CountdownOver, func() { g.overtime = true }),
		g.bus.Subscribe(events.DoorHit, func() { g.doorOpened = true }),
	)

	g.state = StatePlaying
	g.tick = 0
	g.cycle = 0
	g.immortal = false
	if g.godMode {
		g.loadout.MaxOut()
	}

	start := core.Clamp(g.startLevel, 1, g.catalog.Len())
	if !g.enterLevel(start) {
		g.state = StateGameOver
	}
}

// teardown releases the previous run's subscriptions and timers.
func (g *Game) teardown() {
	if g.orch != nil {
		g.orch.Close()
	}
	for _, off := range g.unsubscribe {
		off()
	}
	g.unsubscribe = nil
	if g.sched != nil {
		g.sched.CancelAll()
	}
	g.levelTasks = nil
	g.lifeTasks = nil
}

// enterLevel builds a level and starts its countdown.
func (g *Game) enterLevel(index int) bool {
	cancelAll(&g.levelTasks)
	def, ok := g.orch.BuildLevel(index)
	if !ok {
		return false
	}
	g.level = def
	g.levelIndex = index
	g.grantCollected = false
	g.overtime = false
	g.doorOpened = false

	stage, score := g.stage(), g.loadout.Score
	g.speedScale = g.difficulty.EnemySpeed(1, stage, score)
	g.countdown = g.difficulty.Countdown(seconds(g.cfg.Timing.CountdownSeconds), stage, score)
	g.levelStart = g.sched.Now()
	g.track(&g.levelTasks, g.sched.After(g.countdown, func() {
		g.bus.Publish(events.CountdownOver)
	}))
	return true
}

// stage is the level number counted across endless cycles.
func (g *Game) stage() int {
	if g.catalog == nil {
		return g.levelIndex
	}
	return g.cycle*g.catalog.Len() + g.levelIndex
}

// remaining returns the countdown time left this level.
func (g *Game) remaining() time.Duration {
	return max(g.countdown-(g.sched.Now()-g.levelStart), 0)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.sched.Advance(g.dt)

	if in.Has(core.ActionBomb) {
		g.dropBomb()
	}
	if in.Has(core.ActionDetonate) && g.loadout.RemoteControl {
		g.detonateOldest()
	}

	g.updatePlayer(in)
	g.updateEnemies()
	g.burnEnemies()
	g.resolvePlayer()

	return core.StepResult{State: g.State()}
}

// resolvePlayer handles pickups, hits and the level exit, in that order.
func (g *Game) resolvePlayer() {
	p := g.world.Player()
	if p == nil {
		return
	}
	t := p.Tile()

	if pu := g.world.pickups[t]; pu != nil && !g.world.Hidden(t) {
		g.collect(pu)
	}

	flame := g.world.Burning(t)
	contact := false
	for _, e := range g.world.enemies {
		if e.alive && e.Tile() == t {
			contact = true
			break
		}
	}
	if flame || contact {
		if g.hit(!contact) {
			return
		}
	}

	if door, ok := g.world.DoorTile(); ok && door == t && g.world.DoorRevealed() && g.world.AliveEnemies() == 0 {
		g.levelClear()
	}
}

// hit applies a hit and reports whether the player died.
func (g *Game) hit(flameOnly bool) bool {
	if g.loadout.Invincible || (flameOnly && g.loadout.FlamePass) {
		return false
	}

	lost := g.loadout.ApplyHit()
	if lost != 0 {
		if lost.Has(power.AbilityRemoteControl) {
			g.armPendingFuses()
		}
		g.loadout.Invincible = true
		g.track(&g.lifeTasks, g.sched.After(seconds(g.cfg.Player.GraceSeconds), func() {
			if !g.immortal {
				g.loadout.Invincible = false
			}
		}))
		return false
	}

	g.die()
	return true
}

func (g *Game) die() {
	if !g.loadout.LoseLife() {
		g.state = StateGameOver
		return
	}
	cancelAll(&g.lifeTasks)
	g.immortal = false
	g.loadout.ResetAbilities()
	if g.godMode {
		g.loadout.MaxOut()
	}
	if !g.enterLevel(g.levelIndex) {
		g.state = StateGameOver
	}
}

func (g *Game) collect(pu *Pickup) {
	delete(g.world.pickups, pu.Tile)
	if pu.Kind == g.level.GrantedPower {
		g.grantCollected = true
	}
	g.applyPower(pu.Kind)
}

// applyPower applies a pickup. Immortal also counts when grace invincibility
// already holds the flag, so it still gets its own expiry.
func (g *Game) applyPower(kind catalog.PowerUpKind) {
	applied := g.loadout.ApplyPickup(kind)
	if kind != catalog.Immortal || g.immortal {
		return
	}
	if !applied && !g.loadout.Invincible {
		return
	}
	g.immortal = true
	if g.cfg.Player.ImmortalSeconds > 0 {
		g.track(&g.lifeTasks, g.sched.After(seconds(g.cfg.Player.ImmortalSeconds), func() {
			g.immortal = false
			g.loadout.Invincible = false
		}))
	}
}

// levelClear grants the level's power if its pickup was missed and moves on.
func (g *Game) levelClear() {
	if !g.grantCollected {
		g.applyPower(g.level.GrantedPower)
		g.grantCollected = true
	}
	if g.enterLevel(g.levelIndex + 1) {
		return
	}
	if g.mode == ModeCampaign {
		g.state = StateWin
		return
	}
	g.cycle++
	if !g.enterLevel(1) {
		g.state = StateGameOver
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.loadout != nil {
		score = g.loadout.Score
	}
	return core.GameState{
		Score:    score,
		Level:    g.stage(),
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Won:      g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
}

func (g *Game) track(list *[]*timer.Task, t *timer.Task) {
	*list = slices.DeleteFunc(*list, func(x *timer.Task) bool { return x.Fired() })
	*list = append(*list, t)
}

func cancelAll(list *[]*timer.Task) {
	for _, t := range *list {
		t.Cancel()
	}
	*list = (*list)[:0]
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Register the games with the registry
func init() {
	registry.Register("bomber", func() registry.Game {
		return New()
	})
	registry.Register("bomber_endless", func() registry.Game {
		return NewEndless()
	})
}
