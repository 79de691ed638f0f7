// Package spawn drives the lifecycle of a level: it lays out the generated
// grid, places the player, and escalates enemy pressure when the countdown
// runs out or a blast reaches the door.
package spawn

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
	"github.com/vovakirdan/tui-bomber/internal/events"
	"github.com/vovakirdan/tui-bomber/internal/level"
	"github.com/vovakirdan/tui-bomber/internal/probe"
	"github.com/vovakirdan/tui-bomber/internal/timer"
)

// Phase is the orchestrator's lifecycle state.
type Phase int

const (
	Idle     Phase = iota // Nothing built yet
	Building              // Placing content
	Active                // Level running, door not hit
	DoorOpen              // Level running, door wave spawned
	TornDown              // Closed; no further builds
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Building:
		return "Building"
	case Active:
		return "Active"
	case DoorOpen:
		return "DoorOpen"
	case TornDown:
		return "TornDown"
	default:
		return "Unknown"
	}
}

// Config holds orchestrator tuning.
type Config struct {
	TileSize        float64       // World units per tile
	WaveDelay       time.Duration // How long a door wave stays invulnerable
	EscalationSteps int           // How far reinforcements climb the enemy order
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		TileSize:        1,
		WaveDelay:       3 * time.Second,
		EscalationSteps: 2,
	}
}

// Deps are the orchestrator's collaborators. Tracker and Logger are optional.
type Deps struct {
	Levels    Levels
	Generator level.Generator
	World     World
	Tracker   Tracker
	Bus       *events.Bus
	Scheduler *timer.Scheduler
	Rand      *rand.Rand
	Logger    *log.Logger
}

// Orchestrator builds levels and reacts to CountdownOver and DoorHit.
// It is driven from the game loop and is not safe for concurrent use.
type Orchestrator struct {
	cfg  Config
	deps Deps
	log  *log.Logger

	phase   Phase
	def     catalog.LevelDefinition
	grid    level.Grid
	player  Handle
	doorHit bool

	unsubscribe []func()
	waves       []*timer.Task
}

// New creates an orchestrator and subscribes it to the bus. Call Close to
// release the subscriptions.
func New(cfg Config, deps Deps) *Orchestrator {
	if cfg.TileSize <= 0 {
		cfg.TileSize = 1
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(1))
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	o := &Orchestrator{cfg: cfg, deps: deps, log: logger}
	o.unsubscribe = append(o.unsubscribe,
		deps.Bus.Subscribe(events.CountdownOver, o.OnCountdownExpired),
		deps.Bus.Subscribe(events.DoorHit, o.OnDoorReached),
	)
	return o
}

// Phase returns the current lifecycle state.
func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// Level returns the definition of the level currently built.
func (o *Orchestrator) Level() (catalog.LevelDefinition, bool) {
	return o.def, o.phase == Active || o.phase == DoorOpen
}

// Grid returns the grid of the current level.
func (o *Orchestrator) Grid() level.Grid {
	return o.grid
}

// Player returns the player handle, or nil before the first build.
func (o *Orchestrator) Player() Handle {
	return o.player
}

// DoorHit reports whether the door wave has been spawned this level.
func (o *Orchestrator) DoorHit() bool {
	return o.doorHit
}

// TilePosition converts a tile to a world position.
func (o *Orchestrator) TilePosition(x, y int) probe.Point {
	return probe.Point{X: float64(x) * o.cfg.TileSize, Y: float64(y) * o.cfg.TileSize}
}

// BuildLevel builds the level at index. When the catalog has no such level it
// returns false and leaves the current level untouched; the caller decides
// whether that ends the game.
func (o *Orchestrator) BuildLevel(index int) (catalog.LevelDefinition, bool) {
	if o.phase == TornDown {
		return catalog.LevelDefinition{}, false
	}
	def, ok := o.deps.Levels.Lookup(index)
	if !ok {
		o.log.Info("no level", "index", index)
		return catalog.LevelDefinition{}, false
	}

	o.cancelWaves()
	o.phase = Building
	o.def = def
	o.doorHit = false

	o.deps.World.Reset()
	o.grid = o.deps.Generator.Generate(def)
	o.placeGrid()
	o.placeOutline()
	o.placePlayer()

	o.phase = Active
	o.log.Debug("level built", "index", def.Index, "power", def.GrantedPower, "enemies", def.TotalEnemies())
	return def, true
}

func (o *Orchestrator) placeGrid() {
	w := o.deps.World
	for x := 0; x < o.grid.Width(); x++ {
		for y := 0; y < o.grid.Height(); y++ {
			cell := o.grid.At(x, y)
			o.place(w.Instantiate(Floor), x, y)
			if proto, ok := blockPrototypes[cell.Block]; ok {
				o.place(w.Instantiate(proto), x, y)
			}
			if cell.Enemy != nil {
				o.place(w.ProduceEnemy(*cell.Enemy), x, y)
			}
			if cell.Door {
				o.place(w.Instantiate(Door), x, y)
			}
			if cell.PowerUp != nil {
				o.place(w.ProducePowerUp(*cell.PowerUp), x, y)
			}
		}
	}
}

// placeOutline surrounds the playable rectangle with floor only.
func (o *Orchestrator) placeOutline() {
	n := o.def.Outline
	if n <= 0 {
		return
	}
	for x := -n; x < o.grid.Width()+n; x++ {
		for y := -n; y < o.grid.Height()+n; y++ {
			if o.grid.InBounds(x, y) {
				continue
			}
			o.place(o.deps.World.Instantiate(Floor), x, y)
		}
	}
}

func (o *Orchestrator) placePlayer() {
	if o.player == nil {
		o.player = o.deps.World.Instantiate(Player)
		if o.deps.Tracker != nil {
			o.deps.Tracker.Track(o.player)
		}
	}
	o.place(o.player, level.Anchor.X, level.Anchor.Y)
}

func (o *Orchestrator) place(h Handle, x, y int) {
	if h != nil {
		h.MoveTo(o.TilePosition(x, y))
	}
}

// OnCountdownExpired spawns reinforcements: for each enemy kind in the level,
// as many enemies of a stronger kind as the level originally had, each on a
// random interior tile.
func (o *Orchestrator) OnCountdownExpired() {
	if o.phase != Active && o.phase != DoorOpen {
		return
	}
	w, h := o.grid.Width(), o.grid.Height()
	if w < 3 || h < 3 {
		return
	}

	spawned := 0
	for _, ec := range o.def.Enemies() {
		kind := ec.Kind.Escalate(o.cfg.EscalationSteps)
		for i := 0; i < ec.Count; i++ {
			x := 1 + o.deps.Rand.Intn(w-2)
			y := 1 + o.deps.Rand.Intn(h-2)
			o.place(o.deps.World.ProduceEnemy(kind), x, y)
			spawned++
		}
	}
	o.log.Info("reinforcements", "level", o.def.Index, "count", spawned)
}

// OnDoorReached spawns the level's enemy roster at the door, invulnerable
// for WaveDelay. Only the first call per level has any effect.
func (o *Orchestrator) OnDoorReached() {
	if o.phase != Active || o.doorHit {
		return
	}
	o.doorHit = true
	o.phase = DoorOpen

	door, ok := o.grid.DoorTile()
	if !ok {
		o.log.Warn("door hit without a door", "level", o.def.Index)
		return
	}

	var batch []EnemyHandle
	for _, ec := range o.def.Enemies() {
		for i := 0; i < ec.Count; i++ {
			e := o.deps.World.ProduceEnemy(ec.Kind)
			if e == nil {
				continue
			}
			o.place(e, door.X, door.Y)
			e.SetInvulnerable(true)
			batch = append(batch, e)
		}
	}

	task := o.deps.Scheduler.After(o.cfg.WaveDelay, func() {
		for _, e := range batch {
			e.SetInvulnerable(false)
		}
	})
	o.waves = append(o.waves, task)
	o.log.Info("door wave", "level", o.def.Index, "count", len(batch))
}

func (o *Orchestrator) cancelWaves() {
	for _, t := range o.waves {
		t.Cancel()
	}
	o.waves = o.waves[:0]
}

// Close releases every bus subscription and cancels pending wave timers.
// It is safe to call more than once.
func (o *Orchestrator) Close() {
	if o.phase == TornDown {
		return
	}
	for _, off := range o.unsubscribe {
		off()
	}
	o.unsubscribe = nil
	o.cancelWaves()
	o.phase = TornDown
	o.log.Debug("orchestrator closed")
}
