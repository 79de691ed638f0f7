package spawn

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
	"github.com/vovakirdan/tui-bomber/internal/events"
	"github.com/vovakirdan/tui-bomber/internal/level"
	"github.com/vovakirdan/tui-bomber/internal/probe"
	"github.com/vovakirdan/tui-bomber/internal/timer"
)

// placement records one thing the orchestrator put into the world.
type placement struct {
	what string
	pos  probe.Point
}

type fakeHandle struct {
	world *fakeWorld
	what  string
	pos   probe.Point
	moves int
}

func (h *fakeHandle) MoveTo(p probe.Point) {
	h.pos = p
	h.moves++
	h.world.log = append(h.world.log, placement{h.what, p})
}

type fakeEnemy struct {
	fakeHandle
	kind         catalog.EnemyKind
	invulnerable bool
}

func (e *fakeEnemy) SetInvulnerable(v bool) { e.invulnerable = v }

type fakeWorld struct {
	resets  int
	log     []placement
	enemies []*fakeEnemy
	players int
}

func (w *fakeWorld) Reset() {
	w.resets++
	w.log = nil
	w.enemies = nil
}

func (w *fakeWorld) Instantiate(p Prototype) Handle {
	if p == Player {
		w.players++
	}
	return &fakeHandle{world: w, what: p.String()}
}

func (w *fakeWorld) ProduceEnemy(kind catalog.EnemyKind) EnemyHandle {
	e := &fakeEnemy{fakeHandle: fakeHandle{world: w, what: "Enemy:" + kind.String()}, kind: kind}
	w.enemies = append(w.enemies, e)
	return e
}

func (w *fakeWorld) ProducePowerUp(kind catalog.PowerUpKind) Handle {
	return &fakeHandle{world: w, what: "PowerUp:" + kind.String()}
}

func (w *fakeWorld) count(what string) int {
	n := 0
	for _, p := range w.log {
		if p.what == what {
			n++
		}
	}
	return n
}

type fakeTracker struct {
	tracked []Handle
}

func (t *fakeTracker) Track(h Handle) { t.tracked = append(t.tracked, h) }

// fixedGenerator returns a hand-built 5x4 grid:
//
//	y=3  # # # # #
//	y=2  # . + D #      D: door under soft, P: power-up under soft
//	y=1  # @ e P #      e: one Balloon hint
//	y=0  # # # # #
type fixedGenerator struct {
	calls int
}

func (g *fixedGenerator) Generate(def catalog.LevelDefinition) level.Grid {
	g.calls++
	grid := level.NewGrid(5, 4)
	for x := 0; x < 5; x++ {
		for y := 0; y < 4; y++ {
			if x == 0 || y == 0 || x == 4 || y == 3 {
				grid.Set(x, y, level.Cell{Block: level.Wall})
			}
		}
	}
	balloon := catalog.Balloon
	power := def.GrantedPower
	grid.Set(2, 1, level.Cell{Enemy: &balloon})
	grid.Set(3, 1, level.Cell{Block: level.Soft, PowerUp: &power})
	grid.Set(2, 2, level.Cell{Block: level.Soft})
	grid.Set(3, 2, level.Cell{Block: level.Soft, Door: true})
	return grid
}

type fixture struct {
	orch    *Orchestrator
	world   *fakeWorld
	gen     *fixedGenerator
	tracker *fakeTracker
	bus     *events.Bus
	sched   *timer.Scheduler
}

func newFixture(t *testing.T, levels Levels) *fixture {
	t.Helper()
	f := &fixture{
		world:   &fakeWorld{},
		gen:     &fixedGenerator{},
		tracker: &fakeTracker{},
		bus:     events.NewBus(),
		sched:   timer.New(),
	}
	cfg := DefaultConfig()
	cfg.TileSize = 16
	f.orch = New(cfg, Deps{
		Levels:    levels,
		Generator: f.gen,
		World:     f.world,
		Tracker:   f.tracker,
		Bus:       f.bus,
		Scheduler: f.sched,
		Rand:      rand.New(rand.NewSource(5)),
	})
	t.Cleanup(f.orch.Close)
	return f
}

func testLevels(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(`
defaults: {width: 5, height: 4, outline: 1}
levels:
  - {power: Fire, enemies: {Balloon: 6}}
  - {power: BombUp, enemies: {Balloon: 1, Minvo: 2, Pontan: 1}}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return c
}

func TestBuildLevelOutOfRange(t *testing.T) {
	f := newFixture(t, testLevels(t))
	for _, idx := range []int{0, 3, -1} {
		if _, ok := f.orch.BuildLevel(idx); ok {
			t.Errorf("BuildLevel(%d) succeeded", idx)
		}
	}
	if f.world.resets != 0 || f.gen.calls != 0 || len(f.world.log) != 0 {
		t.Errorf("miss touched the world: resets=%d gen=%d placements=%d", f.world.resets, f.gen.calls, len(f.world.log))
	}
	if f.orch.Phase() != Idle {
		t.Errorf("Phase() = %v, expected Idle", f.orch.Phase())
	}
}

func TestBuildLevelPlacementOrder(t *testing.T) {
	f := newFixture(t, testLevels(t))
	def, ok := f.orch.BuildLevel(1)
	if !ok {
		t.Fatal("BuildLevel(1) failed")
	}
	if def.GrantedPower != catalog.Fire {
		t.Errorf("GrantedPower = %v", def.GrantedPower)
	}

	// Door cell (3,2): floor, soft, door in that order
	var atDoor []string
	want := probe.Point{X: 48, Y: 32}
	for _, p := range f.world.log {
		if p.pos == want {
			atDoor = append(atDoor, p.what)
		}
	}
	if len(atDoor) != 3 || atDoor[0] != "Floor" || atDoor[1] != "SoftBlock" || atDoor[2] != "Door" {
		t.Errorf("door cell placements = %v, expected [Floor SoftBlock Door]", atDoor)
	}

	// Power-up cell (3,1): floor, soft, power-up
	var atPower []string
	for _, p := range f.world.log {
		if p.pos == (probe.Point{X: 48, Y: 16}) {
			atPower = append(atPower, p.what)
		}
	}
	if len(atPower) != 3 || atPower[2] != "PowerUp:Fire" {
		t.Errorf("power-up cell placements = %v", atPower)
	}

	if f.world.count("Enemy:Balloon") != 1 {
		t.Errorf("placed %d Balloon hints, expected 1", f.world.count("Enemy:Balloon"))
	}
	if f.world.count("WallBlock") != 14 {
		t.Errorf("placed %d walls, expected 14", f.world.count("WallBlock"))
	}

	// 5x4 grid floors plus an outline ring one tile thick: 7x6 - 5x4
	if got := f.world.count("Floor"); got != 20+22 {
		t.Errorf("placed %d floors, expected 42", got)
	}

	// Player goes last, at the anchor
	last := f.world.log[len(f.world.log)-1]
	if last.what != "Player" || last.pos != (probe.Point{X: 16, Y: 16}) {
		t.Errorf("last placement = %+v, expected Player at (16,16)", last)
	}
	if f.orch.Phase() != Active || f.orch.DoorHit() {
		t.Errorf("Phase() = %v doorHit=%v, expected Active/false", f.orch.Phase(), f.orch.DoorHit())
	}
}

func TestOutlineNeverHoldsContent(t *testing.T) {
	f := newFixture(t, testLevels(t))
	f.orch.BuildLevel(1)
	for _, p := range f.world.log {
		outside := p.pos.X < 0 || p.pos.Y < 0 || p.pos.X > 64 || p.pos.Y > 48
		if outside && p.what != "Floor" {
			t.Errorf("%s placed in outline at %v", p.what, p.pos)
		}
	}
}

func TestPlayerCreatedOnce(t *testing.T) {
	f := newFixture(t, testLevels(t))
	f.orch.BuildLevel(1)
	first := f.orch.Player()
	f.orch.BuildLevel(2)
	f.orch.BuildLevel(1)

	if f.world.players != 1 {
		t.Errorf("player instantiated %d times, expected 1", f.world.players)
	}
	if f.orch.Player() != first {
		t.Error("player handle replaced between levels")
	}
	if len(f.tracker.tracked) != 1 || f.tracker.tracked[0] != first {
		t.Errorf("tracked = %v, expected the player once", f.tracker.tracked)
	}
	if f.world.resets != 3 {
		t.Errorf("resets = %d, expected 3", f.world.resets)
	}
	if first.(*fakeHandle).pos != (probe.Point{X: 16, Y: 16}) {
		t.Errorf("player at %v, expected anchor", first.(*fakeHandle).pos)
	}
}

func TestCountdownReinforcements(t *testing.T) {
	f := newFixture(t, testLevels(t))
	f.orch.BuildLevel(2)
	f.world.enemies = nil

	if n := f.bus.Publish(events.CountdownOver); n != 1 {
		t.Fatalf("CountdownOver reached %d handlers, expected 1", n)
	}

	counts := map[catalog.EnemyKind]int{}
	for _, e := range f.world.enemies {
		counts[e.kind]++
		// Interior only: x in [1,3], y in [1,2]
		x, y := e.pos.X/16, e.pos.Y/16
		if x < 1 || x > 3 || y < 1 || y > 2 {
			t.Errorf("reinforcement at tile (%v,%v), expected interior", x, y)
		}
		if e.invulnerable {
			t.Error("reinforcement spawned invulnerable")
		}
	}

	// Balloon+2 = Dahl, Minvo+2 = Pass, Pontan stays Pontan
	want := map[catalog.EnemyKind]int{catalog.Dahl: 1, catalog.Pass: 2, catalog.Pontan: 1}
	if len(counts) != len(want) {
		t.Fatalf("reinforcements = %v, expected %v", counts, want)
	}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("%v = %d, expected %d", k, counts[k], n)
		}
	}
}

func TestCountdownBeforeBuildIgnored(t *testing.T) {
	f := newFixture(t, testLevels(t))
	f.bus.Publish(events.CountdownOver)
	f.bus.Publish(events.DoorHit)
	if len(f.world.enemies) != 0 {
		t.Errorf("spawned %d enemies before any level was built", len(f.world.enemies))
	}
}

func TestDoorWaveOnce(t *testing.T) {
	f := newFixture(t, testLevels(t))
	f.orch.BuildLevel(1)
	f.world.enemies = nil

	f.bus.Publish(events.DoorHit)
	f.bus.Publish(events.DoorHit)
	f.orch.OnDoorReached()

	if len(f.world.enemies) != 6 {
		t.Fatalf("door wave spawned %d enemies, expected 6", len(f.world.enemies))
	}
	for _, e := range f.world.enemies {
		if e.kind != catalog.Balloon {
			t.Errorf("wave enemy kind = %v, expected Balloon", e.kind)
		}
		if e.pos != (probe.Point{X: 48, Y: 32}) {
			t.Errorf("wave enemy at %v, expected door (48,32)", e.pos)
		}
		if !e.invulnerable {
			t.Error("wave enemy not invulnerable")
		}
	}
	if f.orch.Phase() != DoorOpen || !f.orch.DoorHit() {
		t.Errorf("Phase() = %v, expected DoorOpen", f.orch.Phase())
	}
	if f.sched.Pending() != 1 {
		t.Errorf("Pending() = %d, expected one wave timer", f.sched.Pending())
	}
}

func TestDoorWaveInvulnerabilityClearsAfterDelay(t *testing.T) {
	f := newFixture(t, testLevels(t))
	f.orch.BuildLevel(1)
	bystander := f.world.enemies[0]
	bystander.invulnerable = true
	f.world.enemies = nil

	f.bus.Publish(events.DoorHit)
	wave := append([]*fakeEnemy(nil), f.world.enemies...)

	f.sched.Advance(3*time.Second - time.Millisecond)
	for _, e := range wave {
		if !e.invulnerable {
			t.Fatal("invulnerability cleared early")
		}
	}

	f.sched.Advance(time.Millisecond)
	for _, e := range wave {
		if e.invulnerable {
			t.Error("wave enemy still invulnerable after the delay")
		}
	}
	if !bystander.invulnerable {
		t.Error("wave timer touched an enemy outside its batch")
	}
}

func TestRebuildCancelsPendingWave(t *testing.T) {
	f := newFixture(t, testLevels(t))
	f.orch.BuildLevel(1)
	pre := len(f.world.enemies)
	f.bus.Publish(events.DoorHit)
	wave := append([]*fakeEnemy(nil), f.world.enemies[pre:]...)
	if len(wave) == 0 {
		t.Fatal("door hit spawned no wave")
	}

	f.orch.BuildLevel(2)
	if f.sched.Pending() != 0 {
		t.Errorf("Pending() = %d after rebuild, expected 0", f.sched.Pending())
	}
	f.sched.Advance(10 * time.Second)
	for _, e := range wave {
		if !e.invulnerable {
			t.Error("cancelled wave timer still cleared invulnerability")
		}
	}

	// A fresh level accepts a new door wave
	if f.orch.DoorHit() {
		t.Error("doorHit not reset by BuildLevel")
	}
	f.world.enemies = nil
	f.bus.Publish(events.DoorHit)
	if len(f.world.enemies) != 4 {
		t.Errorf("second-level wave spawned %d, expected 4", len(f.world.enemies))
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	f := newFixture(t, testLevels(t))
	f.orch.BuildLevel(1)
	f.bus.Publish(events.DoorHit)

	f.orch.Close()
	f.orch.Close()

	if f.bus.HandlerCount(events.CountdownOver) != 0 || f.bus.HandlerCount(events.DoorHit) != 0 {
		t.Error("subscriptions survived Close")
	}
	if f.sched.Pending() != 0 {
		t.Errorf("Pending() = %d after Close", f.sched.Pending())
	}
	if f.orch.Phase() != TornDown {
		t.Errorf("Phase() = %v, expected TornDown", f.orch.Phase())
	}

	before := len(f.world.enemies)
	f.bus.Publish(events.CountdownOver)
	if len(f.world.enemies) != before {
		t.Error("closed orchestrator reacted to a signal")
	}
	if _, ok := f.orch.BuildLevel(1); ok {
		t.Error("BuildLevel succeeded after Close")
	}
}

func TestLevelOneEndToEnd(t *testing.T) {
	f := newFixture(t, catalog.Default())
	f.orch.deps.Generator = level.NewClassicGenerator(11)

	def, ok := f.orch.BuildLevel(1)
	if !ok {
		t.Fatal("BuildLevel(1) failed")
	}
	balloons := 0
	for _, e := range f.world.enemies {
		if e.kind == catalog.Balloon {
			balloons++
		}
	}
	if balloons != 6 || len(f.world.enemies) != 6 {
		t.Errorf("level 1 placed %d enemies (%d Balloon), expected 6 Balloon", len(f.world.enemies), balloons)
	}
	if def.GrantedPower != catalog.Fire {
		t.Errorf("GrantedPower = %v, expected Fire", def.GrantedPower)
	}

	door, _ := f.orch.Grid().DoorTile()
	f.world.enemies = nil
	f.bus.Publish(events.DoorHit)
	if len(f.world.enemies) != 6 {
		t.Fatalf("door wave = %d, expected 6", len(f.world.enemies))
	}
	for _, e := range f.world.enemies {
		if e.kind != catalog.Balloon || !e.invulnerable || e.pos != f.orch.TilePosition(door.X, door.Y) {
			t.Errorf("wave enemy = %+v", e)
		}
	}

	f.sched.Advance(3 * time.Second)
	for _, e := range f.world.enemies {
		if e.invulnerable {
			t.Error("wave enemy still invulnerable after 3s")
		}
	}
}
