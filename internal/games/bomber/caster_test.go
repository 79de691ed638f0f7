package bomber

import (
	"testing"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
	"github.com/vovakirdan/tui-bomber/internal/level"
	"github.com/vovakirdan/tui-bomber/internal/power"
	"github.com/vovakirdan/tui-bomber/internal/probe"
	"github.com/vovakirdan/tui-bomber/internal/spawn"
)

func newTestWorld() *World {
	return NewWorld(1, catalog.Default(), power.New(power.DefaultDefaults()))
}

func put(w *World, h spawn.Handle, x, y int) {
	h.MoveTo(w.Center(level.Tile{X: x, Y: y}))
}

func TestLineCastAllOrder(t *testing.T) {
	w := newTestWorld()
	put(w, w.Instantiate(spawn.SoftBlock), 3, 1)
	put(w, w.Instantiate(spawn.WallBlock), 4, 1)
	w.bombs = append(w.bombs, &Bomb{Tile: level.Tile{X: 1, Y: 1}, Radius: 1})

	c := &gridCaster{w: w}
	hits := c.LineCastAll(w.Center(level.Tile{X: 1, Y: 1}), w.Center(level.Tile{X: 4, Y: 1}))

	if len(hits) != 2 {
		t.Fatalf("got %d hits, expected 2 (start cell ignored)", len(hits))
	}
	if hits[0].Layer != probe.LayerSoft || hits[1].Layer != probe.LayerWall {
		t.Errorf("layers = %v, %v", hits[0].Layer, hits[1].Layer)
	}
	if hits[0].Distance >= hits[1].Distance {
		t.Error("hits not ordered by distance")
	}

	wall, ok := c.LineCast(w.Center(level.Tile{X: 1, Y: 1}), w.Center(level.Tile{X: 4, Y: 1}), probe.MaskOf(probe.LayerWall))
	if !ok || wall.Collider.(*Block).Kind != level.Wall {
		t.Errorf("LineCast(wall mask) = %+v, %v", wall, ok)
	}
}

func TestCanReach(t *testing.T) {
	w := newTestWorld()
	player := w.Instantiate(spawn.Player).(*Player)
	put(w, player, 1, 1)
	put(w, w.Instantiate(spawn.SoftBlock), 2, 1)
	w.bombs = append(w.bombs, &Bomb{Tile: level.Tile{X: 1, Y: 2}, Radius: 1})

	q := probe.NewQuery(&gridCaster{w: w})
	pass := probe.NewQuery(&gridCaster{w: w, skipBombs: true})
	east := w.Center(level.Tile{X: 2, Y: 1})
	north := w.Center(level.Tile{X: 1, Y: 2})

	if q.CanReach(player, east) {
		t.Error("walked into a soft block")
	}
	if q.CanReach(player, north) {
		t.Error("walked into a bomb")
	}
	if !pass.CanReach(player, north) {
		t.Error("bomb blocks a BombPass query")
	}

	w.loadout.WallPass = true
	if player.Layer() != probe.LayerGhost {
		t.Fatal("WallPass player is not a ghost")
	}
	if !q.CanReach(player, east) {
		t.Error("ghost blocked by a soft block")
	}
}

func TestBlastSweep(t *testing.T) {
	w := newTestWorld()
	put(w, w.Instantiate(spawn.HardBlock), 3, 5)
	enemy := w.ProduceEnemy(catalog.Balloon)
	put(w, enemy, 3, 4)
	put(w, w.Instantiate(spawn.SoftBlock), 4, 4) // Off the arm

	q := probe.NewQuery(&gridCaster{w: w})
	hits := q.Blast(w.Center(level.Tile{X: 3, Y: 3}), 1, probe.Point{X: 0.8, Y: 0.8}, probe.Up, 3)

	if len(hits) != 2 {
		t.Fatalf("got %d hits, expected 2", len(hits))
	}
	if hits[0].Layer != probe.LayerEnemy || hits[1].Layer != probe.LayerWall {
		t.Errorf("layers = %v, %v", hits[0].Layer, hits[1].Layer)
	}
}

func TestWorldResetKeepsPlayer(t *testing.T) {
	w := newTestWorld()
	player := w.Instantiate(spawn.Player)
	put(w, w.Instantiate(spawn.SoftBlock), 2, 2)
	put(w, w.Instantiate(spawn.Door), 2, 2)
	w.ProduceEnemy(catalog.Pass)

	if w.DoorRevealed() {
		t.Error("covered door reported revealed")
	}

	w.Reset()

	if w.Instantiate(spawn.Player) != player {
		t.Error("player recreated after reset")
	}
	if w.BlockAt(level.Tile{X: 2, Y: 2}) != nil || w.AliveEnemies() != 0 {
		t.Error("level content survived reset")
	}
	if _, ok := w.DoorTile(); ok {
		t.Error("door survived reset")
	}
}

func TestMoverHalfway(t *testing.T) {
	w := newTestWorld()
	var m mover
	m.place(w, w.Center(level.Tile{X: 1, Y: 1}))
	m.start(level.Tile{X: 2, Y: 1})

	m.advance(w, 0.4)
	if got := m.tile(w); got != (level.Tile{X: 1, Y: 1}) {
		t.Errorf("tile at 0.4 = %v", got)
	}
	m.advance(w, 0.2)
	if got := m.tile(w); got != (level.Tile{X: 2, Y: 1}) {
		t.Errorf("tile at 0.6 = %v", got)
	}
	if !m.advance(w, 0.5) || m.moving {
		t.Error("step did not finish")
	}
}
