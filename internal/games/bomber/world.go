package bomber

import (
	"math"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
	"github.com/vovakirdan/tui-bomber/internal/level"
	"github.com/vovakirdan/tui-bomber/internal/power"
	"github.com/vovakirdan/tui-bomber/internal/probe"
	"github.com/vovakirdan/tui-bomber/internal/spawn"
	"github.com/vovakirdan/tui-bomber/internal/timer"
)

// World holds everything placed on the map. It implements spawn.World.
type World struct {
	tileSize float64
	catalog  *catalog.Catalog
	loadout  *power.State

	blocks  map[level.Tile]*Block
	pickups map[level.Tile]*Pickup
	flames  map[level.Tile]int
	door    *Door
	enemies []*Enemy
	bombs   []*Bomb
	floors  int

	player *Player
}

// NewWorld creates an empty world. The loadout decides the player's layer.
func NewWorld(tileSize float64, cat *catalog.Catalog, loadout *power.State) *World {
	if tileSize <= 0 {
		tileSize = 1
	}
	w := &World{tileSize: tileSize, catalog: cat, loadout: loadout}
	w.Reset()
	return w
}

// Reset drops the previous level's content. The player survives.
func (w *World) Reset() {
	w.blocks = make(map[level.Tile]*Block)
	w.pickups = make(map[level.Tile]*Pickup)
	w.flames = make(map[level.Tile]int)
	w.door = nil
	w.enemies = nil
	w.bombs = nil
	w.floors = 0
}

// Instantiate creates static content, or returns the single player.
func (w *World) Instantiate(p spawn.Prototype) spawn.Handle {
	switch p {
	case spawn.Floor:
		w.floors++
		return floorTile{}
	case spawn.SoftBlock:
		return &Block{w: w, Kind: level.Soft}
	case spawn.HardBlock:
		return &Block{w: w, Kind: level.Hard}
	case spawn.WallBlock:
		return &Block{w: w, Kind: level.Wall}
	case spawn.Door:
		w.door = &Door{w: w}
		return w.door
	case spawn.Player:
		if w.player == nil {
			w.player = &Player{w: w}
		}
		return w.player
	default:
		return floorTile{}
	}
}

// ProduceEnemy creates a live enemy of the given kind.
func (w *World) ProduceEnemy(kind catalog.EnemyKind) spawn.EnemyHandle {
	e := &Enemy{w: w, Kind: kind, traits: w.catalog.Traits(kind), alive: true}
	w.enemies = append(w.enemies, e)
	return e
}

// ProducePowerUp creates a pickup; it registers when placed.
func (w *World) ProducePowerUp(kind catalog.PowerUpKind) spawn.Handle {
	return &Pickup{w: w, Kind: kind}
}

// TileOf converts a world position to the nearest tile.
func (w *World) TileOf(p probe.Point) level.Tile {
	return level.Tile{
		X: int(math.Round(p.X / w.tileSize)),
		Y: int(math.Round(p.Y / w.tileSize)),
	}
}

// Center returns the world position of a tile's centre.
func (w *World) Center(t level.Tile) probe.Point {
	return probe.Point{X: float64(t.X) * w.tileSize, Y: float64(t.Y) * w.tileSize}
}

// Hidden reports whether a block covers t.
func (w *World) Hidden(t level.Tile) bool {
	return w.blocks[t] != nil
}

// DoorRevealed reports whether the door is placed and uncovered.
func (w *World) DoorRevealed() bool {
	return w.door != nil && w.door.placed && !w.Hidden(w.door.tile)
}

// DoorTile returns the door's tile.
func (w *World) DoorTile() (level.Tile, bool) {
	if w.door == nil || !w.door.placed {
		return level.Tile{}, false
	}
	return w.door.tile, true
}

// BlockAt returns the block on t, if any.
func (w *World) BlockAt(t level.Tile) *Block {
	return w.blocks[t]
}

func (w *World) removeBlock(t level.Tile) {
	delete(w.blocks, t)
}

// BombAt returns the live bomb on t, if any.
func (w *World) BombAt(t level.Tile) *Bomb {
	for _, b := range w.bombs {
		if b.Tile == t && !b.exploded {
			return b
		}
	}
	return nil
}

// Burning reports whether a flame covers t.
func (w *World) Burning(t level.Tile) bool {
	return w.flames[t] > 0
}

// AliveEnemies counts living enemies.
func (w *World) AliveEnemies() int {
	n := 0
	for _, e := range w.enemies {
		if e.alive {
			n++
		}
	}
	return n
}

// Player returns the player, or nil before the first level.
func (w *World) Player() *Player {
	return w.player
}

// floorTile is plain ground; it has no state worth tracking.
type floorTile struct{}

func (floorTile) MoveTo(probe.Point) {}

// Block is a wall, hard pillar or soft block.
type Block struct {
	w      *World
	Kind   level.BlockType
	Tile   level.Tile
	placed bool
}

// MoveTo registers the block on the tile under p.
func (b *Block) MoveTo(p probe.Point) {
	if b.placed && b.w.blocks[b.Tile] == b {
		delete(b.w.blocks, b.Tile)
	}
	b.Tile = b.w.TileOf(p)
	b.placed = true
	b.w.blocks[b.Tile] = b
}

// Layer returns the collision layer of the block.
func (b *Block) Layer() probe.Layer {
	if b.Kind == level.Soft {
		return probe.LayerSoft
	}
	return probe.LayerWall
}

// Door is the level exit.
type Door struct {
	w      *World
	tile   level.Tile
	placed bool
}

func (d *Door) MoveTo(p probe.Point) {
	d.tile = d.w.TileOf(p)
	d.placed = true
}

// Pickup is a power-up lying on the map.
type Pickup struct {
	w      *World
	Kind   catalog.PowerUpKind
	Tile   level.Tile
	placed bool
}

func (pu *Pickup) MoveTo(p probe.Point) {
	if pu.placed && pu.w.pickups[pu.Tile] == pu {
		delete(pu.w.pickups, pu.Tile)
	}
	pu.Tile = pu.w.TileOf(p)
	pu.placed = true
	pu.w.pickups[pu.Tile] = pu
}

// Bomb is a placed bomb. Fuse is nil while it waits for remote detonation.
type Bomb struct {
	Tile     level.Tile
	Radius   int
	Fuse     *timer.Task
	exploded bool
}

// mover is grid-locked motion shared by the player and enemies.
type mover struct {
	pos      probe.Point
	from, to level.Tile
	moving   bool
	progress float64 // Fraction of the current step, in [0, 1)
}

func (m *mover) place(w *World, p probe.Point) {
	t := w.TileOf(p)
	m.pos = w.Center(t)
	m.from, m.to = t, t
	m.moving = false
	m.progress = 0
}

// tile returns the tile the actor occupies, switching halfway through a step.
func (m *mover) tile(w *World) level.Tile {
	return w.TileOf(m.pos)
}

func (m *mover) start(to level.Tile) {
	m.to = to
	m.moving = true
	m.progress = 0
}

// advance moves by dist tiles and reports arrival.
func (m *mover) advance(w *World, dist float64) bool {
	if !m.moving {
		return false
	}
	m.progress += dist
	if m.progress >= 1 {
		m.from = m.to
		m.pos = w.Center(m.to)
		m.moving = false
		m.progress = 0
		return true
	}
	a, b := w.Center(m.from), w.Center(m.to)
	m.pos = a.Add(b.Sub(a).Scale(m.progress))
	return false
}

// Player is the bomber. It implements probe.Entity.
type Player struct {
	mover
	w      *World
	queued probe.Direction
	hasCmd bool
}

func (p *Player) MoveTo(pt probe.Point) {
	p.place(p.w, pt)
	p.hasCmd = false
}

// Position returns the player's world position.
func (p *Player) Position() probe.Point {
	return p.pos
}

// Layer is Ghost while WallPass is held.
func (p *Player) Layer() probe.Layer {
	if p.w.loadout != nil && p.w.loadout.WallPass {
		return probe.LayerGhost
	}
	return probe.LayerPlayer
}

// Tile returns the tile the player occupies.
func (p *Player) Tile() level.Tile {
	return p.tile(p.w)
}

// Enemy is a wandering monster. It implements spawn.EnemyHandle and probe.Entity.
type Enemy struct {
	mover
	w            *World
	Kind         catalog.EnemyKind
	traits       catalog.EnemyTraits
	dir          probe.Direction
	hasDir       bool
	invulnerable bool
	alive        bool
}

func (e *Enemy) MoveTo(p probe.Point) {
	e.place(e.w, p)
}

// SetInvulnerable toggles immunity to flames.
func (e *Enemy) SetInvulnerable(v bool) {
	e.invulnerable = v
}

// Invulnerable reports whether flames pass through the enemy.
func (e *Enemy) Invulnerable() bool {
	return e.invulnerable
}

// Alive reports whether the enemy is still in play.
func (e *Enemy) Alive() bool {
	return e.alive
}

func (e *Enemy) Position() probe.Point {
	return e.pos
}

// Layer is Ghost for kinds that drift through soft blocks.
func (e *Enemy) Layer() probe.Layer {
	if e.traits.Ghost {
		return probe.LayerGhost
	}
	return probe.LayerEnemy
}

// Tile returns the tile the enemy occupies.
func (e *Enemy) Tile() level.Tile {
	return e.tile(e.w)
}
