package bomber

import "github.com/vovakirdan/tui-bomber/internal/level"

// Snapshot contains the game state relevant to determinism checks.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick         uint64
	State        string
	Level        int
	Cycle        int
	Score        int
	Lives        int
	BombCount    int
	Radius       int
	Speed        int // Tiles per second x100
	Abilities    int
	Invincible   bool
	PlayerX      int
	PlayerY      int
	SoftBlocks   int
	DoorRevealed bool
	DoorOpened   bool
	Overtime     bool
	RemainingMS  int64

	// Each enemy is 5 ints: Kind, X, Y, Alive, Invulnerable
	EnemyData []int

	// Each bomb is 3 ints: X, Y, Radius
	BombData []int
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:         g.tick,
		State:        g.state,
		Level:        g.levelIndex,
		Cycle:        g.cycle,
		Score:        g.loadout.Score,
		Lives:        g.loadout.Lives,
		BombCount:    g.loadout.BombCount,
		Radius:       g.loadout.Radius,
		Speed:        int(g.loadout.Speed * 100),
		Abilities:    int(g.loadout.Abilities()),
		Invincible:   g.loadout.Invincible,
		DoorRevealed: g.world.DoorRevealed(),
		DoorOpened:   g.doorOpened,
		Overtime:     g.overtime,
		RemainingMS:  g.remaining().Milliseconds(),
	}
	if p := g.world.Player(); p != nil {
		t := p.Tile()
		snap.PlayerX, snap.PlayerY = t.X, t.Y
	}
	for _, b := range g.world.blocks {
		if b.Kind == level.Soft {
			snap.SoftBlocks++
		}
	}
	for _, e := range g.world.enemies {
		t := e.Tile()
		snap.EnemyData = append(snap.EnemyData, int(e.Kind), t.X, t.Y, boolInt(e.alive), boolInt(e.invulnerable))
	}
	for _, b := range g.world.bombs {
		snap.BombData = append(snap.BombData, b.Tile.X, b.Tile.Y, b.Radius)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, v := range []int{
		snap.Level, snap.Cycle, snap.Score, snap.Lives, snap.BombCount, snap.Radius,
		snap.Speed, snap.Abilities, boolInt(snap.Invincible), snap.PlayerX, snap.PlayerY,
		snap.SoftBlocks, boolInt(snap.DoorRevealed), boolInt(snap.DoorOpened), boolInt(snap.Overtime),
		int(snap.RemainingMS),
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BombData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	return h
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
