package bomber

import (
	"slices"

	"github.com/vovakirdan/tui-bomber/internal/events"
	"github.com/vovakirdan/tui-bomber/internal/level"
	"github.com/vovakirdan/tui-bomber/internal/probe"
)

// dropBomb places a bomb under the player if the loadout allows another.
func (g *Game) dropBomb() bool {
	p := g.world.Player()
	if p == nil {
		return false
	}
	t := p.Tile()
	if len(g.world.bombs) >= g.loadout.BombCount || g.world.BombAt(t) != nil || g.world.BlockAt(t) != nil {
		return false
	}

	b := &Bomb{Tile: t, Radius: g.loadout.Radius}
	g.world.bombs = append(g.world.bombs, b)
	if !g.loadout.RemoteControl {
		g.armFuse(b)
	}
	return true
}

func (g *Game) armFuse(b *Bomb) {
	b.Fuse = g.sched.After(seconds(g.cfg.Bombs.FuseSeconds), func() { g.detonate(b) })
	g.track(&g.levelTasks, b.Fuse)
}

// armPendingFuses starts fuses on bombs that were waiting for a remote.
func (g *Game) armPendingFuses() {
	for _, b := range g.world.bombs {
		if b.Fuse == nil {
			g.armFuse(b)
		}
	}
}

// detonateOldest fires the earliest placed bomb.
func (g *Game) detonateOldest() {
	if len(g.world.bombs) > 0 {
		g.detonate(g.world.bombs[0])
	}
}

// detonate explodes b and any bomb its flame reaches.
func (g *Game) detonate(b *Bomb) {
	if b.exploded {
		return
	}
	b.exploded = true
	if b.Fuse != nil {
		b.Fuse.Cancel()
	}
	g.world.bombs = slices.DeleteFunc(g.world.bombs, func(x *Bomb) bool { return x == b })

	flames := []level.Tile{b.Tile}
	var burned []level.Tile
	var chained []*Bomb
	for _, dir := range probe.Directions {
		reach, burn, chain := g.blastReach(b, dir)
		for i := 1; i <= reach; i++ {
			flames = append(flames, step(b.Tile, dir, i))
		}
		burned = append(burned, burn...)
		chained = append(chained, chain...)
	}

	doorHit := false
	if door, ok := g.world.DoorTile(); ok && g.world.DoorRevealed() {
		doorHit = slices.Contains(flames, door)
	}
	for _, t := range burned {
		g.world.removeBlock(t)
	}
	g.ignite(flames)

	if doorHit {
		g.bus.Publish(events.DoorHit)
	}
	for _, c := range chained {
		g.detonate(c)
	}
}

// blastReach sweeps one arm of the blast. Walls stop it short; a soft block
// or another bomb is the last tile it covers.
func (g *Game) blastReach(b *Bomb, dir probe.Direction) (reach int, burn []level.Tile, chain []*Bomb) {
	ts := g.world.tileSize
	width := ts * g.cfg.Bombs.BlastWidth
	hits := g.query.Blast(g.world.Center(b.Tile), ts, probe.Point{X: width, Y: width}, dir, b.Radius)

	reach = b.Radius
	for _, h := range hits {
		if !g.query.Obstructs(h, probe.LayerDefault) {
			continue
		}
		t, ok := colliderTile(h)
		if !ok {
			continue
		}
		steps, onArm := armDistance(b.Tile, t, dir)
		if !onArm {
			continue
		}
		if steps > reach {
			break
		}
		switch h.Layer {
		case probe.LayerWall:
			reach = steps - 1
		case probe.LayerSoft:
			reach = steps
			burn = append(burn, t)
		case probe.LayerBomb:
			reach = steps
			chain = append(chain, h.Collider.(*Bomb))
		}
	}
	return reach, burn, chain
}

// ignite lights flames on tiles for the configured duration.
func (g *Game) ignite(tiles []level.Tile) {
	flames := g.world.flames
	for _, t := range tiles {
		flames[t]++
	}
	g.track(&g.levelTasks, g.sched.After(seconds(g.cfg.Bombs.FlameSeconds), func() {
		for _, t := range tiles {
			if flames[t] <= 1 {
				delete(flames, t)
			} else {
				flames[t]--
			}
		}
	}))
}

// step returns the tile n steps from t along dir.
func step(t level.Tile, dir probe.Direction, n int) level.Tile {
	u := dir.Unit()
	return level.Tile{X: t.X + int(u.X)*n, Y: t.Y + int(u.Y)*n}
}

// armDistance reports how many steps along dir separate from and to.
func armDistance(from, to level.Tile, dir probe.Direction) (int, bool) {
	u := dir.Unit()
	dx, dy := to.X-from.X, to.Y-from.Y
	if dir.IsVertical() {
		if dx != 0 {
			return 0, false
		}
		n := dy * int(u.Y)
		return n, n > 0
	}
	if dy != 0 {
		return 0, false
	}
	n := dx * int(u.X)
	return n, n > 0
}
