package bomber

import (
	"cmp"
	"math"
	"slices"

	"github.com/vovakirdan/tui-bomber/internal/level"
	"github.com/vovakirdan/tui-bomber/internal/probe"
)

const castEpsilon = 1e-6

// gridCaster answers probe casts by sampling the world's tiles.
// Segments are walked in quarter-tile steps; the cell the cast starts in
// is never reported.
type gridCaster struct {
	w         *World
	skipBombs bool // Bombs are invisible, for a BombPass player
}

// LineCastAll returns every collider on the segment, nearest first.
func (c *gridCaster) LineCastAll(from, to probe.Point) []probe.Hit {
	return c.sweep(from, to, []probe.Point{{}})
}

// BoxCastAll sweeps an axis-aligned box along dir. The box's extent across
// the heading is sampled at its centre line and both edges.
func (c *gridCaster) BoxCastAll(origin, size probe.Point, _ float64, dir probe.Point, distance float64) []probe.Hit {
	u := dir.Normalize()
	if u == (probe.Point{}) || distance <= 0 {
		return nil
	}
	across := size.Y
	if math.Abs(u.Y) > math.Abs(u.X) {
		across = size.X
	}
	half := max(across/2-castEpsilon, 0)
	side := probe.Point{X: -u.Y, Y: u.X}

	offsets := []probe.Point{{}}
	if half > 0 {
		offsets = append(offsets, side.Scale(half), side.Scale(-half))
	}
	return c.sweep(origin, origin.Add(u.Scale(distance)), offsets)
}

// LineCast returns the nearest collider whose layer is in mask.
func (c *gridCaster) LineCast(from, to probe.Point, mask probe.LayerMask) (probe.Hit, bool) {
	for _, h := range c.LineCastAll(from, to) {
		if mask.Has(h.Layer) {
			return h, true
		}
	}
	return probe.Hit{}, false
}

func (c *gridCaster) sweep(from, to probe.Point, offsets []probe.Point) []probe.Hit {
	length := from.Dist(to)
	if length == 0 {
		return nil
	}
	u := to.Sub(from).Normalize()
	step := c.w.tileSize / 4
	n := int(math.Ceil(length / step))

	var hits []probe.Hit
	seen := make(map[level.Tile]bool)
	for _, off := range offsets {
		seen[c.w.TileOf(from.Add(off).Sub(u.Scale(castEpsilon)))] = true
	}
	for k := 0; k <= n; k++ {
		d := min(max(float64(k)*step, castEpsilon), length-castEpsilon)
		if length <= 2*castEpsilon {
			d = length / 2
		}
		for _, off := range offsets {
			p := from.Add(off).Add(u.Scale(d))
			t := c.w.TileOf(p)
			if seen[t] {
				continue
			}
			seen[t] = true
			hits = c.appendTile(hits, t, p, d)
		}
	}
	slices.SortStableFunc(hits, func(a, b probe.Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return hits
}

// appendTile reports every collider on t: block, bomb, enemies, player.
func (c *gridCaster) appendTile(hits []probe.Hit, t level.Tile, p probe.Point, d float64) []probe.Hit {
	w := c.w
	if b := w.BlockAt(t); b != nil {
		hits = append(hits, probe.Hit{Point: p, Distance: d, Layer: b.Layer(), Collider: b})
	}
	if !c.skipBombs {
		if b := w.BombAt(t); b != nil {
			hits = append(hits, probe.Hit{Point: p, Distance: d, Layer: probe.LayerBomb, Collider: b})
		}
	}
	for _, e := range w.enemies {
		if e.alive && e.Tile() == t {
			hits = append(hits, probe.Hit{Point: p, Distance: d, Layer: probe.LayerEnemy, Collider: e})
		}
	}
	if pl := w.player; pl != nil && pl.Tile() == t {
		hits = append(hits, probe.Hit{Point: p, Distance: d, Layer: probe.LayerPlayer, Collider: pl})
	}
	return hits
}

// colliderTile returns the tile of anything a gridCaster reports.
func colliderTile(h probe.Hit) (level.Tile, bool) {
	switch c := h.Collider.(type) {
	case *Block:
		return c.Tile, true
	case *Bomb:
		return c.Tile, true
	case *Enemy:
		return c.Tile(), true
	case *Player:
		return c.Tile(), true
	default:
		return level.Tile{}, false
	}
}
