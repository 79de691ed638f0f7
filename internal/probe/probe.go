package probe

// Layer classifies a collider or a querying entity.
type Layer int

const (
	LayerDefault Layer = iota
	LayerWall          // Indestructible: border walls and hard pillars
	LayerSoft          // Destructible soft blocks
	LayerBomb          // Live bombs
	LayerGhost         // Entities that walk through soft blocks
	LayerPlayer
	LayerEnemy
)

// LayerMask is a set of layers.
type LayerMask uint32

// MaskOf builds a mask from the given layers.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << uint(l)
	}
	return m
}

// Has reports whether the mask contains the layer.
func (m LayerMask) Has(l Layer) bool {
	return m&(1<<uint(l)) != 0
}

// Hit is a single intersection reported by a Caster.
type Hit struct {
	Point    Point   // Where the cast met the collider
	Distance float64 // Distance from the cast origin
	Layer    Layer
	Collider any // Caster-specific identity of the thing hit
}

// Caster is the external intersection primitive.
type Caster interface {
	// LineCastAll returns every collider crossed by the segment from-to.
	LineCastAll(from, to Point) []Hit

	// BoxCastAll sweeps a box of the given size from origin along dir for distance.
	BoxCastAll(origin, size Point, angle float64, dir Point, distance float64) []Hit

	// LineCast returns the first collider on the segment whose layer is in mask.
	LineCast(from, to Point, mask LayerMask) (Hit, bool)
}

// Entity is anything that can ask whether a tile is reachable.
type Entity interface {
	Position() Point
	Layer() Layer
}

// Compute returns the launch point and far endpoint of a probe of radius tiles
// cast from pos in direction dir.
//
// The launch point sits on the cell boundary half a tile from pos; the far point
// lies (radius-1) tiles plus half a tile beyond it, on the edge of the last
// affected cell. Degenerate inputs yield a zero-length probe at pos.
func Compute(pos Point, tileSize float64, dir Direction, radius int) (launch, far Point) {
	if radius <= 0 || tileSize <= 0 {
		return pos, pos
	}

	half := tileSize / 2
	reach := float64(radius-1)*tileSize + half
	u := dir.Unit()

	launch = pos.Add(u.Scale(half))
	far = launch.Add(u.Scale(reach))
	return launch, far
}

// Query binds probe geometry to a Caster.
type Query struct {
	caster Caster
}

// NewQuery creates a query over the given caster.
func NewQuery(c Caster) *Query {
	return &Query{caster: c}
}

// Line casts a line probe and returns every hit in the caster's order.
// A zero-length probe has no effect and returns nil.
func (q *Query) Line(pos Point, tileSize float64, dir Direction, radius int) []Hit {
	launch, far := Compute(pos, tileSize, dir, radius)
	if launch == far {
		return nil
	}
	return q.caster.LineCastAll(launch, far)
}

// Blast sweeps a box of cross-section blastSize from the launch point toward
// the far point for tileSize*radius world units.
func (q *Query) Blast(pos Point, tileSize float64, blastSize Point, dir Direction, radius int) []Hit {
	launch, far := Compute(pos, tileSize, dir, radius)
	if launch == far {
		return nil
	}
	heading := far.Sub(launch).Normalize()
	return q.caster.BoxCastAll(launch, blastSize, 0, heading, tileSize*float64(radius))
}

// ObstructionMask returns the layers that block the given entity layer.
// Walls and bombs always block; soft blocks block everything except ghosts.
func ObstructionMask(l Layer) LayerMask {
	mask := MaskOf(LayerWall, LayerBomb)
	if l != LayerGhost {
		mask |= MaskOf(LayerSoft)
	}
	return mask
}

// Obstructs reports whether h blocks an entity on layer l.
func (q *Query) Obstructs(h Hit, l Layer) bool {
	return ObstructionMask(l).Has(h.Layer)
}

// Blocked reports whether any of hits blocks an entity on layer l.
func (q *Query) Blocked(hits []Hit, l Layer) bool {
	for _, h := range hits {
		if q.Obstructs(h, l) {
			return true
		}
	}
	return false
}

// CanReach reports whether nothing obstructs the straight line from the
// entity's position to target. Every movement and line-of-effect decision
// goes through here.
func (q *Query) CanReach(e Entity, target Point) bool {
	_, hit := q.caster.LineCast(e.Position(), target, ObstructionMask(e.Layer()))
	return !hit
}
