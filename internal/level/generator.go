package level

import (
	"math/rand"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
)

// Generator turns a level definition into a grid.
type Generator interface {
	Generate(def catalog.LevelDefinition) Grid
}

// ClassicGenerator lays out the pillar-and-brick arena: a wall border,
// hard pillars on every even interior coordinate pair, and soft blocks
// sprinkled over the remaining floor.
//
// Output is deterministic for a given Seed and level index.
type ClassicGenerator struct {
	Seed        int64
	SoftDensity float64 // Chance a free interior cell becomes soft
	SafeRadius  int     // Minimum Manhattan distance from the anchor for enemies
}

// NewClassicGenerator returns a generator with stock density and safe radius.
func NewClassicGenerator(seed int64) *ClassicGenerator {
	return &ClassicGenerator{Seed: seed, SoftDensity: 0.35, SafeRadius: 4}
}

// Generate builds the grid for def.
func (g *ClassicGenerator) Generate(def catalog.LevelDefinition) Grid {
	grid := NewGrid(def.Width, def.Height)
	if def.Width < 3 || def.Height < 3 {
		return grid
	}
	rng := rand.New(rand.NewSource(g.Seed*1_000_003 + int64(def.Index)))

	var free []Tile
	for x := 0; x < def.Width; x++ {
		for y := 0; y < def.Height; y++ {
			switch {
			case x == 0 || y == 0 || x == def.Width-1 || y == def.Height-1:
				grid.cells[x][y].Block = Wall
			case x%2 == 0 && y%2 == 0:
				grid.cells[x][y].Block = Hard
			case startArea(Tile{x, y}):
				// Start cells stay open
			case rng.Float64() < g.SoftDensity:
				grid.cells[x][y].Block = Soft
			default:
				free = append(free, Tile{x, y})
			}
		}
	}

	var soft []Tile
	grid.each(func(t Tile, c Cell) {
		if c.Block == Soft {
			soft = append(soft, t)
		}
	})
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	rng.Shuffle(len(soft), func(i, j int) { soft[i], soft[j] = soft[j], soft[i] })

	// Door and power-up each need their own soft block
	for len(soft) < 2 && len(free) > 0 {
		t := free[len(free)-1]
		free = free[:len(free)-1]
		grid.cells[t.X][t.Y].Block = Soft
		soft = append(soft, t)
	}

	switch {
	case len(soft) > 0:
		door := soft[0]
		grid.cells[door.X][door.Y].Door = true
	default:
		grid.cells[Anchor.X][Anchor.Y].Door = true
	}
	if len(soft) > 1 {
		p := soft[1]
		power := def.GrantedPower
		grid.cells[p.X][p.Y].PowerUp = &power
	}

	g.placeEnemies(grid, def, free)
	return grid
}

func (g *ClassicGenerator) placeEnemies(grid Grid, def catalog.LevelDefinition, free []Tile) {
	var far, near []Tile
	for _, t := range free {
		if manhattan(t, Anchor) >= g.SafeRadius {
			far = append(far, t)
		} else {
			near = append(near, t)
		}
	}
	// Fall back to closer cells only when the arena is too small
	spots := append(far, near...)

	i := 0
	for _, ec := range def.Enemies() {
		for n := 0; n < ec.Count && i < len(spots); n++ {
			t := spots[i]
			i++
			kind := ec.Kind
			grid.cells[t.X][t.Y].Enemy = &kind
		}
	}
}

func startArea(t Tile) bool {
	return t == Anchor || t == Tile{Anchor.X + 1, Anchor.Y} || t == Tile{Anchor.X, Anchor.Y + 1}
}

func manhattan(a, b Tile) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
