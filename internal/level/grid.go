// Package level describes the tile layout of a single level and the
// generator that produces it from a catalog definition.
package level

import (
	"strings"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
)

// BlockType is what physically occupies a tile.
type BlockType int

const (
	None BlockType = iota // Open floor
	Soft                  // Destructible
	Hard                  // Indestructible interior pillar
	Wall                  // Indestructible border
)

func (b BlockType) String() string {
	switch b {
	case None:
		return "None"
	case Soft:
		return "Soft"
	case Hard:
		return "Hard"
	case Wall:
		return "Wall"
	default:
		return "Unknown"
	}
}

// Solid reports whether the block can never be destroyed.
func (b BlockType) Solid() bool {
	return b == Hard || b == Wall
}

// Tile addresses a grid cell by column and row.
type Tile struct {
	X, Y int
}

// Anchor is where the player starts every level.
var Anchor = Tile{1, 1}

// Cell is one grid position. Enemy, PowerUp and Door are placement hints
// consumed once when the level is built.
type Cell struct {
	Block   BlockType
	Enemy   *catalog.EnemyKind
	PowerUp *catalog.PowerUpKind
	Door    bool
}

// Grid is a width x height array of cells indexed [x][y].
type Grid struct {
	cells  [][]Cell
	width  int
	height int
}

// NewGrid returns an all-floor grid.
func NewGrid(width, height int) Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]Cell, width)
	for x := range cells {
		cells[x] = make([]Cell, height)
	}
	return Grid{cells: cells, width: width, height: height}
}

// Width returns the number of columns.
func (g Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies in the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y), or the zero cell when out of bounds.
func (g Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{}
	}
	return g.cells[x][y]
}

// Set replaces the cell at (x, y). Out-of-bounds writes are dropped.
func (g Grid) Set(x, y int, c Cell) {
	if g.InBounds(x, y) {
		g.cells[x][y] = c
	}
}

// DoorTile returns the tile flagged as the door.
func (g Grid) DoorTile() (Tile, bool) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.cells[x][y].Door {
				return Tile{x, y}, true
			}
		}
	}
	return Tile{}, false
}

// CountBlocks returns how many cells hold the given block type.
func (g Grid) CountBlocks(b BlockType) int {
	n := 0
	g.each(func(_ Tile, c Cell) {
		if c.Block == b {
			n++
		}
	})
	return n
}

// CountEnemies returns the number of enemy hints per kind.
func (g Grid) CountEnemies() map[catalog.EnemyKind]int {
	out := make(map[catalog.EnemyKind]int)
	g.each(func(_ Tile, c Cell) {
		if c.Enemy != nil {
			out[*c.Enemy]++
		}
	})
	return out
}

// PowerUps returns every power-up hint with its tile.
func (g Grid) PowerUps() map[Tile]catalog.PowerUpKind {
	out := make(map[Tile]catalog.PowerUpKind)
	g.each(func(t Tile, c Cell) {
		if c.PowerUp != nil {
			out[t] = *c.PowerUp
		}
	})
	return out
}

func (g Grid) each(fn func(Tile, Cell)) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			fn(Tile{x, y}, g.cells[x][y])
		}
	}
}

// String renders the grid top row first, matching a y-up world.
//
//	# wall   = hard   + soft   . floor
//	D door   P power-up   e enemy   @ anchor
func (g Grid) String() string {
	var b strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			b.WriteByte(g.glyph(x, y))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g Grid) glyph(x, y int) byte {
	c := g.cells[x][y]
	switch {
	case c.Door:
		return 'D'
	case c.PowerUp != nil:
		return 'P'
	case c.Enemy != nil:
		return 'e'
	case (Tile{x, y}) == Anchor:
		return '@'
	}
	switch c.Block {
	case Wall:
		return '#'
	case Hard:
		return '='
	case Soft:
		return '+'
	default:
		return '.'
	}
}
