package bomber

import (
	"fmt"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/level"
	"github.com/vovakirdan/tui-bomber/internal/probe"
	"github.com/vovakirdan/tui-bomber/internal/spawn"
)

// Every tile is two columns wide.
const tileCols = 2

var blockGlyphs = map[level.BlockType]struct {
	glyph string
	color core.Color
}{
	level.Wall: {"██", core.ColorGray},
	level.Hard: {"▓▓", core.ColorWhite},
	level.Soft: {"░░", core.ColorBrown},
}

var powerUpGlyphs = map[catalog.PowerUpKind]string{
	catalog.BombUp:        "B+",
	catalog.Fire:          "F+",
	catalog.Speed:         "S+",
	catalog.WallPass:      "W+",
	catalog.RemoteControl: "R+",
	catalog.BombPass:      "P+",
	catalog.FlamePass:     "X+",
	catalog.Immortal:      "I+",
}

// camera follows whatever the orchestrator tracks.
type camera struct {
	target spawn.Handle
}

func (c *camera) Track(h spawn.Handle) {
	c.target = h
}

func (c *camera) focus() (probe.Point, bool) {
	if e, ok := c.target.(probe.Entity); ok {
		return e.Position(), true
	}
	return probe.Point{}, false
}

// viewStart returns the first coordinate of a view of size cells that keeps
// focus centred inside [lo, hi]. Worlds smaller than the view are centred.
func viewStart(focus, size, lo, hi int) int {
	span := hi - lo + 1
	if span <= size {
		return lo - (size-span)/2
	}
	return core.Clamp(focus-size/2, lo, hi-size+1)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH), core.ColorDefault)
		return
	}
	if g.world == nil {
		return
	}

	g.renderHUD(dst)
	g.renderField(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	var levelText string
	if g.mode == ModeEndless {
		levelText = fmt.Sprintf("Stage %d", g.stage())
	} else {
		levelText = fmt.Sprintf("Level %d/%d", g.levelIndex, g.catalog.Len())
	}
	left := fmt.Sprintf("%s  Score %d  Lives %d", levelText, g.loadout.Score, g.loadout.Lives)
	dst.DrawText(0, 0, left)

	timeColor := core.ColorDefault
	if g.overtime {
		timeColor = core.ColorBrightRed
	}
	timeText := fmt.Sprintf("T%03d", int(g.remaining().Seconds()))
	dst.DrawTextColor(len(left)+2, 0, timeText, timeColor)

	right := fmt.Sprintf("B%d F%d", g.loadout.BombCount, g.loadout.Radius)
	if a := g.loadout.Abilities(); a != 0 {
		right += " " + a.String()
	}
	dst.DrawTextColor(dst.Width()-len(right), 0, right, core.ColorYellow)
}

func (g *Game) renderField(dst *core.Screen) {
	grid := g.orch.Grid()
	n := max(g.level.Outline, 0)
	minX, maxX := -n, grid.Width()-1+n
	minY, maxY := -n, grid.Height()-1+n

	cols := dst.Width() / tileCols
	rows := dst.Height() - 1
	focus := level.Anchor
	if p, ok := g.camera.focus(); ok {
		focus = g.world.TileOf(p)
	}
	left := viewStart(focus.X, cols, minX, maxX)
	bottom := viewStart(focus.Y, rows, minY, maxY)

	enemies := make(map[level.Tile]*Enemy)
	for _, e := range g.world.enemies {
		if e.alive {
			enemies[e.Tile()] = e
		}
	}

	for r := range rows {
		y := bottom + rows - 1 - r // World Y points up
		if y < minY || y > maxY {
			continue
		}
		for c := range cols {
			x := left + c
			if x < minX || x > maxX {
				continue
			}
			glyph, color := g.glyphAt(level.Tile{X: x, Y: y}, enemies)
			dst.DrawTextColor(c*tileCols, r+1, glyph, color)
		}
	}
}

// glyphAt picks what to show on a tile, topmost layer first.
func (g *Game) glyphAt(t level.Tile, enemies map[level.Tile]*Enemy) (string, core.Color) {
	blink := g.tick%8 < 4
	w := g.world

	if p := w.Player(); p != nil && p.Tile() == t {
		if g.loadout.Invincible && blink {
			return "@@", core.ColorWhite
		}
		return "@@", core.ColorBrightYellow
	}
	if e := enemies[t]; e != nil {
		name := e.Kind.String()
		color := core.ColorMagenta
		if e.traits.Ghost {
			color = core.ColorCyan
		}
		if e.invulnerable && blink {
			color = core.ColorWhite
		}
		return name[:2], color
	}
	if b := w.BombAt(t); b != nil {
		if b.Fuse == nil {
			return "<>", core.ColorRed
		}
		return "()", core.ColorRed
	}
	if w.Burning(t) {
		return "**", core.ColorOrange
	}
	if b := w.BlockAt(t); b != nil {
		bg := blockGlyphs[b.Kind]
		return bg.glyph, bg.color
	}
	if door, ok := w.DoorTile(); ok && door == t {
		return "[]", core.ColorBrightCyan
	}
	if pu := w.pickups[t]; pu != nil {
		return powerUpGlyphs[pu.Kind], core.ColorBrightYellow
	}
	return "  ", core.ColorDefault
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.loadout.Score))
	case StateWin:
		g.drawCenteredBox(dst, "YOU WIN!", fmt.Sprintf("Final Score: %d  |  Press R to restart", g.loadout.Score))
	}
}

func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorDefault)
}
