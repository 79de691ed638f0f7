package bomber

import (
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/probe"
)

var actionDirections = map[core.Action]probe.Direction{
	core.ActionUp:    probe.Up,
	core.ActionDown:  probe.Down,
	core.ActionLeft:  probe.Left,
	core.ActionRight: probe.Right,
}

// updatePlayer queues the pressed direction and advances the current step.
func (g *Game) updatePlayer(in core.InputFrame) {
	p := g.world.Player()
	if p == nil {
		return
	}
	if a, ok := in.Direction(); ok {
		p.queued = actionDirections[a]
		p.hasCmd = true
	}

	if p.moving {
		p.advance(g.world, g.loadout.Speed*g.dt.Seconds())
		return
	}
	if !p.hasCmd {
		return
	}
	p.hasCmd = false

	q := g.query
	if g.loadout.BombPass {
		q = g.passQuery
	}
	g.tryStep(q, p, &p.mover, p.queued)
}

// tryStep starts a one-tile move if nothing obstructs it.
func (g *Game) tryStep(q *probe.Query, e probe.Entity, m *mover, dir probe.Direction) bool {
	from := m.tile(g.world)
	to := step(from, dir, 1)
	if !q.CanReach(e, g.world.Center(to)) {
		return false
	}
	m.from = from
	m.start(to)
	return true
}

func (g *Game) updateEnemies() {
	for _, e := range g.world.enemies {
		if !e.alive {
			continue
		}
		if e.moving {
			e.advance(g.world, e.traits.Speed*g.speedScale*g.dt.Seconds())
			continue
		}
		dir, ok := g.chooseDirection(e)
		if !ok {
			e.hasDir = false
			continue
		}
		e.hasDir = g.tryStep(g.query, e, &e.mover, dir)
		e.dir = dir
	}
}

// chooseDirection keeps going straight most of the time and otherwise
// picks a random open direction.
func (g *Game) chooseDirection(e *Enemy) (probe.Direction, bool) {
	if e.hasDir && g.rng.Intn(8) != 0 && g.open(e, e.dir) {
		return e.dir, true
	}
	var options []probe.Direction
	for _, d := range probe.Directions {
		if g.open(e, d) {
			options = append(options, d)
		}
	}
	if len(options) == 0 {
		return 0, false
	}
	return options[g.rng.Intn(len(options))], true
}

// open looks one tile ahead for anything that blocks e.
func (g *Game) open(e *Enemy, dir probe.Direction) bool {
	return !g.query.Blocked(g.query.Line(e.Position(), g.world.tileSize, dir, 1), e.Layer())
}

// burnEnemies kills every vulnerable enemy standing in a flame.
func (g *Game) burnEnemies() {
	for _, e := range g.world.enemies {
		if e.alive && !e.invulnerable && g.world.Burning(e.Tile()) {
			e.alive = false
			g.loadout.AddScore(e.traits.Score)
		}
	}
}
