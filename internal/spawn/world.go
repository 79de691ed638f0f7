package spawn

import (
	"github.com/vovakirdan/tui-bomber/internal/catalog"
	"github.com/vovakirdan/tui-bomber/internal/level"
	"github.com/vovakirdan/tui-bomber/internal/probe"
)

// Prototype names a static piece of level content.
type Prototype int

const (
	Floor Prototype = iota
	SoftBlock
	HardBlock
	WallBlock
	Door
	Player
)

func (p Prototype) String() string {
	switch p {
	case Floor:
		return "Floor"
	case SoftBlock:
		return "SoftBlock"
	case HardBlock:
		return "HardBlock"
	case WallBlock:
		return "WallBlock"
	case Door:
		return "Door"
	case Player:
		return "Player"
	default:
		return "Unknown"
	}
}

// blockPrototypes maps a grid block to the prototype that represents it.
var blockPrototypes = map[level.BlockType]Prototype{
	level.Soft: SoftBlock,
	level.Hard: HardBlock,
	level.Wall: WallBlock,
}

// Handle is a placed actor or tile.
type Handle interface {
	MoveTo(p probe.Point)
}

// EnemyHandle is a placed enemy.
type EnemyHandle interface {
	Handle
	SetInvulnerable(v bool)
}

// World instantiates level content.
type World interface {
	// Reset discards everything placed for the previous level. The player
	// handle survives a reset.
	Reset()
	Instantiate(p Prototype) Handle
	ProduceEnemy(kind catalog.EnemyKind) EnemyHandle
	ProducePowerUp(kind catalog.PowerUpKind) Handle
}

// Tracker follows a handle, usually with the camera.
type Tracker interface {
	Track(h Handle)
}

// Levels resolves level indices to definitions.
type Levels interface {
	Lookup(index int) (catalog.LevelDefinition, bool)
}
