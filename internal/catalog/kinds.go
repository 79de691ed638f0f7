package catalog

import (
	"fmt"
	"strings"
)

// PowerUpKind identifies a pickup.
type PowerUpKind int

const (
	BombUp PowerUpKind = iota
	Fire
	Speed
	WallPass
	RemoteControl
	BombPass
	FlamePass
	Immortal
)

var powerUpNames = [...]string{
	BombUp:        "BombUp",
	Fire:          "Fire",
	Speed:         "Speed",
	WallPass:      "WallPass",
	RemoteControl: "RemoteControl",
	BombPass:      "BombPass",
	FlamePass:     "FlamePass",
	Immortal:      "Immortal",
}

// PowerUpKinds lists every power-up kind in declaration order.
var PowerUpKinds = [...]PowerUpKind{BombUp, Fire, Speed, WallPass, RemoteControl, BombPass, FlamePass, Immortal}

func (k PowerUpKind) String() string {
	if k < 0 || int(k) >= len(powerUpNames) {
		return fmt.Sprintf("PowerUpKind(%d)", int(k))
	}
	return powerUpNames[k]
}

// ParsePowerUp resolves a power-up name, ignoring case.
func ParsePowerUp(s string) (PowerUpKind, error) {
	for i, name := range powerUpNames {
		if strings.EqualFold(name, s) {
			return PowerUpKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown power-up %q", s)
}

// EnemyKind identifies an enemy. Declaration order is escalation order:
// later kinds are stronger.
type EnemyKind int

const (
	Balloon EnemyKind = iota
	Onil
	Dahl
	Doria
	Minvo
	Ovape
	Pass
	Pontan
)

var enemyNames = [...]string{
	Balloon: "Balloon",
	Onil:    "Onil",
	Dahl:    "Dahl",
	Doria:   "Doria",
	Minvo:   "Minvo",
	Ovape:   "Ovape",
	Pass:    "Pass",
	Pontan:  "Pontan",
}

// EnemyKinds lists every enemy kind in escalation order.
var EnemyKinds = [...]EnemyKind{Balloon, Onil, Dahl, Doria, Minvo, Ovape, Pass, Pontan}

// Strongest is the last kind in the escalation order.
const Strongest = Pontan

func (k EnemyKind) String() string {
	if k < 0 || int(k) >= len(enemyNames) {
		return fmt.Sprintf("EnemyKind(%d)", int(k))
	}
	return enemyNames[k]
}

// Escalate returns the kind steps positions further along the escalation
// order, capped at the strongest kind.
func (k EnemyKind) Escalate(steps int) EnemyKind {
	next := k + EnemyKind(steps)
	if next > Strongest {
		return Strongest
	}
	if next < Balloon {
		return Balloon
	}
	return next
}

// ParseEnemy resolves an enemy name, ignoring case.
func ParseEnemy(s string) (EnemyKind, error) {
	for i, name := range enemyNames {
		if strings.EqualFold(name, s) {
			return EnemyKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown enemy %q", s)
}

// EnemyTraits are the per-kind gameplay constants.
type EnemyTraits struct {
	Score int     // Points for a kill
	Speed float64 // Tiles per second
	Ghost bool    // Walks through soft blocks
}
