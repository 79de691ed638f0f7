// Package power models the player's loadout: bomb count, blast radius,
// speed, pass-through flags, lives and score, and how pickups and hits
// change them.
package power

import (
	"strings"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
)

// Saturation is the ceiling for bomb count and radius.
const Saturation = 100

// Defaults are the per-game constants the state resets to.
type Defaults struct {
	BaseSpeed float64 // Tiles per second at the start of a life
	SpeedStep float64 // Added by each Speed pickup
	MaxSpeed  float64 // Ceiling for Speed pickups
	GodSpeed  float64 // Speed set by MaxOut
	Lives     int
}

// DefaultDefaults returns the stock tuning.
func DefaultDefaults() Defaults {
	return Defaults{
		BaseSpeed: 3,
		SpeedStep: 1,
		MaxSpeed:  8,
		GodSpeed:  5,
		Lives:     2,
	}
}

// Abilities is a set of pass-through flags.
type Abilities uint8

const (
	AbilityFlamePass Abilities = 1 << iota
	AbilityRemoteControl
	AbilityWallPass
	AbilityBombPass
)

// Has reports whether a is in the set.
func (s Abilities) Has(a Abilities) bool {
	return s&a != 0
}

func (s Abilities) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	if s.Has(AbilityFlamePass) {
		parts = append(parts, "FlamePass")
	}
	if s.Has(AbilityRemoteControl) {
		parts = append(parts, "RemoteControl")
	}
	if s.Has(AbilityWallPass) {
		parts = append(parts, "WallPass")
	}
	if s.Has(AbilityBombPass) {
		parts = append(parts, "BombPass")
	}
	return strings.Join(parts, "|")
}

// State is the player's mutable loadout. The zero value is not usable; use New.
type State struct {
	BombCount     int
	Radius        int
	FlamePass     bool
	Invincible    bool
	RemoteControl bool
	WallPass      bool
	BombPass      bool
	Speed         float64
	Lives         int
	Score         int

	defaults Defaults
}

// New returns a state at the start-of-game baseline.
func New(d Defaults) *State {
	if d.BaseSpeed <= 0 {
		d.BaseSpeed = DefaultDefaults().BaseSpeed
	}
	if d.GodSpeed <= 0 {
		d.GodSpeed = d.BaseSpeed
	}
	if d.MaxSpeed < d.BaseSpeed {
		d.MaxSpeed = d.BaseSpeed
	}
	s := &State{defaults: d}
	s.ResetAbilities()
	s.ReloadProgress()
	return s
}

// Defaults returns the constants the state was built with.
func (s *State) Defaults() Defaults {
	return s.defaults
}

// ApplyPickup applies a power-up. It returns false when the pickup changed
// nothing, such as a flag that was already set or a saturated counter.
func (s *State) ApplyPickup(kind catalog.PowerUpKind) bool {
	switch kind {
	case catalog.BombUp:
		return bump(&s.BombCount)
	case catalog.Fire:
		return bump(&s.Radius)
	case catalog.Speed:
		if s.Speed >= s.defaults.MaxSpeed {
			return false
		}
		s.Speed = min(s.Speed+s.defaults.SpeedStep, s.defaults.MaxSpeed)
		return true
	case catalog.FlamePass:
		return set(&s.FlamePass)
	case catalog.RemoteControl:
		return set(&s.RemoteControl)
	case catalog.WallPass:
		return set(&s.WallPass)
	case catalog.BombPass:
		return set(&s.BombPass)
	case catalog.Immortal:
		return set(&s.Invincible)
	default:
		return false
	}
}

func bump(v *int) bool {
	if *v >= Saturation {
		return false
	}
	*v++
	return true
}

func set(f *bool) bool {
	if *f {
		return false
	}
	*f = true
	return true
}

// ApplyHit strips abilities after a hit and returns the ones lost.
//
// At most one tiered ability goes, in the order FlamePass, RemoteControl,
// WallPass. BombPass is cleared on every hit regardless. Counters and speed
// are never reduced.
func (s *State) ApplyHit() Abilities {
	var lost Abilities
	switch {
	case s.FlamePass:
		s.FlamePass = false
		lost |= AbilityFlamePass
	case s.RemoteControl:
		s.RemoteControl = false
		lost |= AbilityRemoteControl
	case s.WallPass:
		s.WallPass = false
		lost |= AbilityWallPass
	}
	if s.BombPass {
		s.BombPass = false
		lost |= AbilityBombPass
	}
	return lost
}

// ResetAbilities restores the per-life loadout. Lives and score are untouched.
func (s *State) ResetAbilities() {
	s.BombCount = 1
	s.Radius = 1
	s.Speed = s.defaults.BaseSpeed
	s.FlamePass = false
	s.Invincible = false
	s.RemoteControl = false
	s.WallPass = false
	s.BombPass = false
}

// ReloadProgress restores lives and score for a new game. Abilities are untouched.
func (s *State) ReloadProgress() {
	s.Lives = s.defaults.Lives
	s.Score = 0
}

// MaxOut saturates every counter and sets every flag.
func (s *State) MaxOut() {
	s.BombCount = Saturation
	s.Radius = Saturation
	s.Speed = s.defaults.GodSpeed
	s.FlamePass = true
	s.Invincible = true
	s.RemoteControl = true
	s.WallPass = true
	s.BombPass = true
}

// AddScore adds points. Negative amounts are ignored.
func (s *State) AddScore(n int) {
	if n > 0 {
		s.Score += n
	}
}

// LoseLife spends a life. It returns false when none were left to spend,
// which ends the game.
func (s *State) LoseLife() bool {
	if s.Lives <= 0 {
		return false
	}
	s.Lives--
	return true
}

// Abilities returns the currently set pass-through flags.
func (s *State) Abilities() Abilities {
	var a Abilities
	if s.FlamePass {
		a |= AbilityFlamePass
	}
	if s.RemoteControl {
		a |= AbilityRemoteControl
	}
	if s.WallPass {
		a |= AbilityWallPass
	}
	if s.BombPass {
		a |= AbilityBombPass
	}
	return a
}
