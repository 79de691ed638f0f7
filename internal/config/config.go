// Package config loads the game's YAML tuning and computes difficulty
// scaling across levels.
package config

// BomberConfig contains all tuning for the bomber game.
type BomberConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Player     PlayerConfig     `yaml:"player"`
	Bombs      BombConfig       `yaml:"bombs"`
	Timing     TimingConfig     `yaml:"timing"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig sets world geometry.
type GridConfig struct {
	TileSize float64 `yaml:"tile_size"` // World units per tile
}

// PlayerConfig sets the loadout baseline.
type PlayerConfig struct {
	BaseSpeed       float64 `yaml:"base_speed"` // Tiles per second
	SpeedStep       float64 `yaml:"speed_step"`
	MaxSpeed        float64 `yaml:"max_speed"`
	GodSpeed        float64 `yaml:"god_speed"`
	Lives           int     `yaml:"lives"`
	GraceSeconds    float64 `yaml:"grace_seconds"`    // Invincibility after losing an ability
	ImmortalSeconds float64 `yaml:"immortal_seconds"` // 0 keeps Immortal for the rest of the life
}

// BombConfig sets bomb behaviour.
type BombConfig struct {
	FuseSeconds  float64 `yaml:"fuse_seconds"`
	FlameSeconds float64 `yaml:"flame_seconds"`
	BlastWidth   float64 `yaml:"blast_width"` // Cross-section as a fraction of a tile
}

// TimingConfig sets level timers.
type TimingConfig struct {
	CountdownSeconds float64 `yaml:"countdown_seconds"`
	WaveDelaySeconds float64 `yaml:"wave_delay_seconds"`
	EscalationSteps  int     `yaml:"escalation_steps"`
}

// GeneratorConfig tunes level layout.
type GeneratorConfig struct {
	SoftDensity float64 `yaml:"soft_density"`
	SafeRadius  int     `yaml:"safe_radius"`
}

// DifficultyConfig defines how pressure grows over a run.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "stage", "score" or "none"
	MaxAt int    `yaml:"max_at"` // Stage or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier    float64 `yaml:"speed_multiplier"`    // Added to enemy speed at max difficulty
	CountdownReduction float64 `yaml:"countdown_reduction"` // Seconds cut from the countdown at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
