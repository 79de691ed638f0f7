package config

import (
	_ "embed"
)

//go:embed defaults/bomber.yaml
var defaultBomberYAML []byte

// DefaultBomberConfig returns the hard-coded tuning used when no YAML can be read.
func DefaultBomberConfig() BomberConfig {
	return BomberConfig{
		Grid: GridConfig{TileSize: 1},
		Player: PlayerConfig{
			BaseSpeed:       3,
			SpeedStep:       1,
			MaxSpeed:        8,
			GodSpeed:        5,
			Lives:           2,
			GraceSeconds:    2,
			ImmortalSeconds: 30,
		},
		Bombs: BombConfig{
			FuseSeconds:  2.5,
			FlameSeconds: 0.5,
			BlastWidth:   0.8,
		},
		Timing: TimingConfig{
			CountdownSeconds: 200,
			WaveDelaySeconds: 3,
			EscalationSteps:  2,
		},
		Generator: GeneratorConfig{
			SoftDensity: 0.35,
			SafeRadius:  4,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "stage",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:    0.5,
				CountdownReduction: 80,
			},
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultBomberYAML
}
