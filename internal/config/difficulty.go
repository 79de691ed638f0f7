package config

import (
	"math"
	"time"
)

// Minimum countdown regardless of difficulty.
const minCountdown = 30 * time.Second

// DifficultyManager derives per-level tuning from progress through a run.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty in [0, 1] for the given stage and score.
func (d *DifficultyManager) Level(stage, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "stage":
		progress = float64(stage-1) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}
	progress = clampF(progress, 0, 1)

	return d.initialLevel + progress*(1-d.initialLevel)
}

// EnemySpeed scales a base enemy speed.
func (d *DifficultyManager) EnemySpeed(base float64, stage, score int) float64 {
	return base * (1 + d.Level(stage, score)*d.cfg.Scaling.SpeedMultiplier)
}

// Countdown shortens the level timer as difficulty rises.
func (d *DifficultyManager) Countdown(base time.Duration, stage, score int) time.Duration {
	cut := time.Duration(d.Level(stage, score) * d.cfg.Scaling.CountdownReduction * float64(time.Second))
	return max(base-cut, min(base, minCountdown))
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
