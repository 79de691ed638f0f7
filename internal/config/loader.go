package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const bomberFile = "bomber.yaml"

// LoadBomber loads the bomber tuning.
// Search order: customPath -> ~/.bomber/configs/bomber.yaml -> ./configs/bomber.yaml -> embedded default.
// Only a bad customPath is an error; the other locations are skipped when missing or malformed.
func LoadBomber(customPath string) (BomberConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BomberConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseBomber(data)
		if err != nil {
			return BomberConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(bomberFile), filepath.Join("configs", bomberFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseBomber(data); err == nil {
				return cfg, nil
			}
		}
	}

	if cfg, err := parseBomber(defaultBomberYAML); err == nil {
		return cfg, nil
	}
	return DefaultBomberConfig(), nil
}

// parseBomber overlays YAML on the hard-coded defaults so a partial file
// only changes the keys it names.
func parseBomber(data []byte) (BomberConfig, error) {
	cfg := DefaultBomberConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BomberConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BomberConfig{}, err
	}
	return cfg, nil
}

// Validate rejects tunings the game cannot run with.
func (c BomberConfig) Validate() error {
	switch {
	case c.Grid.TileSize <= 0:
		return fmt.Errorf("grid.tile_size must be positive")
	case c.Player.BaseSpeed <= 0:
		return fmt.Errorf("player.base_speed must be positive")
	case c.Player.Lives < 0:
		return fmt.Errorf("player.lives must not be negative")
	case c.Bombs.FuseSeconds <= 0:
		return fmt.Errorf("bombs.fuse_seconds must be positive")
	case c.Bombs.BlastWidth <= 0 || c.Bombs.BlastWidth > 1:
		return fmt.Errorf("bombs.blast_width must be in (0, 1]")
	case c.Timing.CountdownSeconds <= 0:
		return fmt.Errorf("timing.countdown_seconds must be positive")
	case c.Generator.SoftDensity < 0 || c.Generator.SoftDensity > 1:
		return fmt.Errorf("generator.soft_density must be in [0, 1]")
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bomber", "configs", filename)
}

// ApplyBomberPreset adjusts the tuning for a difficulty preset.
func ApplyBomberPreset(cfg *BomberConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 4
		cfg.Timing.CountdownSeconds = 300
	case DifficultyHard:
		cfg.Player.Lives = 1
		cfg.Generator.SoftDensity = 0.45
	}
}
