package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := parseBomber(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultBomberConfig() {
		t.Errorf("embedded default drifted from DefaultBomberConfig:\n%+v\n%+v", cfg, DefaultBomberConfig())
	}
}

func TestLoadBomberCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.yaml")
	data := "player:\n  lives: 5\ntiming:\n  countdown_seconds: 120\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBomber(path)
	if err != nil {
		t.Fatalf("LoadBomber() error: %v", err)
	}
	if cfg.Player.Lives != 5 || cfg.Timing.CountdownSeconds != 120 {
		t.Errorf("overrides not applied: lives=%d countdown=%v", cfg.Player.Lives, cfg.Timing.CountdownSeconds)
	}
	// Untouched keys keep their defaults
	if cfg.Bombs.FuseSeconds != 2.5 || cfg.Timing.WaveDelaySeconds != 3 {
		t.Errorf("defaults lost: fuse=%v wave=%v", cfg.Bombs.FuseSeconds, cfg.Timing.WaveDelaySeconds)
	}
}

func TestLoadBomberErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBomber(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("bombs:\n  blast_width: 3\n"), 0o600)
	_, err := LoadBomber(bad)
	if err == nil || !strings.Contains(err.Error(), "blast_width") {
		t.Errorf("LoadBomber(bad) error = %v, expected blast_width validation", err)
	}
}

func TestLoadBomberFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadBomber("")
	if err != nil {
		t.Fatalf("LoadBomber(\"\") error: %v", err)
	}
	if cfg.Timing.CountdownSeconds != 200 {
		t.Errorf("countdown = %v, expected embedded 200", cfg.Timing.CountdownSeconds)
	}
}

func TestApplyBomberPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
		lives   int
	}{
		{DifficultyEasy, true, 0.0, 4},
		{DifficultyNormal, true, 0.3, 2},
		{DifficultyHard, true, 0.7, 1},
		{DifficultyFixed, false, 0.0, 2},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBomberConfig()
			ApplyBomberPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initial)
			}
			if cfg.Player.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Player.Lives, tc.lives)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("brutal"); ok {
		t.Error("ParsePreset accepted an unknown name")
	}
}

func TestDifficultyProgression(t *testing.T) {
	d := NewDifficultyManager(DefaultBomberConfig().Difficulty)

	if got := d.Level(1, 0); got != 0 {
		t.Errorf("Level(1) = %v, expected 0", got)
	}
	if got := d.Level(26, 0); got != 0.5 {
		t.Errorf("Level(26) = %v, expected 0.5", got)
	}
	if got := d.Level(200, 0); got != 1 {
		t.Errorf("Level(200) = %v, expected clamp to 1", got)
	}

	if got := d.EnemySpeed(2, 51, 0); got != 3 {
		t.Errorf("EnemySpeed at max = %v, expected 3", got)
	}
	if got := d.Countdown(200*time.Second, 51, 0); got != 120*time.Second {
		t.Errorf("Countdown at max = %v, expected 120s", got)
	}
	if got := d.Countdown(40*time.Second, 51, 0); got != 30*time.Second {
		t.Errorf("Countdown floor = %v, expected 30s", got)
	}
}

func TestDifficultyFixed(t *testing.T) {
	cfg := DefaultBomberConfig()
	ApplyBomberPreset(&cfg, DifficultyFixed)
	d := NewDifficultyManager(cfg.Difficulty)
	if d.IsEnabled() {
		t.Error("fixed preset left progression on")
	}
	if got := d.EnemySpeed(2, 50, 99999); got != 2 {
		t.Errorf("EnemySpeed with fixed difficulty = %v, expected 2", got)
	}
}
