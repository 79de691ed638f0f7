// Package catalog holds the fixed table of level definitions: which power-up
// each level grants on clear and which enemies it spawns.
package catalog

import (
	_ "embed"
	"fmt"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedTable []byte

// LevelDefinition is the immutable description of one level.
type LevelDefinition struct {
	Index        int
	GrantedPower PowerUpKind
	EnemyCounts  map[EnemyKind]int
	Width        int
	Height       int
	Outline      int
}

// EnemyCount pairs a kind with how many of it a level spawns.
type EnemyCount struct {
	Kind  EnemyKind
	Count int
}

// Enemies returns the kinds with a positive count in escalation order.
func (d LevelDefinition) Enemies() []EnemyCount {
	var out []EnemyCount
	for _, k := range EnemyKinds {
		if n := d.EnemyCounts[k]; n > 0 {
			out = append(out, EnemyCount{Kind: k, Count: n})
		}
	}
	return out
}

// TotalEnemies returns the number of enemies the level places at build time.
func (d LevelDefinition) TotalEnemies() int {
	total := 0
	for _, n := range d.EnemyCounts {
		total += n
	}
	return total
}

// Summary lists the roster as "Kind xN" pairs, e.g. "Balloon x3, Onil x2".
func (d LevelDefinition) Summary() string {
	parts := make([]string, 0, len(d.EnemyCounts))
	for _, ec := range d.Enemies() {
		parts = append(parts, fmt.Sprintf("%s x%d", ec.Kind, ec.Count))
	}
	return strings.Join(parts, ", ")
}

// Catalog maps level indices 1..Len() to definitions.
type Catalog struct {
	levels []LevelDefinition
	traits map[EnemyKind]EnemyTraits
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Lookup returns the definition for a 1-based level index.
// Indices outside the table report false; that means there is no more content.
func (c *Catalog) Lookup(index int) (LevelDefinition, bool) {
	if index < 1 || index > len(c.levels) {
		return LevelDefinition{}, false
	}
	def := c.levels[index-1]
	def.EnemyCounts = maps.Clone(def.EnemyCounts)
	return def, true
}

// Traits returns the gameplay constants for an enemy kind.
func (c *Catalog) Traits(k EnemyKind) EnemyTraits {
	return c.traits[k]
}

var defaultCatalog *Catalog

func init() {
	c, err := Parse(embeddedTable)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded table: %v", err))
	}
	defaultCatalog = c
}

// Default returns the built-in 50-level catalog.
func Default() *Catalog {
	return defaultCatalog
}

// yamlTable is the on-disk layout of a catalog.
type yamlTable struct {
	Defaults yamlSize              `yaml:"defaults"`
	Enemies  map[string]yamlTraits `yaml:"enemies"`
	Levels   []yamlLevel           `yaml:"levels"`
}

type yamlSize struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Outline int `yaml:"outline"`
}

type yamlTraits struct {
	Score int     `yaml:"score"`
	Speed float64 `yaml:"speed"`
	Ghost bool    `yaml:"ghost"`
}

type yamlLevel struct {
	Power   string         `yaml:"power"`
	Enemies map[string]int `yaml:"enemies"`
	// Optional per-level size overrides
	Width   int `yaml:"width,omitempty"`
	Height  int `yaml:"height,omitempty"`
	Outline int `yaml:"outline,omitempty"`
}

// Parse builds a catalog from YAML. Levels are numbered from 1 in file order.
func Parse(data []byte) (*Catalog, error) {
	var t yamlTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("catalog: yaml unmarshal: %w", err)
	}
	if len(t.Levels) == 0 {
		return nil, fmt.Errorf("catalog: no levels")
	}

	c := &Catalog{
		levels: make([]LevelDefinition, 0, len(t.Levels)),
		traits: make(map[EnemyKind]EnemyTraits, len(t.Enemies)),
	}

	for name, yt := range t.Enemies {
		kind, err := ParseEnemy(name)
		if err != nil {
			return nil, fmt.Errorf("catalog: enemies: %w", err)
		}
		if yt.Speed <= 0 {
			return nil, fmt.Errorf("catalog: enemy %s: speed must be positive", kind)
		}
		c.traits[kind] = EnemyTraits(yt)
	}

	for i, yl := range t.Levels {
		def, err := t.Defaults.level(i+1, yl)
		if err != nil {
			return nil, fmt.Errorf("catalog: level %d: %w", i+1, err)
		}
		c.levels = append(c.levels, def)
	}

	return c, nil
}

func (s yamlSize) level(index int, yl yamlLevel) (LevelDefinition, error) {
	power, err := ParsePowerUp(yl.Power)
	if err != nil {
		return LevelDefinition{}, err
	}

	def := LevelDefinition{
		Index:        index,
		GrantedPower: power,
		EnemyCounts:  make(map[EnemyKind]int, len(yl.Enemies)),
		Width:        pick(yl.Width, s.Width),
		Height:       pick(yl.Height, s.Height),
		Outline:      pick(yl.Outline, s.Outline),
	}
	if def.Width < 3 || def.Height < 3 {
		return LevelDefinition{}, fmt.Errorf("size %dx%d too small", def.Width, def.Height)
	}
	if def.Outline < 0 {
		return LevelDefinition{}, fmt.Errorf("negative outline %d", def.Outline)
	}

	for name, n := range yl.Enemies {
		kind, err := ParseEnemy(name)
		if err != nil {
			return LevelDefinition{}, err
		}
		if n < 0 {
			return LevelDefinition{}, fmt.Errorf("negative count %d for %s", n, kind)
		}
		if n > 0 {
			def.EnemyCounts[kind] = n
		}
	}

	return def, nil
}

func pick(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}
