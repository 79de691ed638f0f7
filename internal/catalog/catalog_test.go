package catalog

import (
	"strings"
	"testing"
)

func TestDefaultCatalogFirstLevel(t *testing.T) {
	c := Default()
	def, ok := c.Lookup(1)
	if !ok {
		t.Fatal("Lookup(1) missed")
	}
	if def.GrantedPower != Fire {
		t.Errorf("GrantedPower = %v, expected Fire", def.GrantedPower)
	}
	if len(def.EnemyCounts) != 1 || def.EnemyCounts[Balloon] != 6 {
		t.Errorf("EnemyCounts = %v, expected 6 Balloon", def.EnemyCounts)
	}
	if def.Index != 1 {
		t.Errorf("Index = %d, expected 1", def.Index)
	}
	if def.Width != 31 || def.Height != 13 || def.Outline != 2 {
		t.Errorf("size = %dx%d outline %d, expected 31x13 outline 2", def.Width, def.Height, def.Outline)
	}
}

func TestDefaultCatalogTable(t *testing.T) {
	c := Default()
	if c.Len() != 50 {
		t.Fatalf("Len() = %d, expected 50", c.Len())
	}

	tests := []struct {
		index int
		power PowerUpKind
		total int
		check map[EnemyKind]int
	}{
		{2, BombUp, 6, map[EnemyKind]int{Balloon: 3, Onil: 3}},
		{4, Speed, 6, map[EnemyKind]int{Balloon: 1, Onil: 1, Dahl: 2, Doria: 2}},
		{14, BombPass, 8, map[EnemyKind]int{Ovape: 7, Pass: 1}},
		{26, Immortal, 8, map[EnemyKind]int{Balloon: 1, Minvo: 2, Pass: 1}},
		{30, FlamePass, 9, map[EnemyKind]int{Dahl: 3, Ovape: 2}},
		{50, Immortal, 10, map[EnemyKind]int{Minvo: 1, Ovape: 2, Pass: 5, Pontan: 2}},
	}

	for _, tc := range tests {
		def, ok := c.Lookup(tc.index)
		if !ok {
			t.Errorf("Lookup(%d) missed", tc.index)
			continue
		}
		if def.GrantedPower != tc.power {
			t.Errorf("level %d power = %v, expected %v", tc.index, def.GrantedPower, tc.power)
		}
		if def.TotalEnemies() != tc.total {
			t.Errorf("level %d total = %d, expected %d", tc.index, def.TotalEnemies(), tc.total)
		}
		for k, n := range tc.check {
			if def.EnemyCounts[k] != n {
				t.Errorf("level %d %v = %d, expected %d", tc.index, k, def.EnemyCounts[k], n)
			}
		}
	}
}

func TestLookupOutOfRange(t *testing.T) {
	c := Default()
	for _, idx := range []int{-1, 0, 51, 1000} {
		if def, ok := c.Lookup(idx); ok {
			t.Errorf("Lookup(%d) = %+v, expected miss", idx, def)
		}
	}
}

func TestLookupIsPureAndRepeatable(t *testing.T) {
	c := Default()
	a, _ := c.Lookup(3)
	a.EnemyCounts[Balloon] = 99
	a.EnemyCounts[Pontan] = 5

	b, _ := c.Lookup(3)
	if b.EnemyCounts[Balloon] != 2 {
		t.Errorf("mutating a lookup leaked into the table: Balloon = %d", b.EnemyCounts[Balloon])
	}
	if _, ok := b.EnemyCounts[Pontan]; ok {
		t.Error("mutating a lookup added a key to the table")
	}
}

func TestEnemiesOrdered(t *testing.T) {
	def, _ := Default().Lookup(4)
	got := def.Enemies()
	want := []EnemyCount{{Balloon, 1}, {Onil, 1}, {Dahl, 2}, {Doria, 2}}
	if len(got) != len(want) {
		t.Fatalf("Enemies() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Enemies()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestEscalate(t *testing.T) {
	tests := []struct {
		kind     EnemyKind
		steps    int
		expected EnemyKind
	}{
		{Balloon, 2, Dahl},
		{Onil, 2, Doria},
		{Minvo, 2, Pass},
		{Ovape, 2, Pontan},
		{Pass, 2, Pontan},
		{Pontan, 2, Pontan},
		{Dahl, 0, Dahl},
	}
	for _, tc := range tests {
		if got := tc.kind.Escalate(tc.steps); got != tc.expected {
			t.Errorf("%v.Escalate(%d) = %v, expected %v", tc.kind, tc.steps, got, tc.expected)
		}
	}
}

func TestTraits(t *testing.T) {
	c := Default()
	for _, k := range EnemyKinds {
		tr := c.Traits(k)
		if tr.Score <= 0 || tr.Speed <= 0 {
			t.Errorf("%v traits = %+v, expected positive score and speed", k, tr)
		}
	}
	if !c.Traits(Doria).Ghost || c.Traits(Balloon).Ghost {
		t.Error("ghost flags wrong: Doria should pass soft blocks, Balloon should not")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "levels: []", "no levels"},
		{"bad power", "defaults: {width: 5, height: 5}\nlevels:\n  - {power: Laser}", "unknown power-up"},
		{"bad enemy", "defaults: {width: 5, height: 5}\nlevels:\n  - {power: Fire, enemies: {Ghoul: 1}}", "unknown enemy"},
		{"negative count", "defaults: {width: 5, height: 5}\nlevels:\n  - {power: Fire, enemies: {Balloon: -1}}", "negative count"},
		{"too small", "defaults: {width: 2, height: 5}\nlevels:\n  - {power: Fire}", "too small"},
		{"bad trait", "enemies: {Balloon: {score: 1, speed: 0}}\ndefaults: {width: 5, height: 5}\nlevels:\n  - {power: Fire}", "speed must be positive"},
		{"syntax", "levels: [", "yaml unmarshal"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("Parse() succeeded, expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Parse() error = %q, expected to contain %q", err, tc.want)
			}
		})
	}
}

func TestParseOverrides(t *testing.T) {
	data := `
defaults: {width: 9, height: 7, outline: 1}
levels:
  - {power: speed, enemies: {balloon: 2, pontan: 0}}
  - {power: Immortal, width: 15, outline: 3}
`
	c, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	first, _ := c.Lookup(1)
	if first.GrantedPower != Speed || first.EnemyCounts[Balloon] != 2 {
		t.Errorf("level 1 = %+v", first)
	}
	if _, ok := first.EnemyCounts[Pontan]; ok {
		t.Error("zero counts should not be stored")
	}
	second, _ := c.Lookup(2)
	if second.Width != 15 || second.Height != 7 || second.Outline != 3 {
		t.Errorf("level 2 size = %dx%d outline %d, expected 15x7 outline 3", second.Width, second.Height, second.Outline)
	}
}

func TestSummary(t *testing.T) {
	d := LevelDefinition{EnemyCounts: map[EnemyKind]int{Onil: 2, Balloon: 3}}
	if got := d.Summary(); got != "Balloon x3, Onil x2" {
		t.Errorf("Summary() = %q, expected %q", got, "Balloon x3, Onil x2")
	}
	if got := (LevelDefinition{}).Summary(); got != "" {
		t.Errorf("empty Summary() = %q, expected empty", got)
	}
}
