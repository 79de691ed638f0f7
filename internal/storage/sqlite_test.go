package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSaveAndTopRuns(t *testing.T) {
	store := openTemp(t)

	runs := []Run{
		{GameID: "bomber", Player: "ann", Score: 1200, Level: 3},
		{GameID: "bomber", Player: "bob", Score: 400, Level: 1},
		{GameID: "bomber", Player: "cid", Score: 1200, Level: 5},
		{GameID: "bomber", Player: "dee", Score: 90000, Level: 50, Won: true},
		{GameID: "bomber_endless", Score: 7000, Level: 12},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("bomber", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 4 {
		t.Fatalf("TopRuns() returned %d, expected 4", len(top))
	}

	wantPlayers := []string{"dee", "cid", "ann", "bob"}
	for i, p := range wantPlayers {
		if top[i].Player != p {
			t.Errorf("TopRuns()[%d].Player = %q, expected %q", i, top[i].Player, p)
		}
	}
	if !top[0].Won || top[0].Level != 50 {
		t.Errorf("winner row = %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}

	limited, _ := store.TopRuns("bomber", 2)
	if len(limited) != 2 {
		t.Errorf("TopRuns(limit 2) returned %d", len(limited))
	}
}

func TestHighScoreAndBestLevel(t *testing.T) {
	store := openTemp(t)

	if hs, err := store.HighScore("bomber"); err != nil || hs != 0 {
		t.Errorf("HighScore() on empty = %d, %v", hs, err)
	}

	store.SaveRun(Run{GameID: "bomber", Score: 300, Level: 7})
	store.SaveRun(Run{GameID: "bomber", Score: 900, Level: 2})

	if hs, _ := store.HighScore("bomber"); hs != 900 {
		t.Errorf("HighScore() = %d, expected 900", hs)
	}
	if lv, _ := store.BestLevel("bomber"); lv != 7 {
		t.Errorf("BestLevel() = %d, expected 7", lv)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTemp(t)
	store.SaveRun(Run{GameID: "bomber", Score: 10, Level: 1})
	store.SaveRun(Run{GameID: "bomber_endless", Score: 20, Level: 1})

	if err := store.ClearRuns("bomber"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns("bomber", 10); len(runs) != 0 {
		t.Errorf("%d runs left after clear", len(runs))
	}
	if runs, _ := store.TopRuns("bomber_endless", 10); len(runs) != 1 {
		t.Error("clear removed another game's runs")
	}
}

func TestStats(t *testing.T) {
	store := openTemp(t)

	empty, err := store.Stats("bomber")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun(Run{GameID: "bomber", Score: 100, Level: 2})
	store.SaveRun(Run{GameID: "bomber", Score: 300, Level: 50, Won: true})

	st, err := store.Stats("bomber")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.RunsCount != 2 || st.HighScore != 300 || st.BestLevel != 50 || st.Wins != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", st.AvgScore)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed not populated")
	}
}
