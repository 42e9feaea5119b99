package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{Profile: "classic", Score: 10, Level: 1, Ticks: 3000, Seed: 1},
		{Profile: "classic", Score: 4.5, Ticks: 1200, Seed: 2},
		{Profile: "classic", Pilot: "auto", Score: 22, Level: 2, Ticks: 6000, Seed: 3},
		{Profile: "turbo", Score: 50, Level: 5, Ticks: 9000, Seed: 4},
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 22 || scores[1].Score != 10 || scores[2].Score != 4.5 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Pilot != "auto" || scores[1].Pilot != "human" {
		t.Errorf("Unexpected pilots: %q, %q", scores[0].Pilot, scores[1].Pilot)
	}
	if scores[0].Level != 2 || scores[0].Ticks != 6000 || scores[0].Seed != 3 {
		t.Errorf("Round trip lost fields: %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	all, err := store.TopScores("", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 4 || all[0].Profile != "turbo" {
		t.Errorf("Expected all profiles with turbo first, got %v", all)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{Profile: "test", Score: float64(i+1) * 10})
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 50 || scores[1].Score != 40 || scores[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty profile, got %v", high)
	}

	store.SaveScore(ScoreEntry{Profile: "classic", Score: 10})
	store.SaveScore(ScoreEntry{Profile: "classic", Score: 30.5})
	store.SaveScore(ScoreEntry{Profile: "classic", Score: 20})

	high, err = store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30.5 {
		t.Errorf("Expected high score of 30.5, got %v", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Profile: "classic", Score: 1})
	store.SaveScore(ScoreEntry{Profile: "classic", Score: 2})
	store.SaveScore(ScoreEntry{Profile: "turbo", Score: 3})

	if err := store.ClearScores("classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}

	turbo, _ := store.TopScores("turbo", 10)
	if len(turbo) != 1 {
		t.Errorf("Turbo scores should not be affected by clearing classic")
	}
}

func TestStoreProfileStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetProfileStats("classic")
	if err != nil {
		t.Fatalf("GetProfileStats() failed: %v", err)
	}
	if stats.Sessions != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveScore(ScoreEntry{Profile: "classic", Score: 4, Ticks: 100})
	store.SaveScore(ScoreEntry{Profile: "classic", Score: 8, Ticks: 300})
	store.SaveScore(ScoreEntry{Profile: "turbo", Score: 1, Ticks: 50})

	stats, err = store.GetProfileStats("classic")
	if err != nil {
		t.Fatalf("GetProfileStats() failed: %v", err)
	}
	if stats.Sessions != 2 || stats.HighScore != 8 || stats.AvgScore != 6 || stats.TotalTicks != 400 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}

	all, err := store.GetAllProfileStats()
	if err != nil {
		t.Fatalf("GetAllProfileStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 profiles, got %d", len(all))
	}
	if all["turbo"].Sessions != 1 || all["classic"].HighScore != 8 {
		t.Errorf("Unexpected per-profile stats: classic=%+v turbo=%+v", all["classic"], all["turbo"])
	}
}

func TestStoreReplays(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay(Replay{
		Profile:   "classic",
		Pilot:     "auto",
		Seed:      42,
		Score:     7,
		Ticks:     2100,
		FlapTicks: []uint64{12, 40, 77},
	})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	r, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if r.Seed != 42 || r.Score != 7 || r.Ticks != 2100 || r.Pilot != "auto" {
		t.Errorf("Round trip lost fields: %+v", r)
	}
	if len(r.FlapTicks) != 3 || r.FlapTicks[0] != 12 || r.FlapTicks[2] != 77 {
		t.Errorf("Unexpected flap ticks: %v", r.FlapTicks)
	}

	if _, err := store.SaveReplay(Replay{Profile: "turbo", Seed: 1}); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	recent, err := store.RecentReplays(10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Profile != "turbo" || recent[0].Pilot != "human" {
		t.Errorf("Expected newest replay first, got %+v", recent)
	}
	if len(recent) == 2 && len(recent[1].FlapTicks) != 3 {
		t.Errorf("RecentReplays() flap count = %d, want 3", len(recent[1].FlapTicks))
	}

	_, err = store.Replay(999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
