package storage

import (
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
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/.t2048/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".t2048", "scores.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}

// saveScores logs one plain game per score.
func saveScores(t *testing.T, store *Store, gameID string, scores ...int) {
	t.Helper()
	for _, score := range scores {
		if _, err := store.SaveGame(ScoreEntry{GameID: gameID, Score: score}); err != nil {
			t.Fatalf("SaveGame(%d) failed: %v", score, err)
		}
	}
}

func TestStoreSaveGame(t *testing.T) {
	store := openTestStore(t)

	saveScores(t, store, "2048", 100, 50)
	id, err := store.SaveGame(ScoreEntry{GameID: "2048", Score: 20480, MaxTile: 2048, Moves: 940, Won: true})
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if id != 3 {
		t.Errorf("SaveGame() id = %d, want 3", id)
	}
	saveScores(t, store, "other", 500)

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d games, want 3", len(scores))
	}
	if scores[0].Score != 20480 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("games not ordered by score: %v", scores)
	}

	top := scores[0]
	if top.ID != id || top.MaxTile != 2048 || top.Moves != 940 || !top.Won {
		t.Errorf("top game = %+v", top)
	}
	if scores[1].Won {
		t.Error("plain game read back as won")
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreTopScoresTiesKeepPlayOrder(t *testing.T) {
	store := openTestStore(t)

	first, _ := store.SaveGame(ScoreEntry{GameID: "2048", Score: 300, Moves: 10})
	second, _ := store.SaveGame(ScoreEntry{GameID: "2048", Score: 300, Moves: 20})

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].ID != first || scores[1].ID != second {
		t.Errorf("tied games = %+v, want ids %d then %d", scores, first, second)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "2048", 100, 200, 300, 400, 500)

	tests := []struct {
		limit int
		want  []int
	}{
		{3, []int{500, 400, 300}},
		{1, []int{500}},
		{0, []int{500, 400, 300, 200, 100}},
		{-2, []int{500, 400, 300, 200, 100}},
	}

	for _, tt := range tests {
		scores, err := store.TopScores("2048", tt.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tt.limit, err)
		}
		if len(scores) != len(tt.want) {
			t.Errorf("TopScores(%d) returned %d games, want %d", tt.limit, len(scores), len(tt.want))
			continue
		}
		for i, e := range scores {
			if e.Score != tt.want[i] {
				t.Errorf("TopScores(%d)[%d] = %d, want %d", tt.limit, i, e.Score, tt.want[i])
			}
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "2048", 100, 200)
	saveScores(t, store, "other", 300)
	if err := store.SetBestValue("local", "200"); err != nil {
		t.Fatalf("SetBestValue() failed: %v", err)
	}

	if err := store.ClearScores("2048"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("2048", 10); len(scores) != 0 {
		t.Errorf("%d games left after clear", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("other game ID should not be affected")
	}
	if v, ok, _ := store.BestValue("local"); !ok || v != "200" {
		t.Errorf("best slot after clear = %q, %v", v, ok)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 || stats.Wins != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveGame(ScoreEntry{GameID: "2048", Score: 100, MaxTile: 16, Moves: 30})
	store.SaveGame(ScoreEntry{GameID: "2048", Score: 300, MaxTile: 2048, Moves: 90, Won: true})

	stats, err = store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Wins != 1 || stats.BestTile != 2048 {
		t.Errorf("wins = %d, best tile = %d", stats.Wins, stats.BestTile)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	saveScores(t, store, "2048", 256)
	store.Close()

	// migrations must not run twice
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 256 {
		t.Errorf("scores after reopen = %v", scores)
	}
}
