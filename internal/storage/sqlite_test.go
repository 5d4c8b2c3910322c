package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
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

// fixedClock makes the store's timestamps advance one second per call.
func fixedClock(store *Store) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
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

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SetBestScore("ana", 9); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if got, _ := store.BestScore("ana"); got != 9 {
		t.Errorf("BestScore after reopen = %d, expected 9", got)
	}
}

func TestBestScoreMissingIsZero(t *testing.T) {
	store := openTestStore(t)

	got, err := store.BestScore("nobody")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if got != 0 {
		t.Errorf("BestScore = %d, expected 0", got)
	}
}

func TestSetBestScoreOnlyRaises(t *testing.T) {
	store := openTestStore(t)

	steps := []struct {
		score   int
		changed bool
		best    int
	}{
		{5, true, 5},
		{3, false, 5},
		{5, false, 5},
		{8, true, 8},
	}

	for _, step := range steps {
		changed, err := store.SetBestScore("ana", step.score)
		if err != nil {
			t.Fatalf("SetBestScore(%d) failed: %v", step.score, err)
		}
		if changed != step.changed {
			t.Errorf("SetBestScore(%d) changed = %v, expected %v", step.score, changed, step.changed)
		}
		if got, _ := store.BestScore("ana"); got != step.best {
			t.Errorf("after SetBestScore(%d) best = %d, expected %d", step.score, got, step.best)
		}
	}
}

func TestSaveRunAndRecentRuns(t *testing.T) {
	store := openTestStore(t)
	fixedClock(store)

	for i, score := range []int{4, 1, 7} {
		run, err := store.SaveRun(Run{Player: "ana", Score: score, Tier: "hard", Duration: time.Duration(i+1) * time.Second})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if _, err := ulid.Parse(run.ID); err != nil {
			t.Errorf("run ID %q is not a ULID: %v", run.ID, err)
		}
	}
	if _, err := store.SaveRun(Run{Player: "bob", Score: 2, Tier: "easy"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("ana", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].Score != 7 || runs[2].Score != 4 {
		t.Errorf("runs not newest first: %+v", runs)
	}
	if runs[0].Duration != 3*time.Second || runs[0].Tier != "hard" {
		t.Errorf("run fields not round-tripped: %+v", runs[0])
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 4 || all[0].Player != "bob" {
		t.Errorf("RecentRuns(all) = %+v", all)
	}

	limited, _ := store.RecentRuns("", 2)
	if len(limited) != 2 {
		t.Errorf("expected 2 runs with limit, got %d", len(limited))
	}
}

func TestSaveRunDuplicateID(t *testing.T) {
	store := openTestStore(t)

	run, err := store.SaveRun(Run{Player: "ana", Score: 1, Tier: "easy"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(run); err == nil {
		t.Error("expected an error for a duplicate run ID")
	}
}

func TestLeaderboard(t *testing.T) {
	store := openTestStore(t)
	fixedClock(store)

	store.SetBestScore("ana", 5)
	store.SetBestScore("bob", 9)
	store.SetBestScore("cy", 5)

	board, err := store.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}

	want := []string{"bob", "ana", "cy"}
	if len(board) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(board))
	}
	for i, player := range want {
		if board[i].Player != player {
			t.Errorf("rank %d = %s, expected %s", i+1, board[i].Player, player)
		}
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	fixedClock(store)

	store.SaveRun(Run{Player: "ana", Score: 2, Tier: "normal", Duration: time.Second})
	store.SaveRun(Run{Player: "ana", Score: 6, Tier: "hard", Duration: 3 * time.Second})

	stats, err := store.Stats("ana")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 6 || stats.AvgScore != 4 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalTime != 4*time.Second {
		t.Errorf("total time = %s, expected 4s", stats.TotalTime)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("last played not set")
	}

	empty, err := store.Stats("nobody")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats for unknown player = %+v", empty)
	}
}

func TestClearPlayer(t *testing.T) {
	store := openTestStore(t)

	store.SetBestScore("ana", 5)
	store.SaveRun(Run{Player: "ana", Score: 5, Tier: "hard"})
	store.SetBestScore("bob", 3)

	if err := store.ClearPlayer("ana"); err != nil {
		t.Fatalf("ClearPlayer() failed: %v", err)
	}

	if got, _ := store.BestScore("ana"); got != 0 {
		t.Errorf("best after clear = %d, expected 0", got)
	}
	if runs, _ := store.RecentRuns("ana", 10); len(runs) != 0 {
		t.Errorf("runs after clear = %d, expected 0", len(runs))
	}
	if got, _ := store.BestScore("bob"); got != 3 {
		t.Errorf("other player affected: best = %d", got)
	}
}

func TestPlayerBest(t *testing.T) {
	store := openTestStore(t)
	pb := PlayerBest{Store: store, Player: "ana"}

	if got, err := pb.ReadBestScore(); err != nil || got != 0 {
		t.Fatalf("ReadBestScore() = %d, %v", got, err)
	}
	if err := pb.WriteBestScore(11); err != nil {
		t.Fatalf("WriteBestScore() failed: %v", err)
	}
	if err := pb.WriteBestScore(4); err != nil {
		t.Fatalf("WriteBestScore() failed: %v", err)
	}
	if got, _ := pb.ReadBestScore(); got != 11 {
		t.Errorf("ReadBestScore() = %d, expected 11", got)
	}
}
