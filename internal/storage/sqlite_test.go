package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/ball-breaker/internal/env"
	"github.com/vovakirdan/ball-breaker/internal/game"
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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	episodes := []Episode{
		{Policy: "random", Outcome: "game_over", Steps: 100, Score: 2, Reward: -1.5},
		{Policy: "random", Outcome: "timed_out", Steps: 1200, Score: 5, Reward: -8},
		{Policy: "dodge", Outcome: "won", Steps: 900, Score: 9, Reward: 3.2, LevelsCleared: 8, Duration: 1500 * time.Millisecond},
	}
	for _, e := range episodes {
		if _, err := store.SaveEpisode(e); err != nil {
			t.Fatalf("SaveEpisode() failed: %v", err)
		}
	}

	recent, err := store.RecentEpisodes("", 10)
	if err != nil {
		t.Fatalf("RecentEpisodes() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 episodes, got %d", len(recent))
	}
	// Newest first
	if recent[0].Policy != "dodge" {
		t.Errorf("Expected newest episode to be dodge, got %s", recent[0].Policy)
	}
	if recent[0].Duration != 1500*time.Millisecond || recent[0].LevelsCleared != 8 {
		t.Errorf("Episode fields not round-tripped: %+v", recent[0])
	}

	randomOnly, err := store.RecentEpisodes("random", 10)
	if err != nil {
		t.Fatalf("RecentEpisodes() failed: %v", err)
	}
	if len(randomOnly) != 2 {
		t.Errorf("Expected 2 random episodes, got %d", len(randomOnly))
	}
}

func TestStoreTopEpisodes(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveEpisode(Episode{Policy: "test", Outcome: "game_over", Score: (i + 1) * 10})
	}

	top, err := store.TopEpisodes("test", 3)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 episodes with limit, got %d", len(top))
	}
	if top[0].Score != 50 || top[1].Score != 40 || top[2].Score != 30 {
		t.Errorf("Episodes not in expected order: %v", top)
	}
}

func TestStorePolicyStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveEpisode(Episode{Policy: "dodge", Outcome: "won", Steps: 100, Score: 10, Reward: 2})
	store.SaveEpisode(Episode{Policy: "dodge", Outcome: "game_over", Steps: 300, Score: 4, Reward: -2})
	store.SaveEpisode(Episode{Policy: "idle", Outcome: "timed_out", Steps: 1200, Score: 0, Reward: -12})

	stats, err := store.GetPolicyStats("dodge")
	if err != nil {
		t.Fatalf("GetPolicyStats() failed: %v", err)
	}
	if stats.Episodes != 2 || stats.BestScore != 10 || stats.Wins != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 7 || stats.AvgReward != 0 || stats.AvgSteps != 200 {
		t.Errorf("Unexpected averages: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.GetPolicyStats("random")
	if err != nil {
		t.Fatalf("GetPolicyStats() failed: %v", err)
	}
	if empty.Episodes != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	all, err := store.GetAllPolicyStats()
	if err != nil {
		t.Fatalf("GetAllPolicyStats() failed: %v", err)
	}
	if len(all) != 2 || all["idle"].Episodes != 1 {
		t.Errorf("Unexpected per-policy stats: %v", all)
	}
}

func TestStoreClearEpisodes(t *testing.T) {
	store := openTestStore(t)

	store.SaveEpisode(Episode{Policy: "a", Outcome: "won"})
	store.SaveEpisode(Episode{Policy: "b", Outcome: "won"})

	if err := store.ClearEpisodes("a"); err != nil {
		t.Fatalf("ClearEpisodes() failed: %v", err)
	}
	left, _ := store.RecentEpisodes("", 10)
	if len(left) != 1 || left[0].Policy != "b" {
		t.Errorf("Expected only policy b to remain, got %v", left)
	}

	if err := store.ClearEpisodes(""); err != nil {
		t.Fatalf("ClearEpisodes() failed: %v", err)
	}
	left, _ = store.RecentEpisodes("", 10)
	if len(left) != 0 {
		t.Errorf("Expected no episodes, got %d", len(left))
	}
}

func TestStoreRecord(t *testing.T) {
	store := openTestStore(t)

	err := store.Record(env.EpisodeResult{
		Episode:   1,
		Policy:    "random",
		Outcome:   game.OutcomeTimedOut,
		Truncated: true,
		Steps:     42,
		Score:     3,
		Reward:    -0.42,
	})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	got, err := store.RecentEpisodes("random", 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("RecentEpisodes() = %v, %v", got, err)
	}
	if got[0].Outcome != "timed_out" || !got[0].Truncated || got[0].Steps != 42 || got[0].Reward != -0.42 {
		t.Errorf("Recorded episode mismatch: %+v", got[0])
	}
}
