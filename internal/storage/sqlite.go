// Package storage provides SQLite-based persistence for episode statistics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ball-breaker/internal/env"
)

// Store manages the SQLite database connection for episode history.
type Store struct {
	db *sql.DB
}

// Episode is one recorded episode of a headless run.
type Episode struct {
	ID            int64
	Policy        string
	Outcome       string
	Truncated     bool
	Steps         int
	Score         int
	Reward        float64
	FinalLevel    int
	LevelsCleared int
	Duration      time.Duration
	CreatedAt     time.Time
}

// PolicyStats contains aggregated statistics for a policy.
type PolicyStats struct {
	Policy     string
	Episodes   int
	BestScore  int
	AvgScore   float64
	AvgReward  float64
	AvgSteps   float64
	Wins       int // Campaign episodes won
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			policy TEXT NOT NULL,
			outcome TEXT NOT NULL,
			truncated INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL,
			score INTEGER NOT NULL,
			reward REAL NOT NULL,
			final_level INTEGER NOT NULL DEFAULT 0,
			levels_cleared INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_policy ON episodes(policy);
		CREATE INDEX IF NOT EXISTS idx_episodes_top ON episodes(policy, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveEpisode records an episode.
// Returns the ID of the inserted record.
func (s *Store) SaveEpisode(e Episode) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO episodes
		 (policy, outcome, truncated, steps, score, reward, final_level, levels_cleared, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Policy,
		e.Outcome,
		e.Truncated,
		e.Steps,
		e.Score,
		e.Reward,
		e.FinalLevel,
		e.LevelsCleared,
		e.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Record implements env.Recorder.
func (s *Store) Record(r env.EpisodeResult) error {
	_, err := s.SaveEpisode(Episode{
		Policy:        r.Policy,
		Outcome:       string(r.Outcome),
		Truncated:     r.Truncated,
		Steps:         r.Steps,
		Score:         r.Score,
		Reward:        r.Reward,
		FinalLevel:    r.FinalLevel,
		LevelsCleared: r.LevelsCleared,
		Duration:      r.Duration,
	})
	return err
}

// Ensure Store implements Recorder
var _ env.Recorder = (*Store)(nil)

const episodeColumns = `id, policy, outcome, truncated, steps, score, reward,
		        final_level, levels_cleared, duration_ms, created_at`

// RecentEpisodes retrieves the most recent episodes, newest first.
// An empty policy matches every policy.
func (s *Store) RecentEpisodes(policy string, limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE ? = '' OR policy = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		policy, policy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	return scanEpisodes(rows)
}

// TopEpisodes retrieves the highest-scoring episodes of a policy.
// Ties are broken by reward.
func (s *Store) TopEpisodes(policy string, limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE policy = ?
		 ORDER BY score DESC, reward DESC
		 LIMIT ?`,
		policy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	return scanEpisodes(rows)
}

func scanEpisodes(rows *sql.Rows) ([]Episode, error) {
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var e Episode
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.Policy,
			&e.Outcome,
			&e.Truncated,
			&e.Steps,
			&e.Score,
			&e.Reward,
			&e.FinalLevel,
			&e.LevelsCleared,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		episodes = append(episodes, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return episodes, nil
}

// GetPolicyStats retrieves aggregated statistics for a policy.
func (s *Store) GetPolicyStats(policy string) (*PolicyStats, error) {
	stats := &PolicyStats{Policy: policy}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(AVG(reward), 0), COALESCE(AVG(steps), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0)
		 FROM episodes WHERE policy = ?`,
		policy,
	).Scan(&stats.Episodes, &stats.BestScore, &stats.AvgScore, &stats.AvgReward, &stats.AvgSteps, &stats.Wins)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get policy stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM episodes WHERE policy = ? ORDER BY id DESC LIMIT 1`,
		policy,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllPolicyStats retrieves statistics for every policy that has episodes.
func (s *Store) GetAllPolicyStats() (map[string]*PolicyStats, error) {
	rows, err := s.db.Query(
		`SELECT policy, COUNT(*), MAX(score), AVG(score), AVG(reward), AVG(steps),
		        SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), MAX(created_at)
		 FROM episodes
		 GROUP BY policy`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all policy stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PolicyStats)
	for rows.Next() {
		var ps PolicyStats
		var lastPlayed any
		if err := rows.Scan(&ps.Policy, &ps.Episodes, &ps.BestScore, &ps.AvgScore, &ps.AvgReward, &ps.AvgSteps, &ps.Wins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.Policy] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearEpisodes deletes the episodes of a policy, or all episodes when
// policy is empty.
func (s *Store) ClearEpisodes(policy string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE ? = '' OR policy = ?", policy, policy)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
