// Package storage provides SQLite-based persistence for best scores and run
// history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/flapper/internal/games/flappy"
)

// DefaultPath is the database location used when none is given.
const DefaultPath = "~/.flapper/scores.db"

// Store manages the SQLite database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one finished run.
type Run struct {
	ID        string // ULID, sortable by creation time
	Player    string
	Score     int
	Tier      string // Tier in force when the run ended
	Duration  time.Duration
	CreatedAt time.Time
}

// BestEntry is one row of the leaderboard.
type BestEntry struct {
	Player    string
	Score     int
	UpdatedAt time.Time
}

// PlayerStats aggregates a player's run history.
type PlayerStats struct {
	Player     string
	Runs       int
	HighScore  int
	AvgScore   float64
	TotalTime  time.Duration
	LastPlayed time.Time
}

// NewRunID returns a fresh ULID string for a run.
func NewRunID() string {
	return ulid.Make().String()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

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

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			player TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			tier TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
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

// BestScore returns the player's best score, or 0 if none is stored.
func (s *Store) BestScore(player string) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM best_scores WHERE player = ?", player).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SetBestScore stores score as the player's best if it beats the stored one.
// It reports whether the stored value changed.
func (s *Store) SetBestScore(player string, score int) (bool, error) {
	res, err := s.db.Exec(
		`INSERT INTO best_scores (player, score, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(player) DO UPDATE
		 SET score = excluded.score, updated_at = excluded.updated_at
		 WHERE excluded.score > best_scores.score`,
		player, score, s.now().UnixMilli(),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save best score: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// SaveRun records a finished run. A missing ID or timestamp is filled in.
// Returns the stored run.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, player, score, tier, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Player, run.Score, run.Tier, run.Duration.Milliseconds(), run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run, nil
}

// RecentRuns returns the newest runs, newest first. An empty player means
// every player.
func (s *Store) RecentRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT run_id, player, score, tier, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR player = ?
		 ORDER BY created_at DESC, run_id DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS, createdAt int64
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Tier, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = time.UnixMilli(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Leaderboard returns the best score of every player, highest first.
func (s *Store) Leaderboard(limit int) ([]BestEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT player, score, updated_at
		 FROM best_scores
		 ORDER BY score DESC, updated_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []BestEntry
	for rows.Next() {
		var e BestEntry
		var updatedAt int64
		if err := rows.Scan(&e.Player, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = time.UnixMilli(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats retrieves aggregated run statistics for a player.
func (s *Store) Stats(player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	var totalMS, lastPlayed int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(duration_ms), 0), COALESCE(MAX(created_at), 0)
		 FROM runs WHERE player = ?`,
		player,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &totalMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}

	stats.TotalTime = time.Duration(totalMS) * time.Millisecond
	if lastPlayed > 0 {
		stats.LastPlayed = time.UnixMilli(lastPlayed)
	}
	return stats, nil
}

// ClearPlayer deletes a player's best score and run history.
func (s *Store) ClearPlayer(player string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM best_scores WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear best score: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// PlayerBest adapts a Store to flappy.BestScoreStore for a single player.
type PlayerBest struct {
	Store  *Store
	Player string
}

// ReadBestScore implements flappy.BestScoreStore.
func (p PlayerBest) ReadBestScore() (int, error) {
	return p.Store.BestScore(p.Player)
}

// WriteBestScore implements flappy.BestScoreStore.
func (p PlayerBest) WriteBestScore(score int) error {
	_, err := p.Store.SetBestScore(p.Player, score)
	return err
}

var _ flappy.BestScoreStore = PlayerBest{}
