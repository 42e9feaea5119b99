// Package storage provides SQLite-based persistence for scores and replays.
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
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished session.
type ScoreEntry struct {
	ID        int64
	Profile   string // Speed profile
	Pilot     string // "human" or a pilot ID
	Score     float64
	Level     int
	Ticks     uint64
	Seed      int64
	CreatedAt time.Time
}

// Replay is everything needed to re-run a session: the seed and the ticks
// on which a flap was applied.
type Replay struct {
	ID        int64
	Profile   string
	Pilot     string
	Seed      int64
	Score     float64
	Ticks     uint64
	FlapTicks []uint64
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			pilot TEXT NOT NULL DEFAULT 'human',
			score REAL NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_profile ON scores(profile);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(profile, score DESC);

		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			pilot TEXT NOT NULL DEFAULT 'human',
			seed INTEGER NOT NULL,
			score REAL NOT NULL,
			ticks INTEGER NOT NULL,
			flap_ticks TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// parseTime handles both time.Time and string datetime columns.
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

// SaveScore records a finished session. Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.Pilot == "" {
		e.Pilot = "human"
	}
	result, err := s.db.Exec(
		"INSERT INTO scores (profile, pilot, score, level, ticks, seed) VALUES (?, ?, ?, ?, ?, ?)",
		e.Profile, e.Pilot, e.Score, e.Level, int64(e.Ticks), e.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for a speed profile, best first.
// An empty profile matches all profiles.
func (s *Store) TopScores(profile string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, profile, pilot, score, level, ticks, seed, created_at
		 FROM scores
		 WHERE ? = '' OR profile = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		profile, profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Profile, &e.Pilot, &e.Score, &e.Level, &ticks, &e.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for a profile, or 0 if none exist.
func (s *Store) HighScore(profile string) (float64, error) {
	var score sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE profile = ?",
		profile,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return score.Float64, nil
}

// ClearScores deletes all scores for a profile.
func (s *Store) ClearScores(profile string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ProfileStats contains aggregated statistics for a speed profile.
type ProfileStats struct {
	Profile    string
	Sessions   int
	HighScore  float64
	AvgScore   float64
	TotalTicks int64
	LastPlayed time.Time
}

// GetProfileStats retrieves aggregated statistics for a speed profile.
func (s *Store) GetProfileStats(profile string) (*ProfileStats, error) {
	stats := &ProfileStats{Profile: profile}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(ticks), 0)
		 FROM scores WHERE profile = ?`,
		profile,
	).Scan(&stats.Sessions, &stats.HighScore, &stats.AvgScore, &stats.TotalTicks)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get profile stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE profile = ? ORDER BY created_at DESC LIMIT 1`,
		profile,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllProfileStats retrieves statistics for every profile that has been played.
func (s *Store) GetAllProfileStats() (map[string]*ProfileStats, error) {
	rows, err := s.db.Query(
		`SELECT profile, COUNT(*), MAX(score), AVG(score), SUM(ticks), MAX(created_at)
		 FROM scores
		 GROUP BY profile`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all profile stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ProfileStats)
	for rows.Next() {
		var ps ProfileStats
		var lastPlayed any
		if err := rows.Scan(&ps.Profile, &ps.Sessions, &ps.HighScore, &ps.AvgScore, &ps.TotalTicks, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.Profile] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
