package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SaveReplay stores a replay and returns its ID.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	if r.Pilot == "" {
		r.Pilot = "human"
	}
	ticks, err := yaml.Marshal(r.FlapTicks)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode flap ticks: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO replays (profile, pilot, seed, score, ticks, flap_ticks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Profile, r.Pilot, r.Seed, r.Score, int64(r.Ticks), string(ticks),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Replay loads a replay by ID. Returns ErrNotFound if it does not exist.
func (s *Store) Replay(id int64) (*Replay, error) {
	var r Replay
	var ticks int64
	var flapTicks string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, profile, pilot, seed, score, ticks, flap_ticks, created_at
		 FROM replays WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Profile, &r.Pilot, &r.Seed, &r.Score, &ticks, &flapTicks, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: replay %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	if err := yaml.Unmarshal([]byte(flapTicks), &r.FlapTicks); err != nil {
		return nil, fmt.Errorf("storage: cannot decode flap ticks of replay %d: %w", id, err)
	}
	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// RecentReplays lists the newest replays, newest first.
func (s *Store) RecentReplays(limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, profile, pilot, seed, score, ticks, flap_ticks, created_at
		 FROM replays
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var out []Replay
	for rows.Next() {
		var r Replay
		var ticks int64
		var flapTicks string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Profile, &r.Pilot, &r.Seed, &r.Score, &ticks, &flapTicks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if err := yaml.Unmarshal([]byte(flapTicks), &r.FlapTicks); err != nil {
			return nil, fmt.Errorf("storage: cannot decode flap ticks of replay %d: %w", r.ID, err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
