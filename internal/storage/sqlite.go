// Package storage keeps the run log behind the scoreboard in an in-memory
// SQLite database. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Nothing is written to disk; the log lives as long as the
// process.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the run log. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Run is one finished climb.
type Run struct {
	ID         string // assigned by SaveRun when empty
	Player     string // SSH user, or empty for local play
	Score      int
	Floor      int
	Steps      int
	BPM        int // tempo reached when the run ended
	Seed       int64
	Duration   time.Duration
	FinishedAt time.Time
}

// Stats aggregates every run in the log.
type Stats struct {
	Runs       int
	BestScore  int
	BestFloor  int
	TotalSteps int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates an empty in-memory run log.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so keep exactly one
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

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

// migrate creates the schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			floor INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			bpm INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			finished_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC, finished_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database, discarding the log.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, player, score, floor, steps, bpm, seed, duration_ms, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Score, r.Floor, r.Steps, r.BPM, r.Seed,
		r.Duration.Milliseconds(), r.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

// TopRuns returns the best runs, highest score first. Ties go to the run
// that finished earlier.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, floor, steps, bpm, seed, duration_ms, finished_at
		 FROM runs
		 ORDER BY score DESC, finished_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs, finishedMs int64
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Floor, &r.Steps, &r.BPM, &r.Seed, &durationMs, &finishedMs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.FinishedAt = time.UnixMilli(finishedMs)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestScore returns the highest score in the log, or 0 when it is empty.
func (s *Store) BestScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats returns aggregates over every run.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	var lastMs sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(floor), 0),
		        COALESCE(SUM(steps), 0), COALESCE(AVG(score), 0), MAX(finished_at)
		 FROM runs`,
	).Scan(&st.Runs, &st.BestScore, &st.BestFloor, &st.TotalSteps, &st.AvgScore, &lastMs)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	if lastMs.Valid {
		st.LastPlayed = time.UnixMilli(lastMs.Int64)
	}
	return st, nil
}
