// Package store persists sweep runs and their retained candidates in a
// local SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"k4sweep/internal/phase"
	"k4sweep/internal/search"
)

// DefaultDBPath is where the CLI keeps its run history.
const DefaultDBPath = ".k4sweep/runs.db"

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
// The parent directory is created if missing.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	var v int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if v != schemaVersion {
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

// Run is one persisted sweep configuration and its headline numbers.
type Run struct {
	ID             int64
	CreatedAt      string
	Period         int
	Phase          int
	Letters        string
	EnforceAnchors bool
	FreeResidues   string // comma-separated residue list
	Evaluated      int64
	Kept           int64
	BestScore      float64
}

// SaveRun records a completed sweep and its top candidates atomically.
func (s *Store) SaveRun(run Run, candidates []search.Candidate) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	enforce := 0
	if run.EnforceAnchors {
		enforce = 1
	}
	res, err := tx.Exec(`INSERT INTO runs
		(created_at, period, phase, letters, enforce_anchors, free_residues, evaluated, kept, best_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nowUTC(), run.Period, run.Phase, run.Letters, enforce,
		run.FreeResidues, run.Evaluated, run.Kept, run.BestScore)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for i, c := range candidates {
		_, err := tx.Exec(`INSERT INTO candidates (run_id, rank, score, fill, keystream, plaintext)
			VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i+1, c.Score.Total, c.FillString(), c.KeystreamLetters(), c.Plaintext)
		if err != nil {
			return 0, fmt.Errorf("insert candidate %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// SaveVerdicts records the phase-acceptance report for a run. Metrics are
// stored as JSON so the history view can replay them.
func (s *Store) SaveVerdicts(runID int64, summary *phase.Summary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, v := range summary.Verdicts {
		metrics, err := json.Marshal(v.Metrics)
		if err != nil {
			return fmt.Errorf("marshal metrics: %w", err)
		}
		accepted := 0
		if v.Accepted {
			accepted = 1
		}
		if _, err := tx.Exec(`INSERT INTO verdicts (run_id, phase_offset, accepted, reason, metrics)
			VALUES (?, ?, ?, ?, ?)`,
			runID, v.Offset, accepted, v.Reason, string(metrics)); err != nil {
			return fmt.Errorf("insert verdict: %w", err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT id, created_at, period, phase, letters, enforce_anchors,
		free_residues, evaluated, kept, COALESCE(best_score, 0)
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var enforce int
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Period, &r.Phase, &r.Letters,
			&enforce, &r.FreeResidues, &r.Evaluated, &r.Kept, &r.BestScore); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.EnforceAnchors = enforce != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// CandidateRow is a persisted candidate as stored.
type CandidateRow struct {
	Rank      int
	Score     float64
	Fill      string
	Keystream string
	Plaintext string
}

// Candidates returns a run's retained candidates, best first.
func (s *Store) Candidates(runID int64, limit int) ([]CandidateRow, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.db.Query(`SELECT rank, score, fill, keystream, plaintext
		FROM candidates WHERE run_id = ? ORDER BY rank LIMIT ?`, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []CandidateRow
	for rows.Next() {
		var c CandidateRow
		if err := rows.Scan(&c.Rank, &c.Score, &c.Fill, &c.Keystream, &c.Plaintext); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FreeResidueList renders residues for the runs table.
func FreeResidueList(residues []int) string {
	parts := make([]string, len(residues))
	for i, r := range residues {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return strings.Join(parts, ",")
}
