// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps a SQLite history of digest runs. The engine itself
// is stateless; the archive is an additive record for inspecting what past
// runs found.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/FlechaMaker/scholar-alert-digest/pkg/types"
)

// Store manages the run-history database.
type Store struct {
	db *sql.DB
}

// Run is one recorded digest run with its aggregated papers.
type Run struct {
	ID        int64       `yaml:"id"`
	StartedAt time.Time   `yaml:"started_at"`
	Stats     types.Stats `yaml:"stats"`
	Papers    []RunPaper  `yaml:"papers"`
}

// RunPaper is one aggregated paper as stored for a run.
type RunPaper struct {
	Title     string      `yaml:"title"`
	URL       string      `yaml:"url"`
	Frequency int         `yaml:"frequency"`
	Refs      []types.Ref `yaml:"refs"`
}

// Open opens or creates the archive database at cfg.Path and ensures the
// schema exists.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			messages INTEGER NOT NULL,
			titles INTEGER NOT NULL,
			errors INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_papers (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			rank INTEGER NOT NULL,
			title TEXT NOT NULL,
			url TEXT,
			frequency INTEGER NOT NULL,
			refs TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_papers_run_id ON run_papers(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun stores one run's stats and its ranked papers. The papers keep
// their ranking order through the rank column.
func (s *Store) RecordRun(startedAt time.Time, stats types.Stats, papers []*types.Paper) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting archive transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (started_at, messages, titles, errors) VALUES (?, ?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339), stats.Messages, stats.Titles, stats.Errors,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for rank, p := range papers {
		refs, err := json.Marshal(p.Refs)
		if err != nil {
			return 0, fmt.Errorf("encoding refs for %q: %w", p.Title, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO run_papers (run_id, rank, title, url, frequency, refs) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, rank, p.Title, p.URL, p.Frequency, string(refs),
		); err != nil {
			return 0, fmt.Errorf("inserting paper %q: %w", p.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Recent returns the newest n runs with their papers in ranking order,
// newest run first.
func (s *Store) Recent(n int) ([]Run, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, messages, titles, errors FROM runs ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &startedAt, &r.Stats.Messages, &r.Stats.Titles, &r.Stats.Errors); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("parsing run timestamp %q: %w", startedAt, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		if runs[i].Papers, err = s.runPapers(runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *Store) runPapers(runID int64) ([]RunPaper, error) {
	rows, err := s.db.Query(
		`SELECT title, url, frequency, refs FROM run_papers WHERE run_id = ? ORDER BY rank`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying papers for run %d: %w", runID, err)
	}
	defer rows.Close()

	var papers []RunPaper
	for rows.Next() {
		var p RunPaper
		var refs sql.NullString
		if err := rows.Scan(&p.Title, &p.URL, &p.Frequency, &refs); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		if refs.Valid && refs.String != "" {
			if err := json.Unmarshal([]byte(refs.String), &p.Refs); err != nil {
				return nil, fmt.Errorf("decoding refs for %q: %w", p.Title, err)
			}
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}
