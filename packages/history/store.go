// Package history persists suite run results to a local SQLite database so
// past runs can be listed and inspected by the jest CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/Venkat-18/jest/packages/runner"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	suite       TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	passed      INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	p95_ms      INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS tests (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	name        TEXT NOT NULL,
	status      TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	message     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_tests_run_id ON tests(run_id);
`

// Store is a SQLite-backed run history.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// Open opens (and if needed initializes) the history database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{db: db, timeout: 5 * time.Second}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID         string
	Suite      string
	StartedAt  time.Time
	Passed     int
	Failed     int
	Skipped    int
	DurationMs int64
	P95Ms      int64
}

// TestEntry is one recorded test block of a past run.
type TestEntry struct {
	Name       string
	Status     string
	DurationMs int64
	Message    string
}

// Append stores a finished run and its per-test records.
func (s *Store) Append(res *runner.RunResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning history transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var p95 int64
	if res.Stats != nil {
		p95 = res.Stats.P95.Milliseconds()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, suite, started_at, passed, failed, skipped, duration_ms, p95_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.Suite, time.Now().UTC(), res.Passed, res.Failed, res.Skipped,
		res.Duration.Milliseconds(), p95)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, rec := range res.Records {
		status := "passed"
		message := ""
		switch {
		case rec.Skipped:
			status = "skipped"
			message = rec.SkipReason
		case rec.Error != "":
			status = "error"
			message = rec.Error
		case !rec.Passed():
			status = "failed"
			if failed := rec.FailedResults(); len(failed) > 0 {
				message = failed[0].Message
			}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO tests (run_id, name, status, duration_ms, message)
			 VALUES (?, ?, ?, ?, ?)`,
			res.RunID, rec.Name, status, rec.Duration.Milliseconds(), message)
		if err != nil {
			return fmt.Errorf("inserting test record: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	if limit < 1 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, suite, started_at, passed, failed, skipped, duration_ms, p95_ms
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Suite, &r.StartedAt, &r.Passed, &r.Failed,
			&r.Skipped, &r.DurationMs, &r.P95Ms); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunDetail returns one run's summary and its test entries.
func (s *Store) RunDetail(id string) (*RunSummary, []TestEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var r RunSummary
	err := s.db.QueryRowContext(ctx,
		`SELECT id, suite, started_at, passed, failed, skipped, duration_ms, p95_ms
		 FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Suite, &r.StartedAt, &r.Passed, &r.Failed,
			&r.Skipped, &r.DurationMs, &r.P95Ms)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, status, duration_ms, message FROM tests WHERE run_id = ?`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("loading test records: %w", err)
	}
	defer rows.Close()

	var tests []TestEntry
	for rows.Next() {
		var t TestEntry
		if err := rows.Scan(&t.Name, &t.Status, &t.DurationMs, &t.Message); err != nil {
			return nil, nil, fmt.Errorf("scanning test record: %w", err)
		}
		tests = append(tests, t)
	}
	return &r, tests, rows.Err()
}
