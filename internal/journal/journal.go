// Package journal persists contract verification runs to SQLite so
// that flaky infrastructure behavior can be inspected after the fact.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"proviso/internal/contract"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for verification run journals.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite journal at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// Open is idempotent - safe to call on an existing journal.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	// SQLite supports one writer at a time; a single connection
	// avoids SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the journal.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun implements contract.Recorder.
func (s *Store) BeginRun(ctx context.Context, runID, title string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, title, started_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, runID, title, startedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// RecordClause implements contract.Recorder.
func (s *Store) RecordClause(ctx context.Context, runID string, result *contract.ClauseResult) error {
	valid := 0
	if result.Valid() {
		valid = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clause_results
		(id, run_id, title, state, attempts, valid, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.NewString(),
		runID,
		result.Clause.Title(),
		string(result.State),
		result.Attempts,
		valid,
		result.Verification.Comment(),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record clause: %w", err)
	}
	return nil
}

// FinishRun implements contract.Recorder.
func (s *Store) FinishRun(ctx context.Context, runID string, valid bool, finishedAt time.Time) error {
	validInt := 0
	if valid {
		validInt = 1
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE runs SET finished_at = ?, valid = ? WHERE id = ?
	`, finishedAt.UTC().Format(time.RFC3339Nano), validInt, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RunSummary is one journaled run row.
type RunSummary struct {
	ID        string
	Title     string
	StartedAt string
	Valid     sql.NullBool
}

// ListRuns returns journaled runs, most recent first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, started_at, valid
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(&run.ID, &run.Title, &run.StartedAt, &run.Valid); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
