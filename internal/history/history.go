package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/onepack/onepack/internal/pipeline"
)

// Store persists pipeline runs to SQLite so past builds can be inspected
// with `onepack history`.
type Store struct {
	conn *sql.DB
	path string
}

// DefaultPath returns ~/.onepack/onepack.db, creating the directory if needed.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	dir := filepath.Join(home, ".onepack")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}
	return filepath.Join(dir, "onepack.db"), nil
}

// Open opens or creates the database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &Store{conn: conn, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
    version    INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at  TEXT NOT NULL,
    status      TEXT NOT NULL CHECK(status IN ('success','failure')),
    artifact    TEXT,
    duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

CREATE TABLE IF NOT EXISTS stage_results (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id      INTEGER NOT NULL REFERENCES runs(id),
    ordinal     INTEGER NOT NULL,
    stage       TEXT NOT NULL,
    outcome     TEXT NOT NULL CHECK(outcome IN ('not_run','succeeded','failed')),
    exit_code   INTEGER,
    fatal       BOOLEAN NOT NULL,
    detail      TEXT,
    duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stage_run ON stage_results(run_id, ordinal);
`

// Migrate applies the database schema.
func (s *Store) Migrate() error {
	var count int
	err := s.conn.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = 1").Scan(&count)
	if err == nil && count > 0 {
		return nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schemaV1); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := tx.Exec("INSERT OR IGNORE INTO schema_version (version) VALUES (1)"); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// Record inserts a completed run and its stage results.
func (s *Store) Record(r *pipeline.Run) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin record: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (started_at, status, artifact, duration_ms) VALUES (?, ?, ?, ?)`,
		r.StartedAt.UTC().Format(time.RFC3339), string(r.Status), r.ArtifactPath, r.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, st := range r.Stages {
		if _, err := tx.Exec(
			`INSERT INTO stage_results (run_id, ordinal, stage, outcome, exit_code, fatal, detail, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, st.Ordinal, st.Name, string(st.Outcome), st.ExitCode, st.Fatal, st.Detail, st.Duration.Milliseconds(),
		); err != nil {
			return fmt.Errorf("insert stage result %q: %w", st.Name, err)
		}
	}
	return tx.Commit()
}

// RunRow is one row of the run-history listing.
type RunRow struct {
	ID         int
	StartedAt  string
	Status     string
	Artifact   string
	DurationMs int
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.Query(
		`SELECT id, started_at, status, COALESCE(artifact, ''), duration_ms
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Status, &r.Artifact, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StageRow is one stage result within a recorded run.
type StageRow struct {
	Ordinal    int
	Stage      string
	Outcome    string
	ExitCode   int
	Fatal      bool
	Detail     string
	DurationMs int
}

// ListStages returns the stage results for a run in execution order.
func (s *Store) ListStages(runID int) ([]StageRow, error) {
	rows, err := s.conn.Query(
		`SELECT ordinal, stage, outcome, exit_code, fatal, COALESCE(detail, ''), duration_ms
		 FROM stage_results WHERE run_id = ? ORDER BY ordinal`, runID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var out []StageRow
	for rows.Next() {
		var r StageRow
		if err := rows.Scan(&r.Ordinal, &r.Stage, &r.Outcome, &r.ExitCode, &r.Fatal, &r.Detail, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
