package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/subfuzz/subfuzz/internal/model"
)

// dbFileName is the SQLite file created inside the data directory.
const dbFileName = "subfuzz.db"

// ErrDatabaseNotFound is returned by Open when the database does not exist
// and creation is disabled.
var ErrDatabaseNotFound = errors.New("run history database not found")

// RunDB stores run history in SQLite. It manages connection pooling and
// provides save/list operations for runs and their jobs.
type RunDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// RunRecord is one row of the run history listing.
type RunRecord struct {
	// ID is the database identifier of the run.
	ID int64

	// StartedAt is when the run began.
	StartedAt time.Time

	// RootDir is the run's output directory.
	RootDir string

	// Wordlist is the shared wordlist path used by the run.
	Wordlist string

	// Strategy is the recorded progress strategy name.
	Strategy string

	// Targets is the number of jobs in the run.
	Targets int

	// Failed is the number of jobs that exited non-zero.
	Failed int
}

// Open opens or creates a RunDB in dbDir.
// If CreateIfNotExists is false and no database exists, an error is
// returned instead of creating one.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer; keeping one connection avoids
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		root_dir TEXT NOT NULL,
		wordlist TEXT NOT NULL,
		strategy TEXT NOT NULL,
		interrupted INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		ordinal INTEGER NOT NULL,
		target TEXT NOT NULL,
		safe_name TEXT NOT NULL,
		strategy TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		log_path TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_run_id ON jobs(run_id);
	`
	_, err := rdb.db.Exec(schema)
	return err
}

// SaveRun persists a run summary and all its jobs in one transaction.
// It returns the new run's database ID.
func (rdb *RunDB) SaveRun(ctx context.Context, summary *model.RunSummary) (int64, error) {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, root_dir, wordlist, strategy, interrupted) VALUES (?, ?, ?, ?, ?)`,
		summary.StartedAt.UTC(), summary.RootDir, summary.Wordlist, summary.Strategy.String(), boolToInt(summary.Interrupted),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, job := range summary.Jobs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO jobs (run_id, ordinal, target, safe_name, strategy, exit_code, log_path, duration_ms, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, job.Ordinal, job.Target, job.SafeName, job.Strategy.String(),
			job.ExitCode, job.LogPath, job.Duration.Milliseconds(), job.Error,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert job %d: %w", job.Ordinal, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first, with per-run job
// and failure counts.
func (rdb *RunDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := rdb.db.QueryContext(ctx, `
		SELECT r.id, r.started_at, r.root_dir, r.wordlist, r.strategy,
		       COUNT(j.id),
		       COALESCE(SUM(CASE WHEN j.exit_code != 0 THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN jobs j ON j.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.StartedAt, &rec.RootDir, &rec.Wordlist, &rec.Strategy, &rec.Targets, &rec.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return records, nil
}

// JobsForRun returns the stored jobs of one run in ordinal order.
func (rdb *RunDB) JobsForRun(ctx context.Context, runID int64) ([]model.JobResult, error) {
	rows, err := rdb.db.QueryContext(ctx, `
		SELECT ordinal, target, safe_name, strategy, exit_code, log_path, duration_ms, error
		FROM jobs WHERE run_id = ? ORDER BY ordinal`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.JobResult
	for rows.Next() {
		var job model.JobResult
		var strategy string
		var durationMS int64
		if err := rows.Scan(&job.Ordinal, &job.Target, &job.SafeName, &strategy, &job.ExitCode, &job.LogPath, &durationMS, &job.Error); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		if strategy == model.StrategyExactStreaming.String() {
			job.Strategy = model.StrategyExactStreaming
		}
		job.Duration = time.Duration(durationMS) * time.Millisecond
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// boolToInt converts a bool for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
