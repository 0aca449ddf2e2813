package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/migtools/siteaudit/internal/model"
)

// HistoryDB provides SQLite-based storage for run history.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
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

// Open opens or creates a HistoryDB in the specified directory.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "siteaudit.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rwc allows creation,
	// mode=rw requires the file to exist.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a single connection avoids
	// SQLITE_BUSY churn for this write-light workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool TEXT NOT NULL,
		target TEXT NOT NULL,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		pages_processed INTEGER NOT NULL,
		urls_discovered INTEGER NOT NULL,
		error_count INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target);
	`
	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun records one completed run.
func (hdb *HistoryDB) SaveRun(ctx context.Context, run *model.RunRecord) error {
	const query = `
	INSERT INTO runs (tool, target, started_at, duration_ms, pages_processed, urls_discovered, error_count)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := hdb.db.ExecContext(ctx, query,
		run.Tool,
		run.Target,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Duration.Milliseconds(),
		run.PagesProcessed,
		run.URLsDiscovered,
		run.ErrorCount,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	const query = `
	SELECT id, tool, target, started_at, duration_ms, pages_processed, urls_discovered, error_count
	FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`

	rows, err := hdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*model.RunRecord, 0, limit)
	for rows.Next() {
		var run model.RunRecord
		var startedAt string
		var durationMs int64

		if err := rows.Scan(&run.ID, &run.Tool, &run.Target, &startedAt,
			&durationMs, &run.PagesProcessed, &run.URLsDiscovered, &run.ErrorCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp %q: %w", startedAt, err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond

		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
