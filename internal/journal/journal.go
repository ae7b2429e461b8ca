package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/apodwall/internal/model"
)

// dbFileName is the journal database file inside the data directory.
const dbFileName = "apodwall.db"

// Journal provides SQLite-based storage for run records: one row per
// invocation with its outcome, the image that was fetched, and timing.
//
// Design decision: We keep run metadata only, never page markup or image
// bytes. The image file on disk is always the latest one; the journal is
// the answer to "what happened on which day", not an image cache.
type Journal struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Journal behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended: a run writes
	// while a concurrent history command may read.
	EnableWAL bool
}

// DefaultOptions returns the default journal options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ErrNotFound is returned when the journal database does not exist and
// Options.CreateIfNotExists is false.
var ErrNotFound = errors.New("run journal not found")

// Open opens or creates the run journal in the given directory.
func Open(dbDir string, opts Options) (*Journal, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check journal path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw refuses to create a
	// new file, mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	j := &Journal{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := j.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// createTables creates the journal schema if it doesn't exist.
func (j *Journal) createTables() error {
	schema := `
	-- One row per invocation, successful or not
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		page_url TEXT NOT NULL,
		image_url TEXT,
		title TEXT,
		image_path TEXT,
		bytes_written INTEGER DEFAULT 0,
		exif_summary TEXT,
		status TEXT NOT NULL,
		error_kind TEXT,
		error TEXT,
		duration_ms INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
	`

	_, err := j.db.ExecContext(context.Background(), schema)
	return err
}

// Record is one stored run.
type Record struct {
	ID           int64
	StartedAt    time.Time
	PageURL      string
	ImageURL     string
	Title        string
	ImagePath    string
	BytesWritten int64
	EXIFSummary  string
	Status       string
	ErrorKind    string
	Error        string
	Duration     time.Duration
}

// NewRecord builds a Record from a finished pipeline run.
func NewRecord(report *model.RunReport) *Record {
	return &Record{
		StartedAt:    report.StartedAt,
		PageURL:      report.Picture.PageURL,
		ImageURL:     report.Picture.ImageURL,
		Title:        report.Picture.Title,
		ImagePath:    report.ImagePath,
		BytesWritten: report.BytesWritten,
		EXIFSummary:  report.Metadata.Summary(),
		Status:       string(report.Status),
		ErrorKind:    string(report.ErrKind),
		Error:        report.Err,
		Duration:     report.Duration(),
	}
}

// Insert appends a run record and returns its ID.
func (j *Journal) Insert(ctx context.Context, record *Record) (int64, error) {
	query := `
	INSERT INTO runs (started_at, page_url, image_url, title, image_path, bytes_written, exif_summary, status, error_kind, error, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := j.db.ExecContext(ctx, query,
		record.StartedAt.UTC().Format(timestampFormats[0]),
		record.PageURL,
		record.ImageURL,
		record.Title,
		record.ImagePath,
		record.BytesWritten,
		record.EXIFSummary,
		record.Status,
		record.ErrorKind,
		record.Error,
		record.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run record: %w", err)
	}

	return result.LastInsertId()
}

// Latest returns the most recent run, or nil when the journal is empty.
func (j *Journal) Latest(ctx context.Context) (*Record, error) {
	records, err := j.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// List returns up to limit runs, most recent first. A non-positive
// limit returns all runs.
func (j *Journal) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
	SELECT id, started_at, page_url, image_url, title, image_path, bytes_written, exif_summary, status, error_kind, error, duration_ms
	FROM runs
	ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var startedAt string
		var durationMS int64

		err := rows.Scan(
			&r.ID,
			&startedAt,
			&r.PageURL,
			&r.ImageURL,
			&r.Title,
			&r.ImagePath,
			&r.BytesWritten,
			&r.EXIFSummary,
			&r.Status,
			&r.ErrorKind,
			&r.Error,
			&durationMS,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}

		r.StartedAt = parseTimestamp(startedAt)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, r)
	}

	return records, rows.Err()
}

// Count returns the total number of stored runs.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var count int
	if err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different forms depending on
// how the value was written. Returns zero time when nothing matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
