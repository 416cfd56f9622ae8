package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jsondict/jsondict/internal/model"
)

// Store provides SQLite-based storage for dictionary snapshots.
// Snapshots are keyed by the source document path, so one database
// can track the generation history of many JSON files.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a snapshot store at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, "jsondict.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer, so a single connection avoids
	// lock contention between concurrent statements.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := store.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- Snapshots store one generated dictionary per row as JSON,
	-- plus denormalized counts for cheap history listings.
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		generated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		section_count INTEGER NOT NULL DEFAULT 0,
		field_count INTEGER NOT NULL DEFAULT 0,
		dictionary_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_source ON snapshots(source);
	CREATE INDEX IF NOT EXISTS idx_snapshots_generated ON snapshots(generated_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Snapshot represents a stored dictionary generation.
type Snapshot struct {
	// ID is the unique identifier of the snapshot in the database.
	ID int64

	// Source is the path of the JSON document the dictionary was built from.
	Source string

	// GeneratedAt is when the dictionary was generated.
	GeneratedAt time.Time

	// SectionCount is the number of sections in the dictionary.
	SectionCount int

	// FieldCount is the total number of rows across all sections.
	FieldCount int

	// Dictionary is the full stored dictionary.
	Dictionary *model.Dictionary
}

// SnapshotMetadata contains summary information about a stored snapshot.
// This is used for displaying generation history without loading the
// full dictionary.
type SnapshotMetadata struct {
	// ID is the unique identifier of the snapshot in the database.
	ID int64

	// Source is the path of the JSON document the dictionary was built from.
	Source string

	// GeneratedAt is when the dictionary was generated.
	GeneratedAt time.Time

	// SectionCount is the number of sections in the dictionary.
	SectionCount int

	// FieldCount is the total number of rows across all sections.
	FieldCount int
}

// SaveSnapshot stores a dictionary as a new snapshot and returns its ID.
// Every call appends a new row, so repeated generations of the same
// source build up a timeline.
func (s *Store) SaveSnapshot(ctx context.Context, dict *model.Dictionary) (int64, error) {
	dictJSON, err := json.Marshal(dict)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize dictionary: %w", err)
	}

	generatedAt := dict.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	query := `
	INSERT INTO snapshots (source, generated_at, section_count, field_count, dictionary_json)
	VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		dict.SourcePath,
		generatedAt.UTC().Format("2006-01-02 15:04:05"),
		dict.SectionCount(),
		dict.FieldCount(),
		string(dictJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return result.LastInsertId()
}

// LatestTwo retrieves the two most recent snapshots for a source,
// newest first. The previous snapshot is nil when only one generation
// exists, and both are nil when the source was never stored.
func (s *Store) LatestTwo(ctx context.Context, source string) (current, previous *Snapshot, err error) {
	query := `
	SELECT id, source, generated_at, section_count, field_count, dictionary_json
	FROM snapshots
	WHERE source = ?
	ORDER BY id DESC
	LIMIT 2
	`

	rows, err := s.db.QueryContext(ctx, query, source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var found []*Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, nil, err
		}
		found = append(found, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	if len(found) > 0 {
		current = found[0]
	}
	if len(found) > 1 {
		previous = found[1]
	}
	return current, previous, nil
}

// GetByID retrieves a snapshot by its database ID.
// Returns nil when no snapshot carries the ID.
func (s *Store) GetByID(ctx context.Context, id int64) (*Snapshot, error) {
	query := `
	SELECT id, source, generated_at, section_count, field_count, dictionary_json
	FROM snapshots
	WHERE id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// History retrieves snapshot metadata for a source, newest first.
// This is more efficient than loading full snapshots when only the
// timeline is needed.
func (s *Store) History(ctx context.Context, source string) ([]SnapshotMetadata, error) {
	query := `
	SELECT id, source, generated_at, section_count, field_count
	FROM snapshots
	WHERE source = ?
	ORDER BY id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, source)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var results []SnapshotMetadata
	for rows.Next() {
		var meta SnapshotMetadata
		var timestamp string

		if err := rows.Scan(&meta.ID, &meta.Source, &timestamp, &meta.SectionCount, &meta.FieldCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot metadata: %w", err)
		}

		meta.GeneratedAt = parseTimestamp(timestamp)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// ListSources returns the distinct source paths with stored snapshots.
func (s *Store) ListSources(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT source FROM snapshots
	ORDER BY source
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows so snapshot scanning is
// shared between single-row and multi-row queries.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSnapshot reads one snapshot row, including the stored dictionary.
func scanSnapshot(row rowScanner) (*Snapshot, error) {
	var snap Snapshot
	var timestamp string
	var dictJSON string

	err := row.Scan(
		&snap.ID,
		&snap.Source,
		&timestamp,
		&snap.SectionCount,
		&snap.FieldCount,
		&dictJSON,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	snap.GeneratedAt = parseTimestamp(timestamp)

	var dict model.Dictionary
	if err := json.Unmarshal([]byte(dictJSON), &dict); err != nil {
		return nil, fmt.Errorf("failed to parse stored dictionary: %w", err)
	}
	snap.Dictionary = &dict

	return &snap, nil
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

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
