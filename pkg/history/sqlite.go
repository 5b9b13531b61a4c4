package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const backendSQLite = "sqlite"

// SQLiteConfig configures the SQLite store.
type SQLiteConfig struct {
	// Path is the database file. Its parent directory is created if needed.
	Path string

	// WALMode enables write-ahead logging.
	WALMode bool

	// BusyTimeout is how long to wait on a locked database.
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite store configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        ".taxcheck/history.db",
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the database at config.Path and applies
// the schema. A nil config uses DefaultSQLiteConfig.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Path == "" {
		return nil, NewStoreError(backendSQLite, "open", errors.New("db path cannot be empty"))
	}

	logger := slog.Default().With("component", "history.sqlite")

	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStoreError(backendSQLite, "create_dir", err)
		}
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, NewStoreError(backendSQLite, "open", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("SQLite history store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStoreError(backendSQLite, "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStoreError(backendSQLite, "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStoreError(backendSQLite, "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStoreError(backendSQLite, "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return NewStoreError(backendSQLite, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStoreError(backendSQLite, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Save inserts rec.
func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
	var failedCheck any
	if rec.FailedCheck != "" {
		failedCheck = rec.FailedCheck
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO runs (id, file, valid, failed_check, errors, warnings, checked_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.File, rec.Valid, failedCheck, rec.Errors, rec.Warnings,
		rec.CheckedAt.UnixNano(), rec.Duration.Nanoseconds(),
	)
	if err != nil {
		return NewStoreError(backendSQLite, "save", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return NewStoreError(backendSQLite, "save", err)
	}
	if n == 0 {
		return NewStoreError(backendSQLite, "save", fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID))
	}
	return nil
}

const selectRuns = `SELECT id, file, valid, failed_check, errors, warnings, checked_at, duration_ns FROM runs`

// List returns records matching q, newest first.
func (s *SQLiteStore) List(ctx context.Context, q Query) ([]*Record, error) {
	query := selectRuns
	var args []any
	if q.File != "" {
		query += ` WHERE file = ?`
		args = append(args, q.File)
	}
	query += ` ORDER BY checked_at DESC, rowid DESC`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStoreError(backendSQLite, "list", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, NewStoreError(backendSQLite, "scan", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStoreError(backendSQLite, "list", err)
	}
	return records, nil
}

// Latest returns the most recent record for file.
func (s *SQLiteStore) Latest(ctx context.Context, file string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		selectRuns+` WHERE file = ? ORDER BY checked_at DESC, rowid DESC LIMIT 1`, file)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, file)
	}
	if err != nil {
		return nil, NewStoreError(backendSQLite, "latest", err)
	}
	return rec, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStoreError(backendSQLite, "close", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec         Record
		failedCheck sql.NullString
		checkedAt   int64
		durationNs  int64
	)
	if err := sc.Scan(&rec.ID, &rec.File, &rec.Valid, &failedCheck,
		&rec.Errors, &rec.Warnings, &checkedAt, &durationNs); err != nil {
		return nil, err
	}
	rec.FailedCheck = failedCheck.String
	rec.CheckedAt = time.Unix(0, checkedAt).UTC()
	rec.Duration = time.Duration(durationNs)
	return &rec, nil
}
