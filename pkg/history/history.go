package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"misp-hq/taxcheck/pkg/config"
	"misp-hq/taxcheck/pkg/taxonomy/validator"
)

// Record is one persisted check run.
type Record struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// File is the path of the checked taxonomy file.
	File string `json:"file"`

	// Valid is the verdict of the run.
	Valid bool `json:"valid"`

	// FailedCheck is the first stage that failed, empty when Valid.
	FailedCheck string `json:"failed_check,omitempty"`

	// Errors and Warnings count the diagnostics of the run.
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`

	// CheckedAt is when the run finished.
	CheckedAt time.Time `json:"checked_at"`

	// Duration is the wall time of the validation pass.
	Duration time.Duration `json:"duration"`
}

// NewRecord builds a Record from a validation result.
func NewRecord(file string, result *validator.Result) *Record {
	rec := &Record{
		ID:          uuid.New().String(),
		File:        file,
		Valid:       result.Valid,
		FailedCheck: string(result.FailedCheck),
		CheckedAt:   time.Now().UTC(),
		Duration:    result.Duration,
	}
	if result.Diagnostics != nil {
		rec.Errors = len(result.Diagnostics.Errors())
		rec.Warnings = len(result.Diagnostics.Warnings())
	}
	return rec
}

// Query filters records returned by List.
type Query struct {
	// File restricts results to one file. Empty matches every file.
	File string

	// Limit caps the number of results. Zero or negative means no limit.
	Limit int
}

// Store persists check records.
type Store interface {
	// Save persists a record. Records with an existing ID are rejected.
	Save(ctx context.Context, rec *Record) error

	// List returns records matching q, newest first.
	List(ctx context.Context, q Query) ([]*Record, error)

	// Latest returns the most recent record for file, or ErrNotFound.
	Latest(ctx context.Context, file string) (*Record, error)

	// Close releases the store's resources.
	Close() error
}

// Open creates the store selected by cfg.Backend.
func Open(cfg config.HistoryConfig) (Store, error) {
	switch cfg.Backend {
	case config.HistoryBackendMemory:
		return NewMemoryStore(), nil
	case config.HistoryBackendSQLite, "":
		return NewSQLiteStore(&SQLiteConfig{
			Path:        cfg.Path,
			BusyTimeout: cfg.BusyTimeout,
			WALMode:     true,
		})
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}
