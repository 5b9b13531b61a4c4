package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"misp-hq/taxcheck/pkg/taxonomy"
)

// DefaultMaxFileSize is the largest taxonomy file accepted (10MB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Loader reads taxonomy definitions from disk.
//
// Load never returns an error: any failure is logged and turned into the empty
// Document sentinel, which the validator rejects as an empty or malformed file.
type Loader struct {
	maxFileSize int64
	logger      *slog.Logger
}

// New creates a loader that logs to logger. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		maxFileSize: DefaultMaxFileSize,
		logger:      logger,
	}
}

// WithMaxFileSize sets the maximum file size limit. Non-positive values keep
// the default.
func (l *Loader) WithMaxFileSize(size int64) *Loader {
	if size > 0 {
		l.maxFileSize = size
	}
	return l
}

// Load reads and decodes the file at path.
func (l *Loader) Load(path string) taxonomy.Document {
	l.logger.Info(fmt.Sprintf("Loading JSON file: %s", path))

	doc, err := l.read(path)
	if err != nil {
		l.logger.Error(fmt.Sprintf("Error loading JSON file: %v", err), "file", path)
		return taxonomy.Document{}
	}

	l.logger.Info(fmt.Sprintf("Successfully loaded JSON file: %s", path))
	return doc
}

func (l *Loader) read(path string) (taxonomy.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > l.maxFileSize {
		return nil, fmt.Errorf("file size %d exceeds maximum %d bytes", info.Size(), l.maxFileSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Decode(io.LimitReader(f, l.maxFileSize+1))
}

// Decode parses a taxonomy definition from r. The top-level value must be a
// JSON object encoded as UTF-8.
func Decode(r io.Reader) (taxonomy.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("file is not valid UTF-8")
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON: unexpected data after top-level value")
	}

	switch v := raw.(type) {
	case map[string]any:
		return taxonomy.Document(v), nil
	case nil:
		return taxonomy.Document{}, nil
	default:
		return nil, fmt.Errorf("top-level value must be an object, got %s", taxonomy.TypeName(v))
	}
}
