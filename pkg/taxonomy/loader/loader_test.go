package loader

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLoader(buf *bytes.Buffer) *Loader {
	return New(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	buf := &bytes.Buffer{}
	l := newTestLoader(buf)

	doc := l.Load(filepath.Join("testdata", "machinetag.json"))
	if doc.IsEmpty() {
		t.Fatalf("expected document, got empty sentinel; log:\n%s", buf.String())
	}
	if doc["namespace"] != "tlp" {
		t.Errorf("namespace = %v, want tlp", doc["namespace"])
	}

	preds, ok := doc.Predicates()
	if !ok || len(preds) != 2 {
		t.Errorf("Predicates() = %d items (ok=%v), want 2", len(preds), ok)
	}

	out := buf.String()
	if !strings.Contains(out, "Loading JSON file") {
		t.Error("expected load progress log line")
	}
	if !strings.Contains(out, "Successfully loaded JSON file") {
		t.Error("expected load success log line")
	}
}

func TestLoad_FailuresYieldEmptySentinel(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantLog string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.json") },
			wantLog: "failed to access file",
		},
		{
			name:    "directory",
			path:    func(t *testing.T) string { return t.TempDir() },
			wantLog: "is a directory",
		},
		{
			name:    "trailing comma",
			path:    func(t *testing.T) string { return writeFile(t, "bad.json", `{"namespace": "n",}`) },
			wantLog: "invalid JSON",
		},
		{
			name:    "top-level array",
			path:    func(t *testing.T) string { return writeFile(t, "array.json", `[1, 2]`) },
			wantLog: "top-level value must be an object",
		},
		{
			name:    "invalid utf-8",
			path:    func(t *testing.T) string { return writeFile(t, "latin1.json", "{\"namespace\": \"caf\xe9\"}") },
			wantLog: "not valid UTF-8",
		},
		{
			name:    "trailing data",
			path:    func(t *testing.T) string { return writeFile(t, "two.json", `{} {}`) },
			wantLog: "unexpected data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := newTestLoader(buf)

			doc := l.Load(tt.path(t))
			if !doc.IsEmpty() {
				t.Errorf("Load() = %v, want empty sentinel", doc)
			}
			if !strings.Contains(buf.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", buf.String(), tt.wantLog)
			}
			if !strings.Contains(buf.String(), "level=ERROR") {
				t.Error("expected failure to be logged at ERROR")
			}
		})
	}
}

func TestLoad_MaxFileSize(t *testing.T) {
	buf := &bytes.Buffer{}
	l := newTestLoader(buf).WithMaxFileSize(8)

	doc := l.Load(writeFile(t, "big.json", `{"namespace": "too-long"}`))
	if !doc.IsEmpty() {
		t.Error("expected oversize file to yield the empty sentinel")
	}
	if !strings.Contains(buf.String(), "exceeds maximum") {
		t.Errorf("expected size error in log, got %q", buf.String())
	}
}

func TestWithMaxFileSize_IgnoresNonPositive(t *testing.T) {
	l := New(nil).WithMaxFileSize(0)
	if l.maxFileSize != DefaultMaxFileSize {
		t.Errorf("maxFileSize = %d, want default %d", l.maxFileSize, DefaultMaxFileSize)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   bool
		wantEmpty bool
	}{
		{name: "object", input: `{"namespace": "n"}`},
		{name: "empty object", input: `{}`, wantEmpty: true},
		{name: "null", input: `null`, wantEmpty: true},
		{name: "string", input: `"taxonomy"`, wantErr: true},
		{name: "byte order mark", input: "\xef\xbb\xbf{}", wantErr: true},
		{name: "empty input", input: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && doc.IsEmpty() != tt.wantEmpty {
				t.Errorf("Decode() empty = %v, want %v", doc.IsEmpty(), tt.wantEmpty)
			}
		})
	}
}
