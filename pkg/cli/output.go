package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
)

// ParseFormat parses a --format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", NewConfigError("format", fmt.Sprintf("unknown output format %q (must be text or json)", s))
	}
}

// JSONFormatter formats output as JSON. Text output is written line by line
// with WriteVerdict.
type JSONFormatter struct {
	Indent bool
}

// Format converts data to JSON format.
func (f *JSONFormatter) Format(data any) ([]byte, error) {
	if f.Indent {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

var (
	validColor   = color.New(color.FgGreen, color.Bold)
	invalidColor = color.New(color.FgRed, color.Bold)
)

// VerdictLine returns the human verdict for one document.
func VerdictLine(valid bool) string {
	if valid {
		return "The input file is a valid configuration file"
	}
	return "The input file is NOT a valid configuration file"
}

// WriteVerdict writes the verdict line for file, coloured when the output
// supports it.
func WriteVerdict(w io.Writer, file string, valid bool) error {
	c := invalidColor
	if valid {
		c = validColor
	}
	if file == "" {
		_, err := c.Fprintln(w, VerdictLine(valid))
		return err
	}
	_, err := c.Fprintf(w, "%s: %s\n", file, VerdictLine(valid))
	return err
}
