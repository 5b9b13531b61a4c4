package validator

import (
	"fmt"
	"log/slog"
	"strings"

	taxErrors "misp-hq/taxcheck/pkg/taxonomy/errors"
)

// reporter collects the diagnostics of one validation run and mirrors them to
// the logger unless the run is silent. Diagnostics are a side channel: nothing
// here influences a verdict.
type reporter struct {
	list   *taxErrors.DiagnosticList
	logger *slog.Logger
	silent bool
}

func newReporter(logger *slog.Logger, silent bool) *reporter {
	return &reporter{
		list:   taxErrors.NewDiagnosticList(),
		logger: logger,
		silent: silent,
	}
}

func (r *reporter) errorf(check taxErrors.Check, path, format string, args ...any) *taxErrors.Diagnostic {
	d := r.list.AddError(check, path, fmt.Sprintf(format, args...))
	r.emit(d)
	return d
}

func (r *reporter) errorWithSuggestion(check taxErrors.Check, path, suggestion, format string, args ...any) *taxErrors.Diagnostic {
	d := r.list.AddErrorWithSuggestion(check, path, fmt.Sprintf(format, args...), suggestion)
	r.emit(d)
	return d
}

func (r *reporter) warnf(check taxErrors.Check, path, format string, args ...any) *taxErrors.Diagnostic {
	d := r.list.AddWarning(check, path, fmt.Sprintf(format, args...))
	r.emit(d)
	return d
}

func (r *reporter) emit(d *taxErrors.Diagnostic) {
	if r.silent {
		return
	}

	attrs := []any{"check", string(d.Check)}
	if d.Path != "" {
		attrs = append(attrs, "path", d.Path)
	}
	if d.Suggestion != "" {
		attrs = append(attrs, "suggestion", d.Suggestion)
	}

	switch d.Severity {
	case taxErrors.SeverityWarning:
		r.logger.Warn(d.Message, attrs...)
	default:
		r.logger.Error(d.Message, attrs...)
	}
}

// quoteFields renders field names as 'a', 'b' for diagnostics.
func quoteFields(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = "'" + f + "'"
	}
	return strings.Join(quoted, ", ")
}

// difference returns the members of keys that are not in allowed, preserving
// the order of keys.
func difference(keys []string, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}

	var out []string
	for _, k := range keys {
		if _, ok := set[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// recordName returns the printable name of a record's "value" field, or
// UNKNOWN when it has none.
func recordName(rec map[string]any, field string) string {
	v, ok := rec[field]
	if !ok {
		return "UNKNOWN"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
