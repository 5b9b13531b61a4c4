package errors

import (
	"fmt"
	"strings"
)

// Check identifies the pipeline stage that produced a diagnostic.
type Check string

const (
	CheckLoad       Check = "load"       // File could not be read or parsed
	CheckDocument   Check = "document"   // Document is empty or malformed
	CheckFields     Check = "fields"     // Top-level key set violation
	CheckPredicates Check = "predicates" // Faulty predicate record
	CheckValues     Check = "values"     // Faulty value group or entry
	CheckMatches    Check = "matches"    // Value group references an undeclared predicate
)

// Severity is the level a diagnostic is reported at.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single violation or advisory found while checking a taxonomy.
type Diagnostic struct {
	Check      Check    `json:"check"`
	Severity   Severity `json:"severity"`
	Path       string   `json:"path,omitempty"` // JSON-path-like location, e.g. "predicates[2]"
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", d.Check, d.Message))
	if d.Path != "" {
		sb.WriteString(fmt.Sprintf(" (at %s)", d.Path))
	}
	if d.Suggestion != "" {
		sb.WriteString(fmt.Sprintf(": %s", d.Suggestion))
	}
	return sb.String()
}

// DiagnosticList accumulates diagnostics so that every violation of a pass is
// reported instead of only the first one.
type DiagnosticList struct {
	Diagnostics []*Diagnostic
}

// NewDiagnosticList creates an empty list.
func NewDiagnosticList() *DiagnosticList {
	return &DiagnosticList{
		Diagnostics: make([]*Diagnostic, 0),
	}
}

// Add appends a diagnostic to the list.
func (dl *DiagnosticList) Add(d *Diagnostic) {
	dl.Diagnostics = append(dl.Diagnostics, d)
}

// AddError creates and adds an error-level diagnostic.
func (dl *DiagnosticList) AddError(check Check, path, message string) *Diagnostic {
	d := &Diagnostic{
		Check:    check,
		Severity: SeverityError,
		Path:     path,
		Message:  message,
	}
	dl.Add(d)
	return d
}

// AddErrorWithSuggestion creates and adds an error-level diagnostic with a suggested fix.
func (dl *DiagnosticList) AddErrorWithSuggestion(check Check, path, message, suggestion string) *Diagnostic {
	d := dl.AddError(check, path, message)
	d.Suggestion = suggestion
	return d
}

// AddWarning creates and adds a warning-level diagnostic.
func (dl *DiagnosticList) AddWarning(check Check, path, message string) *Diagnostic {
	d := &Diagnostic{
		Check:    check,
		Severity: SeverityWarning,
		Path:     path,
		Message:  message,
	}
	dl.Add(d)
	return d
}

// Merge appends every diagnostic of other.
func (dl *DiagnosticList) Merge(other *DiagnosticList) {
	if other == nil {
		return
	}
	dl.Diagnostics = append(dl.Diagnostics, other.Diagnostics...)
}

// Count returns the number of diagnostics in the list.
func (dl *DiagnosticList) Count() int {
	return len(dl.Diagnostics)
}

// HasErrors returns true if at least one error-level diagnostic is present.
func (dl *DiagnosticList) HasErrors() bool {
	for _, d := range dl.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-level diagnostics.
func (dl *DiagnosticList) Errors() []*Diagnostic {
	return dl.bySeverity(SeverityError)
}

// Warnings returns the warning-level diagnostics.
func (dl *DiagnosticList) Warnings() []*Diagnostic {
	return dl.bySeverity(SeverityWarning)
}

func (dl *DiagnosticList) bySeverity(sev Severity) []*Diagnostic {
	var result []*Diagnostic
	for _, d := range dl.Diagnostics {
		if d.Severity == sev {
			result = append(result, d)
		}
	}
	return result
}

// ByCheck returns all diagnostics produced by the given check.
func (dl *DiagnosticList) ByCheck(check Check) []*Diagnostic {
	var result []*Diagnostic
	for _, d := range dl.Diagnostics {
		if d.Check == check {
			result = append(result, d)
		}
	}
	return result
}

// Error implements the error interface.
func (dl *DiagnosticList) Error() string {
	errs := dl.Errors()
	if len(errs) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s):\n", len(errs)))
	for _, d := range errs {
		sb.WriteString("  ")
		sb.WriteString(d.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToError returns nil when the list has no error-level diagnostics, otherwise
// the list itself. Warnings alone never produce an error.
func (dl *DiagnosticList) ToError() error {
	if !dl.HasErrors() {
		return nil
	}
	return dl
}
