// Package errors provides the diagnostic types produced while checking a
// taxonomy definition.
//
// A Diagnostic names the check that produced it, its severity, a JSON-path-like
// location and an optional suggestion. Diagnostics are accumulated in a
// DiagnosticList so that every violation of a check is reported in one pass.
//
// # Checks
//
// CheckLoad: the file could not be read or decoded
//
// CheckDocument: the document is empty (or was replaced by the empty sentinel)
//
// CheckFields: unknown or missing top-level fields
//
// CheckPredicates: faulty predicate records
//
// CheckValues: faulty value groups and entries
//
// CheckMatches: value groups that reference an undeclared predicate
//
// # Basic Usage
//
//	list := errors.NewDiagnosticList()
//	list.AddErrorWithSuggestion(errors.CheckFields, "", "field 'namspace' is not allowed",
//	    errors.SuggestField("namspace", []string{"namespace", "description"}))
//	list.AddWarning(errors.CheckValues, "values", "a taxonomy with no values is allowed")
//
//	if err := list.ToError(); err != nil {
//	    fmt.Println(err)
//	}
//
// Warnings never turn a list into an error.
package errors
