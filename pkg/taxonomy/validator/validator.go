package validator

import (
	"log/slog"
	"time"

	"misp-hq/taxcheck/pkg/taxonomy"
	taxErrors "misp-hq/taxcheck/pkg/taxonomy/errors"
)

// EmptyDocumentMessage is reported when the loader produced the empty sentinel.
const EmptyDocumentMessage = "File is empty, check for trailing commas."

// Result is the outcome of one validation pass.
type Result struct {
	// Valid is true iff every stage passed.
	Valid bool

	// FailedCheck is the first stage that failed, empty when Valid.
	FailedCheck taxErrors.Check

	// Checks lists the stages that ran, in order.
	Checks []taxErrors.Check

	// Diagnostics holds every error and warning reported during the pass.
	Diagnostics *taxErrors.DiagnosticList

	// Duration is the wall time of the pass.
	Duration time.Duration
}

type stage struct {
	check taxErrors.Check
	run   func(doc taxonomy.Document, rep *reporter) bool
}

// stages is evaluated left to right and stops at the first failure. Later
// stages assume the structure established by earlier ones.
var stages = []stage{
	{taxErrors.CheckFields, func(doc taxonomy.Document, rep *reporter) bool {
		return checkFields(doc.Keys(), rep)
	}},
	{taxErrors.CheckPredicates, func(doc taxonomy.Document, rep *reporter) bool {
		return checkPredicates(doc[taxonomy.FieldPredicates], rep)
	}},
	{taxErrors.CheckValues, func(doc taxonomy.Document, rep *reporter) bool {
		return checkValues(doc[taxonomy.FieldValues], rep)
	}},
	{taxErrors.CheckMatches, checkMatches},
}

// Validator checks taxonomy documents against the fixed taxonomy schema.
// It holds no state between passes and is safe for concurrent use.
type Validator struct {
	logger *slog.Logger
	silent bool
}

// NewValidator creates a validator that mirrors diagnostics to logger.
// A nil logger uses slog.Default().
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger}
}

// WithSilent disables diagnostic logging. Diagnostics are still collected in
// the Result and the verdict is unchanged.
func (v *Validator) WithSilent(silent bool) *Validator {
	v.silent = silent
	return v
}

// Validate runs the pipeline on doc. An empty document fails immediately.
func (v *Validator) Validate(doc taxonomy.Document) *Result {
	start := time.Now()
	rep := newReporter(v.logger, v.silent)
	result := &Result{Valid: true}

	if doc.IsEmpty() {
		rep.errorf(taxErrors.CheckDocument, "", EmptyDocumentMessage)
		result.Valid = false
		result.FailedCheck = taxErrors.CheckDocument
	} else {
		for _, s := range stages {
			result.Checks = append(result.Checks, s.check)
			if !s.run(doc, rep) {
				result.Valid = false
				result.FailedCheck = s.check
				break
			}
		}
	}

	result.Diagnostics = rep.list
	result.Duration = time.Since(start)
	return result
}

// Check runs the pipeline and returns only the verdict.
func (v *Validator) Check(doc taxonomy.Document) bool {
	return v.Validate(doc).Valid
}

// CheckFields runs the top-level field-set check on keys.
func (v *Validator) CheckFields(keys []string) bool {
	return checkFields(keys, newReporter(v.logger, v.silent))
}

// CheckPredicates runs the predicate check on a raw "predicates" value.
func (v *Validator) CheckPredicates(raw any) bool {
	return checkPredicates(raw, newReporter(v.logger, v.silent))
}

// CheckValues runs the value-group check on a raw "values" value.
func (v *Validator) CheckValues(raw any) bool {
	return checkValues(raw, newReporter(v.logger, v.silent))
}

// CheckMatches runs the cross-reference check on doc.
func (v *Validator) CheckMatches(doc taxonomy.Document) bool {
	return checkMatches(doc, newReporter(v.logger, v.silent))
}
