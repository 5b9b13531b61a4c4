package tracing

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	// SpanCheck covers loading and validating one taxonomy file.
	SpanCheck = "taxcheck.check"

	// SpanWatchRun covers one watch trigger and parents its SpanCheck spans.
	SpanWatchRun = "taxcheck.watch.run"
)

// Attribute keys. Custom keys use the "taxcheck.*" namespace.
const (
	AttrFile        = "taxcheck.file"
	AttrRunID       = "taxcheck.run_id"
	AttrValid       = "taxcheck.valid"
	AttrFailedCheck = "taxcheck.failed_check"
	AttrErrors      = "taxcheck.diagnostics.errors"
	AttrWarnings    = "taxcheck.diagnostics.warnings"
	AttrDuration    = "taxcheck.duration_ms"
	AttrTrigger     = "taxcheck.watch.trigger"
	AttrFiles       = "taxcheck.watch.files"
)

// CheckStartAttributes returns the attributes known when a check starts.
func CheckStartAttributes(file, runID string) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String(AttrFile, file),
		attribute.String(AttrRunID, runID),
	)
}

// SetCheckResult records the verdict of a check on span. An invalid file
// sets an error status naming the first failing check.
func SetCheckResult(span trace.Span, valid bool, failedCheck string, errors, warnings int, duration time.Duration) {
	span.SetAttributes(
		attribute.Bool(AttrValid, valid),
		attribute.Int(AttrErrors, errors),
		attribute.Int(AttrWarnings, warnings),
		attribute.Float64(AttrDuration, float64(duration)/float64(time.Millisecond)),
	)

	if valid {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.SetAttributes(attribute.String(AttrFailedCheck, failedCheck))
	span.SetStatus(codes.Error, fmt.Sprintf("check %s failed", failedCheck))
}

// AddEvent adds a named event to span.
//
//	AddEvent(span, "check.fields", attribute.Bool("passed", true))
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
