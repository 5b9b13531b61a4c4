// Package tracing provides OpenTelemetry tracing for taxcheck.
//
// Every checked file gets a span named taxcheck.check carrying the file, the
// run ID and the verdict. In watch mode each trigger opens a
// taxcheck.watch.run span that parents the spans of the files it checks.
// Spans are exported over OTLP gRPC.
//
// # Sampling
//
// Three strategies are supported:
//   - always: sample every run
//   - never: sample nothing
//   - ratio: sample a fraction of runs (tracing.sample_ratio)
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, tracing.SpanCheck,
//	    tracing.CheckStartAttributes(path, runID))
//	defer span.End()
//
// When tracing.enabled is false, New returns a tracer whose spans are noops.
package tracing
