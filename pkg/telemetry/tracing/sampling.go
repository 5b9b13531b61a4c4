package tracing

import (
	"fmt"

	"misp-hq/taxcheck/pkg/config"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// createSampler creates a sampler for a strategy:
//   - always: every run is sampled
//   - never: no run is sampled
//   - ratio: a fraction of runs is sampled, decided by trace ID
//
// The sampler is wrapped in ParentBased, so the file spans of one watch
// trigger are either all sampled or all dropped.
func createSampler(strategy string, ratio float64) (sdktrace.Sampler, error) {
	var base sdktrace.Sampler

	switch strategy {
	case config.TracingSamplerAlways:
		base = sdktrace.AlwaysSample()
	case config.TracingSamplerNever:
		base = sdktrace.NeverSample()
	case config.TracingSamplerRatio:
		if ratio < 0.0 || ratio > 1.0 {
			return nil, fmt.Errorf("sample ratio must be between 0.0 and 1.0, got %f", ratio)
		}
		base = sdktrace.TraceIDRatioBased(ratio)
	default:
		return nil, fmt.Errorf("unknown sampler strategy: %s (valid: always, never, ratio)", strategy)
	}

	return sdktrace.ParentBased(base), nil
}
