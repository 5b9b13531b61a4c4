package metrics

import (
	"time"

	"misp-hq/taxcheck/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Verdict label values.
const (
	VerdictValid   = "valid"
	VerdictInvalid = "invalid"
)

// Collector owns every Prometheus metric exported by taxcheck. All metrics
// live on a private registry so that tests and multiple collectors never
// collide on the global one.
//
// A collector built from a disabled configuration accepts every call and
// records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Check run metrics
	checkMetrics *CheckMetrics

	// Watch trigger metrics
	watchMetrics *WatchMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a new registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "taxcheck",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.checkMetrics = NewCheckMetrics(cfg, registry)
	c.watchMetrics = NewWatchMetrics(cfg, registry)

	return c
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordCheck records the outcome of one check run.
//
// Parameters:
//   - valid: the verdict
//   - failedCheck: the first failing stage, empty when valid
//   - errors, warnings: diagnostic counts by severity
//   - duration: wall time of the run
//
// Example:
//
//	collector.RecordCheck(false, "matches", 2, 0, 350*time.Microsecond)
func (c *Collector) RecordCheck(valid bool, failedCheck string, errors, warnings int, duration time.Duration) {
	if !c.Enabled() {
		return
	}
	c.checkMetrics.RecordRun(valid, failedCheck, duration)
	c.checkMetrics.RecordDiagnostics(errors, warnings)
}

// RecordWatchTrigger records a re-check triggered in watch mode.
//
// Parameters:
//   - source: what triggered the run ("start", "change", "schedule")
func (c *Collector) RecordWatchTrigger(source string) {
	if !c.Enabled() {
		return
	}
	c.watchMetrics.RecordTrigger(source)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
