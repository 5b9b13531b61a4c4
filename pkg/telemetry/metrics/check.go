package metrics

import (
	"time"

	"misp-hq/taxcheck/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckMetrics tracks metrics related to check runs.
//
// Metrics:
//   - taxcheck_checks_total: Total check runs by verdict
//   - taxcheck_check_failures_total: Failed runs by first failing stage
//   - taxcheck_diagnostics_total: Reported diagnostics by severity
//   - taxcheck_check_duration_seconds: Check run duration
type CheckMetrics struct {
	// Total check runs
	checksTotal *prometheus.CounterVec

	// Failed runs by stage
	failuresTotal *prometheus.CounterVec

	// Diagnostics by severity
	diagnosticsTotal *prometheus.CounterVec

	// Check duration histogram
	duration prometheus.Histogram
}

// NewCheckMetrics creates and registers check metrics with the provided registry.
func NewCheckMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CheckMetrics {
	cm := &CheckMetrics{
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "checks_total",
				Help:      "Total number of taxonomy checks",
			},
			[]string{"verdict"},
		),

		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "check_failures_total",
				Help:      "Total number of failed checks by first failing stage",
			},
			[]string{"check"},
		),

		diagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "diagnostics_total",
				Help:      "Total number of reported diagnostics",
			},
			[]string{"severity"},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "check_duration_seconds",
				Help:      "Duration of taxonomy checks in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),
	}

	registry.MustRegister(
		cm.checksTotal,
		cm.failuresTotal,
		cm.diagnosticsTotal,
		cm.duration,
	)

	return cm
}

// RecordRun records the verdict and duration of a run.
func (cm *CheckMetrics) RecordRun(valid bool, failedCheck string, duration time.Duration) {
	if valid {
		cm.checksTotal.WithLabelValues(VerdictValid).Inc()
	} else {
		cm.checksTotal.WithLabelValues(VerdictInvalid).Inc()
		cm.failuresTotal.WithLabelValues(failedCheck).Inc()
	}
	cm.duration.Observe(duration.Seconds())
}

// RecordDiagnostics adds the diagnostic counts of a run.
func (cm *CheckMetrics) RecordDiagnostics(errors, warnings int) {
	if errors > 0 {
		cm.diagnosticsTotal.WithLabelValues("error").Add(float64(errors))
	}
	if warnings > 0 {
		cm.diagnosticsTotal.WithLabelValues("warning").Add(float64(warnings))
	}
}

// WatchMetrics tracks re-checks in watch mode.
//
// Metrics:
//   - taxcheck_watch_triggers_total: Re-checks by trigger source
type WatchMetrics struct {
	triggersTotal *prometheus.CounterVec
}

// NewWatchMetrics creates and registers watch metrics with the provided registry.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		triggersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "watch_triggers_total",
				Help:      "Total number of re-checks triggered in watch mode",
			},
			[]string{"source"},
		),
	}

	registry.MustRegister(wm.triggersTotal)
	return wm
}

// RecordTrigger records one re-check from source.
func (wm *WatchMetrics) RecordTrigger(source string) {
	wm.triggersTotal.WithLabelValues(source).Inc()
}
