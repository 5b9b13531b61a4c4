// Package metrics provides Prometheus metrics for taxcheck.
//
// # Metrics
//
//   - taxcheck_checks_total{verdict}: check runs by verdict ("valid", "invalid")
//   - taxcheck_check_failures_total{check}: failed runs by first failing stage
//   - taxcheck_diagnostics_total{severity}: reported diagnostics
//   - taxcheck_check_duration_seconds: check run duration
//   - taxcheck_watch_triggers_total{source}: re-checks in watch mode
//
// The "taxcheck" prefix is the configured namespace.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	collector.RecordCheck(result.Valid, string(result.FailedCheck), errs, warns, result.Duration)
//
//	srv, err := collector.Listen()
//	go srv.Serve(ctx)
package metrics
