// Package telemetry groups the observability packages of taxcheck.
//
// # Components
//
//   - logging: slog-based logging with a console format matching the
//     classic "LEVEL - message" checker output
//   - metrics: Prometheus metrics for check runs and watch triggers
//   - health: liveness and readiness endpoints for the watch daemon
//   - tracing: OpenTelemetry spans for every checked file, exported over OTLP
//
// The metrics server mounts the health endpoints next to /metrics:
//
//	srv, err := collector.Listen()
//	if err != nil {
//		return err
//	}
//	health.Mount(srv.Mux(), checker, version, commit, buildDate)
//	go srv.Serve(ctx)
package telemetry
