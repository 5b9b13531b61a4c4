// Package health provides liveness and readiness endpoints for the watch
// daemon.
//
// The endpoints are served next to the metrics endpoint:
//
//   - /health: the process is running
//   - /ready: every registered component check passes
//   - /version: build information
//
// # Usage
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("taxonomies", func(ctx context.Context) error {
//	    if invalid > 0 {
//	        return fmt.Errorf("%d files invalid", invalid)
//	    }
//	    return nil
//	})
//
//	mux := http.NewServeMux()
//	health.Mount(mux, checker, "1.0.0", "abc123", "2026-01-02")
//
// A readiness check that does not return within the checker timeout is
// reported as unhealthy.
package health
