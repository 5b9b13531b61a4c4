package config

import "time"

// Config is the root configuration structure for taxcheck.
// Every section is optional; zero values are replaced by defaults.
type Config struct {
	// Logging controls diagnostic output.
	Logging LoggingConfig `yaml:"logging"`

	// Check contains settings for loading and checking taxonomy files.
	Check CheckConfig `yaml:"check"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Watch contains configuration for the watch command.
	Watch WatchConfig `yaml:"watch"`

	// History contains configuration for the check history store.
	History HistoryConfig `yaml:"history"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "console", "text", "json"
	// Default: "console"
	Format string `yaml:"format"`
}

// CheckConfig contains settings for checking taxonomy files.
type CheckConfig struct {
	// MaxFileSize is the largest taxonomy file accepted, in bytes.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the metrics endpoint listens on in watch mode.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "taxcheck"
	Namespace string `yaml:"namespace"`

	// DurationBuckets defines histogram buckets for check duration (seconds).
	// Default: [0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// WatchConfig contains configuration for re-checking files on change.
type WatchConfig struct {
	// Debounce is the quiet period after a change before re-checking.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression for periodic re-checks.
	// Default: "" (disabled)
	Schedule string `yaml:"schedule"`

	// Extensions lists the file extensions that trigger a re-check when a
	// directory is watched.
	// Default: [".json"]
	Extensions []string `yaml:"extensions"`
}

// HistoryConfig contains configuration for the check history store.
type HistoryConfig struct {
	// Enabled records every check run.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the store implementation.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Path is the SQLite database file.
	// Default: ".taxcheck/history.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled exports one span per checked file.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler is the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of runs sampled by the "ratio" sampler.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export request.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "taxcheck"
	ServiceName string `yaml:"service_name"`
}
