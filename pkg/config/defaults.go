package config

import "time"

// Default values for configuration fields.
const (
	// DefaultConfigPath is read when no --config flag is given. It is optional.
	DefaultConfigPath = ".taxcheck.yaml"

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "console"

	// Check defaults
	DefaultMaxFileSize int64 = 10 * 1024 * 1024

	// Metrics defaults
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "taxcheck"

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// History defaults
	DefaultHistoryBackend     = HistoryBackendSQLite
	DefaultHistoryPath        = ".taxcheck/history.db"
	DefaultHistoryBusyTimeout = 5 * time.Second

	// Tracing defaults
	DefaultTracingSampler     = TracingSamplerAlways
	DefaultTracingSampleRatio = 1.0
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingTimeout     = 10 * time.Second
	DefaultTracingServiceName = "taxcheck"
)

// History backends.
const (
	HistoryBackendSQLite = "sqlite"
	HistoryBackendMemory = "memory"
)

// Tracing samplers.
const (
	TracingSamplerAlways = "always"
	TracingSamplerNever  = "never"
	TracingSamplerRatio  = "ratio"
)

// DefaultDurationBuckets are the check duration histogram buckets in seconds.
var DefaultDurationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// DefaultWatchExtensions are the file extensions watched in a directory.
var DefaultWatchExtensions = []string{".json"}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Check.MaxFileSize == 0 {
		cfg.Check.MaxFileSize = DefaultMaxFileSize
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.BusyTimeout == 0 {
		cfg.History.BusyTimeout = DefaultHistoryBusyTimeout
	}

	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.SampleRatio == 0 && cfg.Tracing.Sampler != TracingSamplerRatio {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Tracing.Timeout == 0 {
		cfg.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
