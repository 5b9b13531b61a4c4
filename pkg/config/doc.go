// Package config provides configuration management for taxcheck.
//
// Configuration is optional. A command reads the file named by --config, or
// .taxcheck.yaml in the working directory when it exists, and falls back to
// defaults otherwise. An explicitly named file that does not exist is an error.
//
// # Configuration Loading
//
//	cfg, err := config.Resolve(flagPath)
//
// Resolve applies defaults, then the YAML file, then environment overrides,
// and validates the result. Unknown YAML keys are rejected.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention TAXCHECK_SECTION_FIELD.
// For example:
//
//   - TAXCHECK_LOGGING_LEVEL overrides logging.level
//   - TAXCHECK_METRICS_ENABLED overrides metrics.enabled
//   - TAXCHECK_HISTORY_PATH overrides history.path
//
// # Example
//
//	logging:
//	  level: info
//	  format: console
//	metrics:
//	  enabled: true
//	  listen_address: 127.0.0.1:9464
//	watch:
//	  debounce: 200ms
//	  schedule: "*/5 * * * *"
//	history:
//	  enabled: true
//	  path: .taxcheck/history.db
package config
