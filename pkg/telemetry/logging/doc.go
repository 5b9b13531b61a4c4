// Package logging provides the structured logger used by taxcheck.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Console, text and JSON output formats
//   - A silent mode that discards every record
//   - Context-aware logging with run IDs and file names
//   - Configurable log levels (debug, info, warn, error)
//
// The console format is the default and prints one line per record:
//
//	INFO - Loading JSON file: machinetag.json
//	ERROR - There are mandatory fields in the file that are missing: 'version' check=fields
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "console"})
//
//	ctx := logging.WithRunID(ctx, runID)
//	logger.WithContext(ctx).Info("Checking taxonomy")
//
//	// Packages that take a *slog.Logger
//	v := validator.NewValidator(logger.Slog())
package logging
