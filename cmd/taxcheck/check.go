package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"misp-hq/taxcheck/pkg/cli"
	"misp-hq/taxcheck/pkg/config"
	"misp-hq/taxcheck/pkg/history"
	taxErrors "misp-hq/taxcheck/pkg/taxonomy/errors"
	"misp-hq/taxcheck/pkg/taxonomy/loader"
	"misp-hq/taxcheck/pkg/taxonomy/validator"
	"misp-hq/taxcheck/pkg/telemetry/logging"
	"misp-hq/taxcheck/pkg/telemetry/metrics"
	"misp-hq/taxcheck/pkg/telemetry/tracing"
)

// tracerShutdownTimeout bounds the final span flush.
const tracerShutdownTimeout = 5 * time.Second

// fileReport is the outcome of checking one file, as printed by --format json.
type fileReport struct {
	File        string                  `json:"file"`
	RunID       string                  `json:"run_id"`
	Valid       bool                    `json:"valid"`
	FailedCheck string                  `json:"failed_check,omitempty"`
	Checks      []taxErrors.Check       `json:"checks"`
	Diagnostics []*taxErrors.Diagnostic `json:"diagnostics"`
	DurationMs  float64                 `json:"duration_ms"`
}

// checker holds everything a check run needs. It is shared by the root and
// watch commands.
type checker struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	history history.Store
	tracer  *tracing.Tracer
	out     io.Writer
	format  cli.OutputFormat
	silent  bool
}

// loadConfig resolves the configuration and applies the logging flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(rootFlags.configFile)
	if err != nil {
		return nil, cli.NewCommandError("config", err)
	}

	if rootFlags.logLevel != "" {
		cfg.Logging.Level = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		cfg.Logging.Format = rootFlags.logFormat
	}
	if err := config.Validate(cfg); err != nil {
		return nil, cli.NewCommandError("config", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Silent: rootFlags.silent,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, cli.NewConfigError("logging", err.Error())
	}
	return logger, nil
}

func newChecker(cmd *cobra.Command, format cli.OutputFormat) (*checker, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	tracer, err := tracing.New(&cfg.Tracing, Version)
	if err != nil {
		return nil, cli.NewCommandError("tracing", err)
	}

	c := &checker{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Metrics, nil),
		tracer:  tracer,
		out:     cmd.OutOrStdout(),
		format:  format,
		silent:  rootFlags.silent,
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History)
		if err != nil {
			_ = c.Close()
			return nil, cli.NewCommandError("history", err)
		}
		c.history = store
	}

	return c, nil
}

// checkFile loads and validates one file, then records the run. Only a
// history failure is returned as an error; an invalid file is reported in the
// returned fileReport.
func (c *checker) checkFile(ctx context.Context, path string) (*fileReport, error) {
	runID := uuid.New().String()
	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithFile(ctx, path)
	ctx, span := c.tracer.Start(ctx, tracing.SpanCheck, tracing.CheckStartAttributes(path, runID))
	defer span.End()
	log := c.logger.WithContext(ctx)

	doc := loader.New(log.Slog()).
		WithMaxFileSize(c.cfg.Check.MaxFileSize).
		Load(path)

	result := validator.NewValidator(log.Slog()).
		WithSilent(c.silent).
		Validate(doc)

	errs := len(result.Diagnostics.Errors())
	warns := len(result.Diagnostics.Warnings())
	c.metrics.RecordCheck(result.Valid, string(result.FailedCheck), errs, warns, result.Duration)
	for _, check := range result.Checks {
		tracing.AddEvent(span, "check."+string(check))
	}
	tracing.SetCheckResult(span, result.Valid, string(result.FailedCheck), errs, warns, result.Duration)

	log.Debug("check finished",
		"valid", result.Valid,
		"failed_check", string(result.FailedCheck),
		"errors", errs,
		"warnings", warns,
		"duration", result.Duration,
	)

	if c.history != nil {
		rec := history.NewRecord(path, result)
		rec.ID = runID
		if err := c.history.Save(ctx, rec); err != nil {
			tracing.SetError(span, err)
			return nil, cli.NewCommandError("history", err)
		}
	}

	return &fileReport{
		File:        path,
		RunID:       runID,
		Valid:       result.Valid,
		FailedCheck: string(result.FailedCheck),
		Checks:      result.Checks,
		Diagnostics: result.Diagnostics.Diagnostics,
		DurationMs:  float64(result.Duration) / float64(time.Millisecond),
	}, nil
}

// writeReports prints the verdicts. Text output is one verdict line per file,
// prefixed with the file name when named, and is suppressed when silent. JSON
// output is always written.
func (c *checker) writeReports(reports []*fileReport, named bool) error {
	if c.format == cli.FormatJSON {
		return (&cli.JSONFormatter{Indent: true}).FormatTo(c.out, reports)
	}

	if c.silent {
		return nil
	}
	for _, r := range reports {
		file := ""
		if named {
			file = r.File
		}
		if err := cli.WriteVerdict(c.out, file, r.Valid); err != nil {
			return fmt.Errorf("failed to write verdict: %w", err)
		}
	}
	return nil
}

// Close flushes pending spans and releases the history store.
func (c *checker) Close() error {
	var errs []error

	ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
	defer cancel()
	if err := c.tracer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down tracer: %w", err))
	}

	if c.history != nil {
		if err := c.history.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
