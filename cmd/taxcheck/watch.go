package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"misp-hq/taxcheck/pkg/cli"
	"misp-hq/taxcheck/pkg/history"
	"misp-hq/taxcheck/pkg/telemetry/health"
	"misp-hq/taxcheck/pkg/telemetry/tracing"
	"misp-hq/taxcheck/pkg/watch"
)

// Watch trigger sources, as recorded by the watch_triggers_total metric.
const (
	triggerStart    = "start"
	triggerChange   = "change"
	triggerSchedule = "schedule"
)

var watchFlags struct {
	schedule string
	debounce time.Duration
	format   string
}

var watchCmd = &cobra.Command{
	Use:   "watch PATH",
	Short: "Re-check taxonomy files when they change",
	Long: `Check a taxonomy file, or every taxonomy file under a directory, and
check again whenever a file changes.

With --schedule the files are also re-checked on a standard cron expression,
which catches changes made while the watcher was not running. When
metrics.enabled is set in the configuration, Prometheus metrics are served
on metrics.listen_address for as long as the watcher runs.

The watcher runs until interrupted (SIGINT or SIGTERM).

Examples:
  # Watch one file
  taxcheck watch machinetag.json

  # Watch a checkout of the taxonomies repository
  taxcheck watch taxonomies/

  # Also re-check every night at 02:00
  taxcheck watch taxonomies/ --schedule "0 2 * * *"`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron expression for periodic re-checks (overrides config)")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period after a change before re-checking (overrides config)")
	watchCmd.Flags().StringVar(&watchFlags.format, "format", "text", "output format: text, json")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	if _, err := os.Stat(root); err != nil {
		return cli.NewCommandError("watch", err)
	}

	format, err := cli.ParseFormat(watchFlags.format)
	if err != nil {
		return err
	}

	c, err := newChecker(cmd, format)
	if err != nil {
		return err
	}
	defer c.Close()

	watchCfg := c.cfg.Watch
	if watchFlags.schedule != "" {
		watchCfg.Schedule = watchFlags.schedule
	}
	if watchFlags.debounce > 0 {
		watchCfg.Debounce = watchFlags.debounce
	}

	ctx := cmd.Context()
	log := c.logger.Slog()

	state := newWatchState()

	// Change and schedule triggers run on different goroutines.
	var mu sync.Mutex
	run := func(ctx context.Context, source string, paths []string, full bool) {
		mu.Lock()
		defer mu.Unlock()

		ctx, span := c.tracer.Start(ctx, tracing.SpanWatchRun, trace.WithAttributes(
			attribute.String(tracing.AttrTrigger, source),
			attribute.Int(tracing.AttrFiles, len(paths)),
		))
		defer span.End()

		c.metrics.RecordWatchTrigger(source)
		reports := make([]*fileReport, 0, len(paths))
		for _, path := range paths {
			report, err := c.checkFile(ctx, path)
			if err != nil {
				log.Error("check failed", "file", path, "error", err)
				continue
			}
			reports = append(reports, report)
		}
		state.record(reports, full)
		if err := c.writeReports(reports, true); err != nil {
			log.Error("failed to write report", "error", err)
		}
	}

	runAll := func(ctx context.Context, source string) {
		targets, err := collectTargets(root, watchCfg.Extensions)
		if err != nil {
			log.Error("failed to list taxonomy files", "path", root, "error", err)
			return
		}
		run(ctx, source, targets, true)
	}

	var sched *watch.Scheduler
	if watchCfg.Schedule != "" {
		sched, err = watch.NewScheduler(watchCfg.Schedule, log)
		if err != nil {
			return cli.NewConfigError("watch.schedule", err.Error())
		}
	}

	fw, err := watch.NewFileWatcher(&watch.FileWatcherConfig{
		Path:             root,
		DebounceInterval: watchCfg.Debounce,
		Extensions:       watchCfg.Extensions,
		SkipHidden:       true,
	}, log)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	runAll(ctx, triggerStart)

	if c.metrics.Enabled() {
		srv, err := c.metrics.Listen()
		if err != nil {
			return cli.NewCommandError("metrics", err)
		}

		checker := health.New(5 * time.Second)
		checker.RegisterCheck("taxonomies", state.check)
		if c.history != nil {
			checker.RegisterCheck("history", func(ctx context.Context) error {
				_, err := c.history.List(ctx, history.Query{Limit: 1})
				return err
			})
		}
		health.Mount(srv.Mux(), checker, Version, GitCommit, BuildDate)

		log.Info("serving metrics", "address", srv.Addr(), "path", c.cfg.Metrics.Path,
			"health_checks", checker.ListChecks())
		go func() {
			if err := srv.Serve(ctx); err != nil {
				log.Error("metrics server failed", "error", err)
			}
		}()
	}

	if sched != nil {
		if err := sched.Start(ctx, func(ctx context.Context) {
			runAll(ctx, triggerSchedule)
		}); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer sched.Stop()
	}

	err = fw.Watch(ctx, func(path string) {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Info("taxonomy file removed", "file", path)
			state.forget(path)
			return
		}
		run(ctx, triggerChange, []string{path}, false)
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// watchState holds the last verdict of every watched file for the readiness
// check.
type watchState struct {
	mu      sync.Mutex
	checked bool
	valid   map[string]bool
}

func newWatchState() *watchState {
	return &watchState{valid: make(map[string]bool)}
}

// record stores the verdicts of reports. A full run replaces every verdict.
func (s *watchState) record(reports []*fileReport, full bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if full {
		s.valid = make(map[string]bool, len(reports))
		s.checked = true
	}
	for _, r := range reports {
		s.valid[r.File] = r.Valid
	}
}

func (s *watchState) forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.valid, path)
}

// check fails until the first full run and while any file is invalid.
func (s *watchState) check(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.checked {
		return errors.New("no check completed yet")
	}

	var invalid []string
	for file, valid := range s.valid {
		if !valid {
			invalid = append(invalid, file)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	sort.Strings(invalid)
	return fmt.Errorf("%d of %d files invalid: %s", len(invalid), len(s.valid), strings.Join(invalid, ", "))
}

// collectTargets returns root itself when it is a file, otherwise every
// non-hidden file under root whose extension is in exts, sorted.
func collectTargets(root string, exts []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var targets []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == strings.ToLower(want) {
				targets = append(targets, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, err)
	}

	sort.Strings(targets)
	return targets, nil
}
