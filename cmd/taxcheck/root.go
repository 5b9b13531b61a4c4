package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"misp-hq/taxcheck/pkg/cli"
)

var rootFlags struct {
	configFile string
	silent     bool
	format     string
	logLevel   string
	logFormat  string
}

var rootCmd = &cobra.Command{
	Use:   "taxcheck [flags] FILE...",
	Short: "A checker for MISP taxonomy files (machinetag.json)",
	Long: `Taxcheck validates MISP taxonomy files (machinetag.json).

Each file is checked in four stages, stopping at the first that fails:
  - fields:     only known top-level fields, every mandatory field present
  - predicates: at least one predicate, each with a string 'value'
  - values:     every value group is {predicate, entry} with valid entries
  - matches:    every value group refers to a declared predicate

Diagnostics explain how to fix the file; --silent turns them off without
changing the exit code.

Exit codes:
  0  every file is valid
  1  at least one file is invalid
  2  usage or configuration error`,
	Example: `  taxcheck machinetag.json
  taxcheck -s tlp/machinetag.json pap/machinetag.json
  taxcheck --format json machinetag.json`,
	Version:       Version,
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCheck,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, cli.ErrInvalid) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlags.configFile, "config", "c", "", "config file path (default .taxcheck.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.silent, "silent", "s", false, "don't provide tips on how to fix the file")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFormat, "log-format", "", "log format: console, text, json (overrides config)")

	rootCmd.Flags().StringVar(&rootFlags.format, "format", "text", "output format: text, json")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(rootFlags.format)
	if err != nil {
		return err
	}

	c, err := newChecker(cmd, format)
	if err != nil {
		return err
	}
	defer c.Close()

	reports := make([]*fileReport, 0, len(args))
	invalid := 0
	for _, path := range args {
		report, err := c.checkFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		if !report.Valid {
			invalid++
		}
		reports = append(reports, report)
	}

	if err := c.writeReports(reports, len(args) > 1); err != nil {
		return cli.NewCommandError("output", err)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d files: %w", invalid, len(args), cli.ErrInvalid)
	}
	return nil
}
