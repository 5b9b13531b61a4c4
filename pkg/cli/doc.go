/*
Package cli provides command-line interface utilities for taxcheck.

The cli package includes output formatters, the verdict line, exit code
mapping and signal handling used by the taxcheck command.

Output Formatting:

	formatter := &cli.JSONFormatter{Indent: true}
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Exit Codes:

Commands return errors; main maps them with ExitCode. 0 means every document
is valid, 1 means at least one is invalid and 2 means the command could not
run.

	os.Exit(cli.ExitCode(rootCmd.Execute()))

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
