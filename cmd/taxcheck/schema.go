package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"misp-hq/taxcheck/pkg/cli"
	"misp-hq/taxcheck/pkg/taxonomy"
)

var schemaFlags struct {
	validate string
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the taxonomy format",
	Long: `Print the JSON Schema (draft 2020-12) describing machinetag.json.

The schema covers the structure of a taxonomy: allowed and mandatory fields,
predicates, value groups and entries. It does not express the rule that
every value group must refer to a declared predicate; use the check command
for the full validation.

With --validate the file is checked against the schema instead, which is
useful for comparing with other JSON Schema tooling.

Examples:
  # Print the schema
  taxcheck schema > taxonomy.schema.json

  # Validate a file against the schema only
  taxcheck schema --validate machinetag.json`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVar(&schemaFlags.validate, "validate", "", "validate FILE against the schema")
}

func runSchema(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if schemaFlags.validate != "" {
		if err := validateAgainstSchema(schemaFlags.validate); err != nil {
			if !rootFlags.silent {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				_ = cli.WriteVerdict(out, schemaFlags.validate, false)
			}
			return fmt.Errorf("%s: %w", schemaFlags.validate, cli.ErrInvalid)
		}
		if !rootFlags.silent {
			_ = cli.WriteVerdict(out, schemaFlags.validate, true)
		}
		return nil
	}

	schema, err := taxonomy.GenerateJSONSchema()
	if err != nil {
		return cli.NewCommandError("schema", err)
	}
	_, err = fmt.Fprintln(out, string(schema))
	return err
}

// validateAgainstSchema checks the file at path against the exported schema.
// An unreadable file fails like an invalid one, as it does for the check
// command.
func validateAgainstSchema(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error loading JSON file: %w", err)
	}
	return taxonomy.ValidateSchema(data)
}
