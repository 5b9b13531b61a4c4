// Taxcheck validates MISP taxonomy files (machinetag.json).
//
// A taxonomy is checked in four stages, stopping at the first that fails:
//   - Top-level fields: only known fields, every mandatory field present
//   - Predicates: well-formed, string-valued, at least one
//   - Values: every value group is {predicate, entry} with well-formed entries
//   - Matches: every value group refers to a declared predicate
//
// Usage:
//
//	# Check one file
//	taxcheck machinetag.json
//
//	# Check several files, only the exit code matters
//	taxcheck --silent tlp/machinetag.json pap/machinetag.json
//
//	# Machine-readable report
//	taxcheck --format json machinetag.json
//
//	# Re-check on every change and every hour
//	taxcheck watch taxonomies/ --schedule "@hourly"
//
//	# Show recorded runs
//	taxcheck history --file machinetag.json --limit 10
//
//	# Print the JSON Schema of the taxonomy format
//	taxcheck schema
//
// Exit codes: 0 when every file is valid, 1 when any file is invalid, 2 on
// usage or configuration errors.
package main

import "os"

func main() {
	os.Exit(Execute())
}
