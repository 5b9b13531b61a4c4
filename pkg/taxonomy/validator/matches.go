package validator

import (
	"fmt"

	"misp-hq/taxcheck/pkg/taxonomy"
	taxErrors "misp-hq/taxcheck/pkg/taxonomy/errors"
)

// checkMatches verifies that every value group names a declared predicate.
// It scans every entry of every group and never stops at the first mismatch.
// Malformed records are skipped; their shape is the business of the earlier
// stages.
func checkMatches(doc taxonomy.Document, rep *reporter) bool {
	registry := NewRegistry()

	predicates, _ := doc.Predicates()
	for _, item := range predicates {
		rec, ok := item.(taxonomy.Record)
		if !ok {
			continue
		}
		if name, ok := rec[taxonomy.FieldValue].(string); ok {
			_ = registry.Register(name)
		}
	}
	registry.Close()

	valid := true
	groups, _ := doc.Values()
	for i, item := range groups {
		group, ok := item.(taxonomy.Record)
		if !ok {
			continue
		}
		predicate, ok := group[taxonomy.FieldPredicate].(string)
		if !ok {
			continue
		}
		entries, _ := group[taxonomy.FieldEntry].([]any)
		for j, e := range entries {
			entry, ok := e.(taxonomy.Record)
			if !ok {
				continue
			}
			value := recordName(entry, taxonomy.FieldValue)
			if err := registry.Record(predicate, value); err != nil {
				valid = false
				rep.errorWithSuggestion(taxErrors.CheckMatches,
					fmt.Sprintf("values[%d].entry[%d]", i, j),
					taxErrors.SuggestField(predicate, registry.Names()),
					"The value %s has no valid matching predicate, as %s was not defined.", value, predicate)
			}
		}
	}

	return valid
}
