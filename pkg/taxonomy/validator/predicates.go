package validator

import (
	"fmt"

	"misp-hq/taxcheck/pkg/taxonomy"
	taxErrors "misp-hq/taxcheck/pkg/taxonomy/errors"
)

// checkPredicates validates the "predicates" collection. An empty collection
// is a hard failure. Every faulty predicate is reported, not just the first.
func checkPredicates(raw any, rep *reporter) bool {
	items, ok := asCollection(raw)
	if !ok {
		rep.errorf(taxErrors.CheckPredicates, taxonomy.FieldPredicates,
			"The field 'predicates' must be a list, got %s", taxonomy.TypeName(raw))
		return false
	}

	if len(items) == 0 {
		rep.errorWithSuggestion(taxErrors.CheckPredicates, taxonomy.FieldPredicates,
			"Add at least one predicate with a 'value' field",
			"The field 'predicates' is empty")
		return false
	}

	var faulty []int
	for i, item := range items {
		if !isValidPredicate(item) {
			faulty = append(faulty, i)
		}
	}

	if len(faulty) == 0 {
		return true
	}

	rep.errorf(taxErrors.CheckPredicates, taxonomy.FieldPredicates,
		"predicates - There are %d invalid predicates out of %d.", len(faulty), len(items))
	for _, i := range faulty {
		reportPredicate(items[i], fmt.Sprintf("predicates[%d]", i), rep)
	}
	return false
}

// isValidPredicate reports whether a predicate has only allowed fields, a
// 'value' name, and string values throughout.
func isValidPredicate(item any) bool {
	rec, ok := item.(taxonomy.Record)
	if !ok {
		return false
	}
	if len(difference(taxonomy.SortedKeys(rec), taxonomy.PredicateFields)) > 0 {
		return false
	}
	if _, ok := rec[taxonomy.FieldValue]; !ok {
		return false
	}
	for _, v := range rec {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}

func reportPredicate(item any, path string, rep *reporter) {
	rec, ok := item.(taxonomy.Record)
	if !ok {
		rep.errorf(taxErrors.CheckPredicates, path,
			"predicate must be an object, got %s", taxonomy.TypeName(item))
		return
	}

	name := recordName(rec, taxonomy.FieldValue)
	if _, ok := rec[taxonomy.FieldValue]; !ok {
		rep.errorf(taxErrors.CheckPredicates, path,
			"UNKNOWN predicate has no 'value' field (its name).")
	}

	if notAllowed := difference(taxonomy.SortedKeys(rec), taxonomy.PredicateFields); len(notAllowed) > 0 {
		rep.errorWithSuggestion(taxErrors.CheckPredicates, path,
			taxErrors.SuggestAllowedFields(taxonomy.PredicateFields),
			"%s predicate has fields that are not allowed: %s", name, quoteFields(notAllowed))
	}

	reportTypes(rec, taxonomy.PredicateFields, taxErrors.CheckPredicates, path, rep)
}

// reportTypes emits one diagnostic per present field of rec that is not a string.
func reportTypes(rec taxonomy.Record, fields []string, check taxErrors.Check, path string, rep *reporter) {
	for _, field := range fields {
		v, ok := rec[field]
		if !ok {
			continue
		}
		if _, isString := v.(string); !isString {
			rep.errorf(check, path+"."+field,
				"'%s' field is not a string. Detected type: %s", field, taxonomy.TypeName(v))
		}
	}
}

// asCollection normalises an optional collection field: absent or empty
// (null, {}, "", false, 0) means no items, and any other non-array value is
// rejected.
func asCollection(raw any) ([]any, bool) {
	if taxonomy.IsEmptyValue(raw) {
		return nil, true
	}
	items, ok := raw.([]any)
	return items, ok
}
