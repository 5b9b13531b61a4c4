package validator

import (
	"fmt"

	"misp-hq/taxcheck/pkg/taxonomy"
	taxErrors "misp-hq/taxcheck/pkg/taxonomy/errors"
)

// checkValues validates the "values" collection. An absent or empty
// collection is allowed and only produces an advisory warning.
func checkValues(raw any, rep *reporter) bool {
	items, ok := asCollection(raw)
	if !ok {
		rep.errorf(taxErrors.CheckValues, taxonomy.FieldValues,
			"The field 'values' must be a list, got %s", taxonomy.TypeName(raw))
		return false
	}

	if len(items) == 0 {
		rep.warnf(taxErrors.CheckValues, taxonomy.FieldValues,
			"A taxonomy with no values is allowed: if it's not intended, please check.")
		return true
	}

	var faulty []int
	for i, item := range items {
		if !isValidValueGroup(item) {
			faulty = append(faulty, i)
		}
	}

	if len(faulty) == 0 {
		return true
	}

	rep.errorf(taxErrors.CheckValues, taxonomy.FieldValues,
		"values - There are %d invalid values out of %d.", len(faulty), len(items))
	for _, i := range faulty {
		reportValueGroup(items[i], fmt.Sprintf("values[%d]", i), rep)
	}
	return false
}

// hasGroupShape reports whether a value group has exactly the fields
// {predicate, entry} with a string predicate and a list of entries.
func hasGroupShape(item any) bool {
	rec, ok := item.(taxonomy.Record)
	if !ok || len(rec) != len(taxonomy.ValueGroupFields) {
		return false
	}
	if len(difference(taxonomy.SortedKeys(rec), taxonomy.ValueGroupFields)) > 0 {
		return false
	}
	if _, ok := rec[taxonomy.FieldPredicate].(string); !ok {
		return false
	}
	_, ok = rec[taxonomy.FieldEntry].([]any)
	return ok
}

// isValidValueGroup reports whether a value group has the right shape and
// contains only valid entries.
func isValidValueGroup(item any) bool {
	if !hasGroupShape(item) {
		return false
	}
	for _, entry := range item.(taxonomy.Record)[taxonomy.FieldEntry].([]any) {
		if !isValidEntry(entry) {
			return false
		}
	}
	return true
}

// isValidEntry reports whether an entry has only allowed fields and string
// 'value' and 'expanded' fields. The type of 'description' is only reported
// for entries that are already faulty.
func isValidEntry(item any) bool {
	rec, ok := item.(taxonomy.Record)
	if !ok {
		return false
	}
	if len(difference(taxonomy.SortedKeys(rec), taxonomy.EntryFields)) > 0 {
		return false
	}
	if _, ok := rec[taxonomy.FieldValue].(string); !ok {
		return false
	}
	_, ok = rec[taxonomy.FieldExpanded].(string)
	return ok
}

func reportValueGroup(item any, path string, rep *reporter) {
	rec, ok := item.(taxonomy.Record)
	if !ok {
		rep.errorf(taxErrors.CheckValues, path,
			"value group must be an object, got %s", taxonomy.TypeName(item))
		return
	}

	name := recordName(rec, taxonomy.FieldPredicate)

	if notAllowed := difference(taxonomy.SortedKeys(rec), taxonomy.ValueGroupFields); len(notAllowed) > 0 {
		rep.errorWithSuggestion(taxErrors.CheckValues, path,
			taxErrors.SuggestAllowedFields(taxonomy.ValueGroupFields),
			"%s value group has fields that are not allowed: %s", name, quoteFields(notAllowed))
	}

	if missing := difference(taxonomy.ValueGroupFields, taxonomy.SortedKeys(rec)); len(missing) > 0 {
		rep.errorf(taxErrors.CheckValues, path,
			"%s value group is missing required fields: %s", name, quoteFields(missing))
	}

	if v, present := rec[taxonomy.FieldPredicate]; present {
		if _, ok := v.(string); !ok {
			rep.errorf(taxErrors.CheckValues, path+"."+taxonomy.FieldPredicate,
				"'predicate' field is not a string. Detected type: %s", taxonomy.TypeName(v))
		}
	}

	entries, present := rec[taxonomy.FieldEntry]
	if !present {
		return
	}
	list, ok := entries.([]any)
	if !ok {
		rep.errorf(taxErrors.CheckValues, path+"."+taxonomy.FieldEntry,
			"'entry' field is not a list. Detected type: %s", taxonomy.TypeName(entries))
		return
	}

	var faulty []int
	for j, entry := range list {
		if !isValidEntry(entry) {
			faulty = append(faulty, j)
		}
	}
	if len(faulty) == 0 {
		return
	}

	rep.errorf(taxErrors.CheckValues, path,
		"values - There are %d invalid value entries out of %d in %s.", len(faulty), len(list), name)
	for _, j := range faulty {
		reportEntry(list[j], fmt.Sprintf("%s.entry[%d]", path, j), rep)
	}
}

func reportEntry(item any, path string, rep *reporter) {
	rec, ok := item.(taxonomy.Record)
	if !ok {
		rep.errorf(taxErrors.CheckValues, path,
			"value entry must be an object, got %s", taxonomy.TypeName(item))
		return
	}

	name := recordName(rec, taxonomy.FieldValue)
	if _, ok := rec[taxonomy.FieldValue]; !ok {
		rep.errorf(taxErrors.CheckValues, path,
			"UNKNOWN value has no 'value' field (its name).")
	}
	if _, ok := rec[taxonomy.FieldExpanded]; !ok {
		rep.errorf(taxErrors.CheckValues, path,
			"%s value has no 'expanded' field.", name)
	}

	if notAllowed := difference(taxonomy.SortedKeys(rec), taxonomy.EntryFields); len(notAllowed) > 0 {
		rep.errorWithSuggestion(taxErrors.CheckValues, path,
			taxErrors.SuggestAllowedFields(taxonomy.EntryFields),
			"%s value has fields that are not allowed: %s", name, quoteFields(notAllowed))
	}

	reportTypes(rec, taxonomy.EntryFields, taxErrors.CheckValues, path, rep)
}
