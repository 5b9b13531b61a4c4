package taxonomy

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Top-level field names of a taxonomy definition.
const (
	FieldNamespace   = "namespace"
	FieldDescription = "description"
	FieldVersion     = "version"
	FieldPredicates  = "predicates"
	FieldRefs        = "refs"
	FieldExclusive   = "exclusive"
	FieldExpanded    = "expanded"
	FieldValues      = "values"
)

// Record field names used by predicates, value groups and entries.
const (
	FieldValue     = "value"
	FieldColour    = "colour"
	FieldPredicate = "predicate"
	FieldEntry     = "entry"
)

var (
	// MandatoryFields must all be present at the top level.
	MandatoryFields = []string{FieldNamespace, FieldDescription, FieldVersion, FieldPredicates}

	// AllowedFields is every field accepted at the top level.
	AllowedFields = []string{
		FieldNamespace, FieldDescription, FieldVersion, FieldPredicates,
		FieldRefs, FieldExclusive, FieldExpanded, FieldValues,
	}

	// PredicateFields is every field accepted in a predicate record.
	PredicateFields = []string{FieldValue, FieldExpanded, FieldDescription, FieldColour}

	// ValueGroupFields is the exact field set of a value group.
	ValueGroupFields = []string{FieldPredicate, FieldEntry}

	// EntryFields is every field accepted in a value entry.
	EntryFields = []string{FieldValue, FieldExpanded, FieldDescription}
)

// Document is a parsed taxonomy definition, kept as raw JSON values so that
// unknown keys and wrong types can be detected and reported.
//
// A nil or empty Document is the sentinel produced when a file cannot be
// loaded.
type Document map[string]any

// Record is a JSON object inside a document (a predicate, value group or entry).
type Record = map[string]any

// IsEmpty reports whether the document is the empty sentinel.
func (d Document) IsEmpty() bool {
	return len(d) == 0
}

// Keys returns the top-level keys in sorted order.
func (d Document) Keys() []string {
	return SortedKeys(d)
}

// Predicates returns the raw "predicates" collection. A missing field or an
// empty value (see IsEmptyValue) yields an empty collection; ok is false when
// the field holds anything else that is not an array.
func (d Document) Predicates() (items []any, ok bool) {
	return collection(d, FieldPredicates)
}

// Values returns the raw "values" collection with the same defaulting rules as
// Predicates.
func (d Document) Values() (items []any, ok bool) {
	return collection(d, FieldValues)
}

func collection(d Document, field string) ([]any, bool) {
	raw, present := d[field]
	if !present || IsEmptyValue(raw) {
		return nil, true
	}
	items, ok := raw.([]any)
	return items, ok
}

// IsEmptyValue reports whether a decoded JSON value is empty: null, false,
// zero, "", [] or {}. An empty collection field is treated as absent.
func IsEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case float64:
		return x == 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	default:
		return false
	}
}

// SortedKeys returns the keys of a JSON object in sorted order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TypeName returns the JSON type of a decoded value, as used in diagnostics.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
