// Package validator checks parsed taxonomy definitions.
//
// A pass runs four stages in order and stops at the first one that fails:
//
//  1. fields: the top-level key set is allowed and complete
//  2. predicates: the collection is non-empty and every predicate is well formed
//  3. values: every value group and entry is well formed (an empty collection is allowed)
//  4. matches: every value group names a declared predicate
//
// An empty document fails before any stage runs. Every violation found by a
// stage is reported, not only the first one. Diagnostics are collected in the
// Result and, unless the validator is silent, logged; they never change the
// verdict.
//
// Example:
//
//	v := validator.NewValidator(logger)
//	result := v.Validate(doc)
//	if !result.Valid {
//	    fmt.Println(result.Diagnostics.Error())
//	}
package validator
