package validator

import (
	"strings"

	"misp-hq/taxcheck/pkg/taxonomy"
	taxErrors "misp-hq/taxcheck/pkg/taxonomy/errors"
)

// checkFields validates the top-level key set. It returns true only when every
// present key is allowed and every mandatory key is present. Unknown and
// missing fields are reported as two separate diagnostics.
func checkFields(keys []string, rep *reporter) bool {
	unknown := difference(keys, taxonomy.AllowedFields)
	missing := difference(taxonomy.MandatoryFields, keys)

	if len(unknown) > 0 {
		rep.errorWithSuggestion(
			taxErrors.CheckFields,
			"",
			fieldSuggestions(unknown),
			"There are fields in the file that are not allowed: %s", quoteFields(unknown),
		)
	}

	if len(missing) > 0 {
		suggestion := ""
		if len(missing) == 1 {
			suggestion = taxErrors.SuggestMissingField(missing[0], "")
		}
		rep.errorWithSuggestion(
			taxErrors.CheckFields,
			"",
			suggestion,
			"There are mandatory fields in the file that are missing: %s", quoteFields(missing),
		)
	}

	return len(unknown) == 0 && len(missing) == 0
}

// fieldSuggestions builds a combined "did you mean" hint for unknown fields.
func fieldSuggestions(unknown []string) string {
	var hints []string
	for _, field := range unknown {
		if s := taxErrors.SuggestField(field, taxonomy.AllowedFields); s != "" {
			hints = append(hints, "'"+field+"': "+s)
		}
	}
	if len(hints) == 0 {
		return taxErrors.SuggestAllowedFields(taxonomy.AllowedFields)
	}
	return strings.Join(hints, "; ")
}
