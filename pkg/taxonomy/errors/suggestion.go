package errors

import (
	"fmt"
	"sort"
	"strings"
)

// SuggestField suggests the closest allowed field for an unknown one.
// It uses Levenshtein distance and returns an empty string when nothing is close.
func SuggestField(unknown string, validFields []string) string {
	if len(validFields) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, field := range validFields {
		dist := levenshteinDistance(strings.ToLower(unknown), field)
		if dist < minDistance {
			minDistance = dist
			bestMatch = field
		}
	}

	// Only suggest if the distance is reasonable
	if minDistance <= 3 && minDistance < len(bestMatch) {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// SuggestAllowedFields lists the allowed fields for a record.
func SuggestAllowedFields(validFields []string) string {
	sorted := append([]string(nil), validFields...)
	sort.Strings(sorted)
	return fmt.Sprintf("Allowed fields: %s", strings.Join(sorted, ", "))
}

// SuggestMissingField suggests adding a required field.
func SuggestMissingField(fieldName string, exampleValue string) string {
	if exampleValue != "" {
		return fmt.Sprintf("Add '\"%s\": %s' to the taxonomy", fieldName, exampleValue)
	}
	return fmt.Sprintf("Add '%s' field to the taxonomy", fieldName)
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
