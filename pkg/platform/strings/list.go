// Package strings provides string list helpers used when reading configuration.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and blank entries from a slice, trimming
// whitespace from each element. Order of first occurrence is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  Staff ", "Moderator", "Staff", "", "  "})
//	// Returns: []string{"Staff", "Moderator"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SplitList splits a separator-delimited setting such as KAFKA_BROKERS into its
// distinct, non-blank entries. An empty value yields nil.
func SplitList(value, sep string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(value, sep))
}
