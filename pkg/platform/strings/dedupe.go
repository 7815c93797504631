// Package strings holds small string-list helpers.
package strings

import (
	"strings"
)

// TrimAll trims every element and drops the empty ones. Order is preserved.
func TrimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// FirstDuplicateFold returns the first element that repeats an earlier one under
// case-insensitive comparison, after trimming.
func FirstDuplicateFold(values []string) (string, bool) {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if _, ok := seen[key]; ok {
			return v, true
		}
		seen[key] = struct{}{}
	}
	return "", false
}
