package utils

import "strings"

// NormalizeIngredient canonicalizes a raw pantry entry like "Flour (2 cups)"
// into a comparable token: everything before the first parenthesis, trimmed
// and lower-cased. Empty input comes back empty; callers filter those out.
func NormalizeIngredient(raw string) string {
	if i := strings.Index(raw, "("); i >= 0 {
		raw = raw[:i]
	}
	return strings.ToLower(strings.TrimSpace(raw))
}
