package models

import "strings"

// NormalizeText canonicalizes free-text for rule matching: lowercase,
// "&" becomes " and ", runs of whitespace collapse to a single space,
// leading/trailing whitespace is trimmed. Idempotent, no side effects.
// All rule-key comparisons and dedupe checks go through this function.
func NormalizeText(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "&", " and ")
	return strings.Join(strings.Fields(s), " ")
}
