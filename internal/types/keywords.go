package types

import "strings"

// NormalizeKeyword lowercases and trims a term for matching purposes.
func NormalizeKeyword(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// splitWords breaks a phrase on whitespace and common punctuation.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', ',', ';', '/', '(', ')':
			return true
		}
		return false
	})
}
