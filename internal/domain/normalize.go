package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord prepares a vocabulary word for storage and comparison:
//   - applies Unicode NFC so composed and decomposed forms compare equal
//   - trims and lowercases
//   - collapses any run of whitespace (spaces, tabs, newlines) into one space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeWord(word string) string {
	fields := strings.Fields(norm.NFC.String(word))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}
