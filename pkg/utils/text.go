// Package utils provides common utility functions.
package utils

import (
	"strings"
	"unicode"
)

// CleanText trims leading/trailing whitespace and removes internal
// control characters.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}

		return r
	}, s)
}

// NormalizeWhitespace replaces runs of whitespace with single spaces.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most maxLength characters, appending an
// ellipsis when anything was cut.
func Truncate(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}

	return s[:maxLength] + "..."
}
