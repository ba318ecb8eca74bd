package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeUnicode converts s to Unicode normalization form NFKC.
// Compatibility characters such as full-width letters or the full-width
// less-than sign are folded into their ASCII counterparts.
func NormalizeUnicode(s string) string {
	return norm.NFKC.String(s)
}

// NormalizeWhitespace replaces every run of whitespace (spaces, tabs,
// newlines and other Unicode spaces) with a single space and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RemoveControlChars removes control characters, keeping tabs and line breaks.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// Truncate keeps at most maxLen characters of s. Whitespace left dangling at
// the cut is trimmed. A non-positive maxLen yields an empty string.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return strings.TrimRightFunc(string(runes[:maxLen]), unicode.IsSpace)
}
