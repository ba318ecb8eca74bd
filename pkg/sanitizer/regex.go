package sanitizer

import "regexp"

// Pre-compiled regular expressions shared by the helpers.
var (
	// Anything between a pair of angle brackets.
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

	// A tag start that never closes, e.g. "<img src=x" at the end of input.
	danglingTagRegex = regexp.MustCompile(`(?s)<[a-zA-Z/!?].*$`)

	// U+0130 lowercases to a plain i without being in its case-fold orbit.
	// The gap before the colon matches everything unicode.IsSpace does, since
	// NormalizeWhitespace later folds any of it into a plain space.
	jsProtocolRegex = regexp.MustCompile(`(?i)javascr[iİ]pt[\s\v\x{85}\p{Z}]*:`)
)
