package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxStripPasses bounds the fixpoint loop in plainText. Ordinary input settles
// after two passes; only deliberately nested entity encodings need more.
const maxStripPasses = 8

var (
	// Policies are safe for concurrent use once built.
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	angleBrackets = strings.NewReplacer("<", "", ">", "")
)

// EscapeHTML replaces &, <, >, " and ' with their HTML entities so the text
// is displayed literally when placed inside an HTML document.
// Every character is replaced at most once.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// StripHTML removes all HTML elements from s and returns plain text.
// The content of script, style, iframe and similar elements is dropped
// entirely, while the text of ordinary elements is kept. Entities are decoded,
// and any markup revealed by decoding is removed as well.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	return plainText(s, stripOnce)
}

// SanitizeHTML keeps safe formatting markup (paragraphs, emphasis, lists,
// links with http, https or mailto targets, ...) and removes scripts, event
// handler attributes, styles and every other element outside that set.
// The result is HTML and must not be escaped again before rendering.
func SanitizeHTML(s string) string {
	if s == "" {
		return ""
	}
	return ugcPolicy.Sanitize(NormalizeUnicode(s))
}

// StripJavaScriptProtocol removes every occurrence of the javascript: scheme,
// in any letter case and with optional (including Unicode) whitespace before
// the colon.
// Removal repeats until no occurrence is left, so fragments such as
// "javajavascript:script:" cannot reassemble the scheme.
func StripJavaScriptProtocol(s string) string {
	for jsProtocolRegex.MatchString(s) {
		s = jsProtocolRegex.ReplaceAllString(s, "")
	}
	return s
}

// stripOnce performs one plain-text extraction pass.
func stripOnce(s string) string {
	s = NormalizeUnicode(s)
	s = strictPolicy.Sanitize(s)
	s = RemoveControlChars(html.UnescapeString(s))
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = danglingTagRegex.ReplaceAllString(s, "")
	return StripJavaScriptProtocol(s)
}

// plainText applies pass until the text stops changing. Input that does not
// settle within maxStripPasses loses every angle bracket instead.
func plainText(s string, pass func(string) string) string {
	for range maxStripPasses {
		next := pass(s)
		if next == s {
			return next
		}
		s = next
	}
	return StripJavaScriptProtocol(angleBrackets.Replace(s))
}
