// Package sanitizer cleans untrusted text before it is validated, stored or
// rendered.
//
// The central entry point is Sanitize, which runs a fixed pipeline over its
// input:
//
//  1. Unicode NFKC normalisation, so compatibility forms of markup and
//     scheme characters cannot slip past the later steps.
//  2. HTML removal. By default every tag is stripped and the content of
//     script-like elements is dropped. WithAllowHTML keeps safe formatting
//     markup and removes only scripts, event handlers and similar vectors.
//  3. Removal of every javascript: scheme occurrence, regardless of the
//     HTML setting.
//  4. Whitespace normalisation: runs of spaces, tabs and newlines collapse
//     into a single space and the result is trimmed.
//  5. Truncation to the configured maximum number of characters (1000 by
//     default).
//
// EscapeHTML serves a different purpose: it keeps the text intact and makes
// it safe to place inside HTML by replacing &, <, >, " and ' with entities.
//
// # Usage
//
//	import "github.com/dmitrymomot/guardkit/pkg/sanitizer"
//
//	name := sanitizer.Sanitize(form.Name, sanitizer.WithMaxLength(100))
//	bio := sanitizer.Sanitize(form.Bio, sanitizer.WithAllowHTML())
//	safe := sanitizer.EscapeHTML(comment.Body)
//
// The individual steps are exported as well (StripHTML,
// StripJavaScriptProtocol, NormalizeWhitespace, Truncate, ...) and can be
// combined with Chain:
//
//	clean := sanitizer.Chain(sanitizer.Trim, sanitizer.RemoveControlChars)
//	subject := clean(raw)
//
// # Error handling
//
// None of the helpers returns an error or panics. Malformed input always
// produces a best-effort safe string, possibly empty.
//
// The package holds no mutable state; all functions are safe for concurrent
// use.
package sanitizer
