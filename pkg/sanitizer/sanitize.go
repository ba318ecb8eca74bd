package sanitizer

// Sanitize cleans untrusted text input. See the package documentation for the
// order of the steps. The result never contains markup (unless WithAllowHTML
// is set) nor the javascript: scheme, has no leading, trailing or repeated
// whitespace, and is at most the configured number of characters long.
func Sanitize(input string, opts ...Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if input == "" || o.maxLength <= 0 {
		return ""
	}

	markup := StripHTML
	if o.allowHTML {
		markup = SanitizeHTML
	}

	clean := Chain(
		NormalizeUnicode,
		markup,
		RemoveControlChars,
		StripJavaScriptProtocol,
		NormalizeWhitespace,
	)

	return Truncate(clean(input), o.maxLength)
}
