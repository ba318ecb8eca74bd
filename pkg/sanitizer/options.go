package sanitizer

// DefaultMaxLength is the number of characters Sanitize keeps when no
// WithMaxLength option is given.
const DefaultMaxLength = 1000

// Option configures a single Sanitize call.
type Option func(*options)

type options struct {
	allowHTML bool
	maxLength int
}

func defaultOptions() options {
	return options{
		allowHTML: false,
		maxLength: DefaultMaxLength,
	}
}

// WithAllowHTML keeps safe formatting markup instead of stripping every tag.
// Scripts, event handler attributes and javascript: URLs are still removed.
func WithAllowHTML() Option {
	return func(o *options) {
		o.allowHTML = true
	}
}

// WithMaxLength limits the sanitized result to n characters.
// Zero or negative values produce an empty result.
func WithMaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = n
	}
}
