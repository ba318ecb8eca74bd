package sanitizer_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dmitrymomot/guardkit/pkg/sanitizer"
)

// FuzzSanitize checks the output guarantees of Sanitize against arbitrary
// input, seeded with common XSS vectors.
func FuzzSanitize(f *testing.F) {
	seeds := []string{
		"<script>alert(1)</script>",
		"<img src=x onerror=alert(1)>",
		`<a href="javascript:alert(1)">x</a>`,
		"javascript:alert(document.cookie)",
		"JaVaScRiPt:alert(1)",
		"jav&#x09;ascript:alert(1)",
		"<svg/onload=alert(1)>",
		"'><script>evil()</script>",
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"<<script>script>alert(1)<</script>/script>",
		"＜script＞alert(1)＜/script＞",
		"<!--<script>-->alert(1)",
		"javascript\u2028:alert(1)",
		"<b>javascript</b>\u2029:y",
		"javascript\u1680\u205f:alert(1)",
		"normal text with   spaces\n\tand tabs",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed, false)
		f.Add(seed, true)
	}

	f.Fuzz(func(t *testing.T, input string, allowHTML bool) {
		var opts []sanitizer.Option
		if allowHTML {
			opts = append(opts, sanitizer.WithAllowHTML())
		}

		result := sanitizer.Sanitize(input, opts...)

		if n := utf8.RuneCountInString(result); n > sanitizer.DefaultMaxLength {
			t.Fatalf("result has %d characters, limit is %d", n, sanitizer.DefaultMaxLength)
		}
		if strings.Contains(strings.ToLower(result), "javascript:") {
			t.Fatalf("javascript scheme survived: %q -> %q", input, result)
		}
		if !allowHTML && tagPairRegex.MatchString(result) {
			t.Fatalf("markup survived: %q -> %q", input, result)
		}
		if !allowHTML {
			if again := sanitizer.Sanitize(result); again != result {
				t.Fatalf("not idempotent: %q -> %q -> %q", input, result, again)
			}
		}
		if result != strings.TrimSpace(result) {
			t.Fatalf("result is not trimmed: %q", result)
		}
	})
}
