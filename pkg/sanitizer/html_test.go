package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/guardkit/pkg/sanitizer"
)

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "script tag with double quotes",
			input:    `<script>alert("xss")</script>`,
			expected: "&lt;script&gt;alert(&quot;xss&quot;)&lt;/script&gt;",
		},
		{
			name:     "ampersand",
			input:    "Tom & Jerry",
			expected: "Tom &amp; Jerry",
		},
		{
			name:     "apostrophe",
			input:    "it's",
			expected: "it&#39;s",
		},
		{
			name:     "existing entity is escaped once",
			input:    "&lt;",
			expected: "&amp;lt;",
		},
		{
			name:     "plain text",
			input:    "normal text",
			expected: "normal text",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.EscapeHTML(tt.input))
		})
	}
}

func TestEscapeHTML_AfterSanitize(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Sanitize(`Fish & "Chips" <script>alert(1)</script>`)
	assert.Equal(t, "Fish & \"Chips\"", clean)
	assert.Equal(t, "Fish &amp; &quot;Chips&quot;", sanitizer.EscapeHTML(clean))
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "style content is dropped",
			input:    "<style>body{display:none}</style>visible",
			expected: "visible",
		},
		{
			name:     "attributes vanish with their tag",
			input:    `<img src=x onerror="alert(1)">caption`,
			expected: "caption",
		},
		{
			name:     "comments are dropped",
			input:    "before<!-- hidden -->after",
			expected: "beforeafter",
		},
		{
			name:     "entities decode to text",
			input:    "5 &gt; 3",
			expected: "5 > 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", sanitizer.SanitizeHTML(""))
	assert.Equal(t, "<p>hi</p>", sanitizer.SanitizeHTML(`<p onclick="x()">hi</p>`))
}

func TestStripJavaScriptProtocol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"javascript:void(0)", "void(0)"},
		{"JAVASCRIPT:void(0)", "void(0)"},
		{"java\tscript:void(0)", "java\tscript:void(0)"},
		{"javascript\t:void(0)", "void(0)"},
		{"jajavascript:vascript:x", "x"},
		{"javascrİpt:x", "x"},
		{"javascript\u2028:x", "x"},
		{"javascript\u1680 \u00a0:x", "x"},
		{"javascript\v\u0085:x", "x"},
		{"see https://example.com", "see https://example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sanitizer.StripJavaScriptProtocol(tt.input), "input %q", tt.input)
	}
}
