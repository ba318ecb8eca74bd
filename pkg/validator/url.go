package validator

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dmitrymomot/guardkit/pkg/sanitizer"
)

var schemeRegex = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*):`)

// Host labels that start with these are rejected outright.
var suspiciousLabelPrefixes = []string{"javascript", "vbscript"}

// ValidateURL accepts http and https URLs and bare domains, which are read
// as https. It rejects other schemes, embedded credentials, and hosts that
// are not an IP literal or a dotted host name. Host labels starting with a
// script scheme name, or a "data" label, are rejected as well. Nothing is
// resolved or fetched.
func ValidateURL(raw string) Result {
	raw = sanitizer.Trim(raw)

	switch {
	case raw == "":
		return invalid(MsgURLRequired)
	case hasSpaceOrControl(raw):
		return invalid(MsgURLWhitespace)
	}

	scheme, hasScheme := detectScheme(raw)
	if !hasScheme {
		raw = "https://" + raw
		scheme = "https"
	}
	if scheme != "http" && scheme != "https" {
		return invalid(MsgURLScheme)
	}

	u, err := url.Parse(raw)
	if err != nil || u.Opaque != "" {
		return invalid(MsgURLMalformed)
	}
	if u.User != nil {
		return invalid(MsgURLCredentials)
	}
	if port := u.Port(); port != "" {
		if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
			return invalid(MsgURLMalformed)
		}
	}

	host := u.Hostname()
	if host == "" {
		return invalid(MsgURLHostMissing)
	}
	if net.ParseIP(host) != nil {
		return valid()
	}

	labels, ok := hostLabels(host)
	if !ok || len(labels) < 2 || !validTopLevel(labels[len(labels)-1]) {
		return invalid(MsgURLHostInvalid)
	}
	for _, label := range labels {
		if suspiciousLabel(label) {
			return invalid(MsgURLHostSuspicious)
		}
	}

	return valid()
}

// IsValidSecureURL is ValidateURL reduced to a boolean.
func IsValidSecureURL(raw string) bool {
	return ValidateURL(raw).Valid
}

// detectScheme returns the lowercased scheme of raw. "host:8080/path" has no
// scheme: a colon followed by a port number is read as host:port.
func detectScheme(raw string) (string, bool) {
	m := schemeRegex.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	rest := raw[len(m[0]):]
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		rest = rest[:end]
	}
	if rest != "" && isDigits(rest) {
		return "", false
	}

	return strings.ToLower(m[1]), true
}

func suspiciousLabel(label string) bool {
	label = strings.ToLower(label)
	for _, prefix := range suspiciousLabelPrefixes {
		if strings.HasPrefix(label, prefix) {
			return true
		}
	}

	// "data" alone or followed by a separator or digit, so "database" passes.
	rest, ok := strings.CutPrefix(label, "data")
	if !ok {
		return false
	}
	return rest == "" || !unicode.IsLetter(rune(rest[0]))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasSpaceOrControl(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0
}
