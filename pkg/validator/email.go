package validator

import (
	"net/mail"
	"strings"

	"golang.org/x/net/idna"

	"github.com/dmitrymomot/guardkit/pkg/sanitizer"
)

const (
	maxEmailLength = 254
	maxLocalLength = 64
	maxLabelLength = 63
)

// ValidateEmail checks that email is a plain addr-spec usable as an account
// identifier: local@domain.tld, no display name, no comments, no quoting.
// Leading and trailing whitespace is ignored.
func ValidateEmail(email string) Result {
	email = sanitizer.Trim(email)

	switch {
	case email == "":
		return invalid(MsgEmailRequired)
	case len(email) > maxEmailLength:
		return invalid(MsgEmailTooLong)
	case hasSpaceOrControl(email):
		return invalid(MsgEmailWhitespace)
	case strings.Count(email, "@") != 1:
		return invalid(MsgEmailAtSign)
	}

	local, domain, _ := strings.Cut(email, "@")
	switch {
	case local == "":
		return invalid(MsgEmailLocalMissing)
	case domain == "":
		return invalid(MsgEmailDomainMissing)
	case strings.Contains(email, ".."):
		return invalid(MsgEmailRepeatedDots)
	case len(local) > maxLocalLength:
		return invalid(MsgEmailLocalTooLong)
	case !strings.Contains(domain, "."):
		return invalid(MsgEmailDomainNoDot)
	}

	labels, ok := hostLabels(domain)
	if !ok {
		return invalid(MsgEmailDomainLabel)
	}
	if !validTopLevel(labels[len(labels)-1]) {
		return invalid(MsgEmailTopLevelDomain)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid(MsgEmailInvalid)
	}

	return valid()
}

// hostLabels converts host to its ASCII form and returns the labels when
// every one of them is a valid DNS label.
func hostLabels(host string) ([]string, bool) {
	for label := range strings.SplitSeq(host, ".") {
		if label == "" {
			return nil, false
		}
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return nil, false
	}

	labels := strings.Split(ascii, ".")
	for _, label := range labels {
		if label == "" || len(label) > maxLabelLength {
			return nil, false
		}
	}
	return labels, true
}

func validTopLevel(label string) bool {
	return len(label) >= 2 && !isDigits(label)
}
