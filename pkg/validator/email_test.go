package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/guardkit/pkg/validator"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		valid   bool
		message string
	}{
		{name: "simple address", email: "user@example.com", valid: true},
		{name: "plus tag", email: "user+tag@example.com", valid: true},
		{name: "multi-level subdomain", email: "first.last@mail.sub.example.co.uk", valid: true},
		{name: "surrounding whitespace is trimmed", email: "  user@example.com\n", valid: true},
		{name: "upper case", email: "USER@EXAMPLE.COM", valid: true},
		{name: "internationalised domain", email: "user@bücher.de", valid: true},
		{name: "punycode domain", email: "user@xn--bcher-kva.de", valid: true},
		{name: "empty", email: "", message: validator.MsgEmailRequired},
		{name: "whitespace only", email: "   ", message: validator.MsgEmailRequired},
		{name: "too long", email: strings.Repeat("a", 250) + "@example.com", message: validator.MsgEmailTooLong},
		{name: "embedded space", email: "us er@example.com", message: validator.MsgEmailWhitespace},
		{name: "embedded tab", email: "user@exam\tple.com", message: validator.MsgEmailWhitespace},
		{name: "control character", email: "user\x00@example.com", message: validator.MsgEmailWhitespace},
		{name: "missing at sign", email: "user.example.com", message: validator.MsgEmailAtSign},
		{name: "two at signs", email: "user@@example.com", message: validator.MsgEmailAtSign},
		{name: "at sign in domain", email: "user@exa@mple.com", message: validator.MsgEmailAtSign},
		{name: "empty local part", email: "@example.com", message: validator.MsgEmailLocalMissing},
		{name: "empty domain", email: "user@", message: validator.MsgEmailDomainMissing},
		{name: "repeated dots in local part", email: "user..double@example.com", message: validator.MsgEmailRepeatedDots},
		{name: "repeated dots in domain", email: "user@example..com", message: validator.MsgEmailRepeatedDots},
		{name: "local part too long", email: strings.Repeat("a", 65) + "@example.com", message: validator.MsgEmailLocalTooLong},
		{name: "domain without dot", email: "a@b", message: validator.MsgEmailDomainNoDot},
		{name: "leading dot in domain", email: "user@.example.com", message: validator.MsgEmailDomainLabel},
		{name: "label too long", email: "user@" + strings.Repeat("a", 64) + ".com", message: validator.MsgEmailDomainLabel},
		{name: "one letter top-level domain", email: "user@example.c", message: validator.MsgEmailTopLevelDomain},
		{name: "numeric top-level domain", email: "user@example.123", message: validator.MsgEmailTopLevelDomain},
		{name: "quoted local part", email: `"user"@example.com`, message: validator.MsgEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := validator.ValidateEmail(tt.email)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}
