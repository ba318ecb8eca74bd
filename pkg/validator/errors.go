package validator

import "errors"

// ErrValidationFailed is matched by every ValidationErrors value via errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// Messages reported in Result.Message. They are exported so callers can
// compare reasons without matching on free text.
const (
	MsgEmailRequired       = "email is required"
	MsgEmailTooLong        = "email must be at most 254 characters"
	MsgEmailWhitespace     = "email must not contain whitespace or control characters"
	MsgEmailAtSign         = "email must contain exactly one @"
	MsgEmailLocalMissing   = "email is missing the part before @"
	MsgEmailDomainMissing  = "email is missing the domain"
	MsgEmailRepeatedDots   = "contains invalid repeated dots"
	MsgEmailLocalTooLong   = "email local part must be at most 64 characters"
	MsgEmailDomainNoDot    = "email domain must contain a dot"
	MsgEmailDomainLabel    = "email domain is not a valid host name"
	MsgEmailTopLevelDomain = "email domain has an invalid top-level domain"
	MsgEmailInvalid        = "email address is not valid"

	MsgPasswordRequired  = "password is required"
	MsgPasswordTooShort  = "password must be at least 8 characters"
	MsgPasswordLowercase = "password must contain a lowercase letter"
	MsgPasswordUppercase = "password must contain an uppercase letter"
	MsgPasswordDigit     = "password must contain a digit"
	MsgPasswordSpecial   = "password must contain a special character"
	MsgPasswordCommon    = "password is too common"

	MsgURLRequired       = "url is required"
	MsgURLWhitespace     = "url must not contain whitespace or control characters"
	MsgURLMalformed      = "url is malformed"
	MsgURLScheme         = "url scheme is not allowed, use http or https"
	MsgURLCredentials    = "url must not contain credentials"
	MsgURLHostMissing    = "url is missing a host"
	MsgURLHostInvalid    = "url host is not a valid host name"
	MsgURLHostSuspicious = "url host looks like an injection attempt"
)
