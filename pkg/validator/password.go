package validator

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 8

	classPoints    = 15
	minLengthBonus = 10
	perExtraChar   = 3
	maxExtraBonus  = 20
	highDiversity  = 10
	midDiversity   = 5

	repetitionCap = 40
	commonCap     = 10
	maxRun        = 3
)

// Frequently breached passwords, lowercase. Lookups lowercase the candidate.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password12": {}, "password123": {}, "password!": {},
	"passw0rd": {}, "p@ssw0rd": {}, "p@ssword": {}, "pa$$word": {},
	"123456": {}, "1234567": {}, "12345678": {}, "123456789": {}, "1234567890": {},
	"1234": {}, "12345": {}, "123123": {}, "111111": {}, "000000": {}, "12341234": {},
	"654321": {}, "987654321": {}, "abc123": {}, "abcdef": {}, "abcd1234": {},
	"a1b2c3": {}, "aa123456": {}, "123qwe": {}, "qwe123": {}, "asd123": {},
	"123asd": {}, "zxc123": {}, "123zxc": {}, "1q2w3e4r": {}, "1qaz2wsx": {},
	"zaq12wsx": {}, "qazwsx": {}, "qazxsw": {}, "qwerty": {}, "qwerty1": {},
	"qwerty12": {}, "qwerty123": {}, "qwertyuiop": {}, "asdfghjkl": {}, "zxcvbnm": {},
	"admin": {}, "admin123": {}, "administrator": {}, "root": {}, "toor": {},
	"guest": {}, "test": {}, "testing": {}, "user": {}, "login": {}, "pass": {},
	"master": {}, "secret": {}, "letmein": {}, "welcome": {}, "welcome1": {},
	"trustno1": {}, "iloveyou": {}, "monkey": {}, "dragon": {}, "sunshine": {},
	"princess": {}, "football": {}, "baseball": {}, "basketball": {}, "soccer": {},
	"hockey": {}, "superman": {}, "batman": {}, "spiderman": {}, "pokemon": {},
	"shadow": {}, "midnight": {}, "freedom": {}, "starwars": {}, "whatever": {},
	"changeme": {}, "default": {}, "computer": {}, "internet": {}, "michael": {},
	"jennifer": {}, "jordan": {}, "hunter": {}, "charlie": {}, "rainbow": {},
}

// IsCommonPassword reports whether password is on the built-in denylist.
func IsCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}

// ValidatePassword requires at least 8 characters with a lowercase letter,
// an uppercase letter, a digit and a punctuation or symbol character, and
// rejects denylisted passwords. Strength is scored independently of validity.
func ValidatePassword(password string) PasswordResult {
	res := PasswordResult{Strength: PasswordStrength(password)}

	c := classify(password)
	switch {
	case password == "":
		res.Result = invalid(MsgPasswordRequired)
	case IsCommonPassword(password):
		res.Result = invalid(MsgPasswordCommon)
	case c.length < minPasswordLength:
		res.Result = invalid(MsgPasswordTooShort)
	case !c.lower:
		res.Result = invalid(MsgPasswordLowercase)
	case !c.upper:
		res.Result = invalid(MsgPasswordUppercase)
	case !c.digit:
		res.Result = invalid(MsgPasswordDigit)
	case !c.special:
		res.Result = invalid(MsgPasswordSpecial)
	default:
		res.Result = valid()
	}

	return res
}

// PasswordStrength scores password from 0 to 100:
//
//	15 per character class present (lower, upper, digit, special)
//	10 for reaching the minimum length
//	3 per character beyond it, up to 20
//	10 when at least 75% of characters are distinct, 5 when at least 50%
//
// A run of 3 identical characters or under 50% distinct characters caps the
// score at 40. Denylisted passwords are capped at 10.
func PasswordStrength(password string) int {
	c := classify(password)
	if c.length == 0 {
		return 0
	}

	score := classPoints * c.classes()
	if c.length >= minPasswordLength {
		score += minLengthBonus
		score += min((c.length-minPasswordLength)*perExtraChar, maxExtraBonus)
	}

	diversity := float64(c.unique) / float64(c.length)
	switch {
	case diversity >= 0.75:
		score += highDiversity
	case diversity >= 0.5:
		score += midDiversity
	}

	if c.longestRun >= maxRun || diversity < 0.5 {
		score = min(score, repetitionCap)
	}
	if IsCommonPassword(password) {
		score = min(score, commonCap)
	}

	return min(score, 100)
}

type charClasses struct {
	lower, upper, digit, special bool

	length     int
	unique     int
	longestRun int
}

func (c charClasses) classes() int {
	n := 0
	for _, ok := range []bool{c.lower, c.upper, c.digit, c.special} {
		if ok {
			n++
		}
	}
	return n
}

func classify(s string) charClasses {
	c := charClasses{length: utf8.RuneCountInString(s)}
	seen := make(map[rune]struct{}, c.length)

	var prev rune
	run := 0
	for i, r := range []rune(s) {
		switch {
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsDigit(r):
			c.digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			c.special = true
		}

		seen[r] = struct{}{}

		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		c.longestRun = max(c.longestRun, run)
		prev = r
	}

	c.unique = len(seen)
	return c
}
