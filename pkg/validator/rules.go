package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MaxLength counts characters, not bytes.
func MaxLength(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// Email wraps ValidateEmail. The error message carries the specific reason.
func Email(field, value string) Rule {
	res := ValidateEmail(value)
	return resultRule(field, res, "validation.email", nil)
}

// Password wraps ValidatePassword; the strength score is exposed as a
// translation value.
func Password(field, value string) Rule {
	res := ValidatePassword(value)
	return resultRule(field, res.Result, "validation.password", map[string]any{
		"strength": res.Strength,
	})
}

func SecureURL(field, value string) Rule {
	res := ValidateURL(value)
	return resultRule(field, res, "validation.url", nil)
}

func resultRule(field string, res Result, key string, extra map[string]any) Rule {
	values := map[string]any{
		"field":  field,
		"reason": res.Message,
	}
	for k, v := range extra {
		values[k] = v
	}

	return Rule{
		Check: func() bool {
			return res.Valid
		},
		Error: ValidationError{
			Field:             field,
			Message:           res.Message,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}
