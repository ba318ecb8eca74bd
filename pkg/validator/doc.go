// Package validator checks user-supplied email addresses, passwords and URLs
// and aggregates field failures for form handling.
//
// The value validators return a Result rather than an error; a failed check
// is an expected outcome, and Result.Message names the specific reason:
//
//	res := validator.ValidateEmail("user..double@example.com")
//	// res.Valid == false, res.Message == "contains invalid repeated dots"
//
//	pw := validator.ValidatePassword("StrongP@ssw0rd!")
//	// pw.Valid == true, pw.Strength == 100
//
//	ok := validator.IsValidSecureURL("https://javascript.evil.com") // false
//
// Email and URL input is trimmed with the sanitizer package before checking.
// Host names go through the IDNA lookup profile of golang.org/x/net/idna, so
// internationalised domains are accepted and full-width or mixed-case
// spellings are compared in their canonical ASCII form. URL checks never
// resolve or fetch anything.
//
// # Rules
//
// For forms, the Rule adapters wrap the validators so several fields can be
// checked at once. Apply collects failures into ValidationErrors, which
// matches ErrValidationFailed with errors.Is:
//
//	err := validator.Apply(
//	    validator.Required("name", form.Name),
//	    validator.MaxLength("name", form.Name, 100),
//	    validator.Email("email", form.Email),
//	    validator.Password("password", form.Password),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // verrs.Messages() groups messages by field
//	}
//
// Each ValidationError carries a TranslationKey and TranslationValues for
// localisation.
package validator
