package httpapi

import (
	"net/http"

	"github.com/dmitrymomot/guardkit/pkg/logger"
	"github.com/dmitrymomot/guardkit/pkg/sanitizer"
	"github.com/dmitrymomot/guardkit/pkg/validator"
)

// maxSanitizeLength bounds the max_length a caller may ask for.
const maxSanitizeLength = 10000

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

func (a *API) issueToken(w http.ResponseWriter, r *http.Request) {
	token, err := a.csrf.Generate(r.Context())
	if err != nil {
		a.logger.ErrorContext(r.Context(), "csrf token generation failed",
			logger.Component("httpapi"),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "could not issue token")
		return
	}
	writeData(w, http.StatusOK, tokenResponse{Token: token, ExpiresIn: int(a.csrf.TTL().Seconds())})
}

type sanitizeRequest struct {
	Input     string `json:"input"`
	AllowHTML bool   `json:"allow_html"`
	MaxLength *int   `json:"max_length"`
}

type textResponse struct {
	Output string `json:"output"`
}

func (a *API) sanitize(w http.ResponseWriter, r *http.Request) {
	var req sanitizeRequest
	if err := decodeJSON(w, r, a.maxBodyBytes, &req); err != nil {
		bindError(w, err)
		return
	}

	opts := make([]sanitizer.Option, 0, 2)
	if req.AllowHTML {
		opts = append(opts, sanitizer.WithAllowHTML())
	}
	if req.MaxLength != nil {
		if *req.MaxLength > maxSanitizeLength {
			writeJSON(w, http.StatusUnprocessableEntity, envelope{Error: &errorDetail{
				Code:    codeValidation,
				Message: "validation failed",
				Details: map[string][]string{"max_length": {"must not exceed 10000"}},
			}})
			return
		}
		opts = append(opts, sanitizer.WithMaxLength(*req.MaxLength))
	}

	writeData(w, http.StatusOK, textResponse{Output: sanitizer.Sanitize(req.Input, opts...)})
}

type escapeRequest struct {
	Input string `json:"input"`
}

func (a *API) escape(w http.ResponseWriter, r *http.Request) {
	var req escapeRequest
	if err := decodeJSON(w, r, a.maxBodyBytes, &req); err != nil {
		bindError(w, err)
		return
	}
	writeData(w, http.StatusOK, textResponse{Output: sanitizer.EscapeHTML(req.Input)})
}

type valueRequest struct {
	Value string `json:"value"`
}

// validateValue decodes a {"value": ...} body and writes check(value).
// Validation outcomes are data, so they are always 200.
func validateValue[T any](a *API, check func(string) T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req valueRequest
		if err := decodeJSON(w, r, a.maxBodyBytes, &req); err != nil {
			bindError(w, err)
			return
		}
		writeData(w, http.StatusOK, check(req.Value))
	}
}

func (a *API) validateEmail(w http.ResponseWriter, r *http.Request) {
	validateValue(a, validator.ValidateEmail)(w, r)
}

func (a *API) validatePassword(w http.ResponseWriter, r *http.Request) {
	validateValue(a, validator.ValidatePassword)(w, r)
}

func (a *API) validateURL(w http.ResponseWriter, r *http.Request) {
	validateValue(a, validator.ValidateURL)(w, r)
}
