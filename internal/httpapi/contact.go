package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/guardkit/pkg/logger"
	"github.com/dmitrymomot/guardkit/pkg/ratelimit"
	"github.com/dmitrymomot/guardkit/pkg/sanitizer"
	"github.com/dmitrymomot/guardkit/pkg/validator"
)

const (
	maxNameLength    = 100
	maxMessageLength = 5000
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Preview string `json:"preview"`
}

// contact accepts a contact form submission. The CSRF middleware has already
// consumed the token. Input is sanitized, then validated, then charged to the
// sender's email budget.
func (a *API) contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, a.maxBodyBytes, &req); err != nil {
		bindError(w, err)
		return
	}

	name := sanitizer.Sanitize(req.Name, sanitizer.WithMaxLength(maxNameLength+1))
	message := sanitizer.Sanitize(req.Message, sanitizer.WithMaxLength(maxMessageLength+1))
	email := strings.ToLower(sanitizer.Trim(req.Email))

	if err := validator.Apply(
		validator.Required("name", name),
		validator.MaxLength("name", name, maxNameLength),
		validator.Email("email", email),
		validator.Required("message", message),
		validator.MaxLength("message", message, maxMessageLength),
	); err != nil {
		verrs := validator.ExtractValidationErrors(err)
		fields := verrs.Fields()
		a.logger.DebugContext(r.Context(), "contact message rejected",
			logger.Component("httpapi"),
			slog.Any("fields", fields),
		)
		writeJSON(w, http.StatusUnprocessableEntity, envelope{Error: &errorDetail{
			Code:    codeValidation,
			Message: "invalid fields: " + strings.Join(fields, ", "),
			Details: verrs.Messages(),
		}})
		return
	}

	key := ratelimit.Key("contact", email)
	result, err := a.contactLimiter.Allow(r.Context(), key)
	if err != nil {
		a.logger.ErrorContext(r.Context(), "contact limiter failed",
			logger.Component("httpapi"),
			logger.RateLimitKey(key),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "could not accept message")
		return
	}
	ratelimit.SetHeaders(w, result)
	if !result.Allowed {
		a.logger.WarnContext(r.Context(), "contact submissions limited",
			logger.Component("httpapi"),
			logger.RateLimitKey(key),
			slog.Duration("backoff", result.Backoff),
		)
		rateLimited(w, r, result)
		return
	}

	a.logger.InfoContext(r.Context(), "contact message accepted",
		logger.Component("httpapi"),
		logger.Event("contact"),
		slog.Int("length", len(message)),
	)
	writeData(w, http.StatusAccepted, contactResponse{
		Name:    sanitizer.EscapeHTML(name),
		Email:   email,
		Preview: sanitizer.EscapeHTML(sanitizer.Truncate(message, 140)),
	})
}
