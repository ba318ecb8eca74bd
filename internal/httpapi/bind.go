package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// decodeJSON reads exactly one JSON object from the body into v. Unknown
// fields, trailing data and bodies over limit bytes are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: expected application/json", ErrUnsupportedMediaType)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return ErrBodyTooLarge
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		default:
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
	}
	return nil
}

// bindError writes the response for a decodeJSON failure.
func bindError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedMediaType):
		writeError(w, http.StatusUnsupportedMediaType, codeUnsupportedMedia, err.Error())
	case errors.Is(err, ErrBodyTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, codeBodyTooLarge, err.Error())
	default:
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
	}
}
