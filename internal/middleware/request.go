package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrMalformedBody = errors.New("malformed request body")
	ErrBodyTooLarge  = errors.New("request body too large")
)

// BodyLimitMiddleware caps the size of request bodies
func BodyLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// DecodeJSON decodes a single JSON document from the request body.
// Payload rules are checked later by the service layer.
func DecodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	if decoder.Decode(&struct{}{}) != io.EOF {
		return fmt.Errorf("%w: trailing data", ErrMalformedBody)
	}
	return nil
}

// RespondWithDecodeError reports a DecodeJSON failure
func RespondWithDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		RespondWithError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	RespondWithError(w, http.StatusBadRequest, msgMalformedBody)
}
