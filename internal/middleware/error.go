package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse mirrors the failed service envelope so every error body has one shape
type ErrorResponse struct {
	IsSuccess bool     `json:"isSuccess"`
	Message   string   `json:"message"`
	Errors    []string `json:"errors,omitempty"`
}

// RespondWithError sends a failed envelope
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithErrors(w, statusCode, message, nil)
}

// RespondWithErrors sends a failed envelope with itemised errors
func RespondWithErrors(w http.ResponseWriter, statusCode int, message string, errs []string) {
	RespondWithJSON(w, statusCode, ErrorResponse{
		Message: message,
		Errors:  errs,
	})
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.Stack("stack"),
					)

					RespondWithError(w, http.StatusInternalServerError, msgInternal)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
