package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestDecodeJSON(t *testing.T) {
	var p payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Тризуб"}`))
	require.NoError(t, DecodeJSON(req, &p))
	assert.Equal(t, "Тризуб", p.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.ErrorIs(t, DecodeJSON(req, &p), ErrMalformedBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	assert.ErrorIs(t, DecodeJSON(req, &p), ErrMalformedBody)
}

func TestBodyLimitMiddleware(t *testing.T) {
	var decodeErr error
	handler := BodyLimitMiddleware(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p payload
		decodeErr = DecodeJSON(r, &p)
		if decodeErr != nil {
			RespondWithDecodeError(w, decodeErr)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`)))

	assert.ErrorIs(t, decodeErr, ErrBodyTooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
