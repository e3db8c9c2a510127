package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func preflight(handler http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	prod := CORSMiddleware([]string{"https://barwy.ua"}, false)(next)
	assert.Equal(t, "https://barwy.ua", preflight(prod, "https://barwy.ua").Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, preflight(prod, "https://evil.example").Header().Get("Access-Control-Allow-Origin"))

	dev := CORSMiddleware([]string{"https://barwy.ua"}, true)(next)
	assert.NotEmpty(t, preflight(dev, "http://localhost:5173").Header().Get("Access-Control-Allow-Origin"))
}
