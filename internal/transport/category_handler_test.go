package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"barwy-shop/internal/middleware"
	"barwy-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newCategoryRouter(categories service.CategoryService) http.Handler {
	r := chi.NewRouter()
	NewCategoryHandler(categories, zap.NewNop()).RegisterRoutes(r,
		middleware.AuthMiddleware(testSecret, zap.NewNop()),
		middleware.RequireAdmin(zap.NewNop()),
	)
	return r
}

func TestCategoryHandler_ListIsPublic(t *testing.T) {
	stub := &stubCategoryService{resp: service.Ok("ok", nil)}
	w := serve(newCategoryRouter(stub), httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "List", stub.called)
}

func TestCategoryHandler_CreateRequiresAdmin(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"user", "User", http.StatusForbidden},
		{"admin", "Admin", http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCategoryService{resp: service.Ok("ok", nil)}
			req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Portraits"}`))
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, uuid.New(), tt.role))
			}

			w := serve(newCategoryRouter(stub), req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusCreated {
				assert.Equal(t, "Portraits", stub.create.Name)
			} else {
				assert.Empty(t, stub.called)
			}
		})
	}
}

func TestCategoryHandler_DuplicateIsConflict(t *testing.T) {
	stub := &stubCategoryService{resp: service.Fail(service.KindConflict, "exists")}
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Patriotic"}`))
	req.Header.Set("Authorization", bearer(t, uuid.New(), "Admin"))

	w := serve(newCategoryRouter(stub), req)
	assert.Equal(t, http.StatusConflict, w.Code)
}
