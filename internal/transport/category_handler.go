package transport

import (
	"net/http"

	"barwy-shop/internal/middleware"
	"barwy-shop/internal/models"
	"barwy-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	categories service.CategoryService
	logger     *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

// RegisterRoutes registers the category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, adminOnly ...func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(adminOnly...).Post("/", h.Create)
	})
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	respond(w, h.categories.List(r.Context()), 0)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var vm models.CategoryCreateVM
	if err := middleware.DecodeJSON(r, &vm); err != nil {
		h.logger.Debug("Category create decode failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}
	respond(w, h.categories.Create(r.Context(), vm), http.StatusCreated)
}
