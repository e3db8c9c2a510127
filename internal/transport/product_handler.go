package transport

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"barwy-shop/internal/middleware"
	"barwy-shop/internal/models"
	"barwy-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	imageField          = "image"
	msgImageMissing     = "Зображення не передано"
	msgImageTooLarge    = "Розмір зображення перевищує допустимий"
	msgInvalidCategory  = "Некоректна назва категорії"
	multipartMemoryByte = 1 << 20
)

// ProductHandler handles HTTP requests for catalog products
type ProductHandler struct {
	products       service.ProductService
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products service.ProductService, maxUploadBytes int64, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products:       products,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// RegisterRoutes registers the product routes. Writes go through adminOnly.
func (h *ProductHandler) RegisterRoutes(r chi.Router, adminOnly ...func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/category/{name}", h.ListByCategory)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly...)
			r.Post("/", h.Create)
			r.Put("/", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/restore", h.Restore)
			r.Post("/{id}/image", h.UploadImage)
		})
	})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	respond(w, h.products.ListAll(r.Context()), 0)
}

// ListByCategory decodes the name itself: chi returns the escaped form when RawPath is set
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, msgInvalidCategory)
			return
		}
		name = unescaped
	}
	respond(w, h.products.ListByCategory(r.Context(), name), 0)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	respond(w, h.products.GetByID(r.Context(), id), 0)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var vm models.ProductCreateVM
	if err := middleware.DecodeJSON(r, &vm); err != nil {
		h.logger.Debug("Product create decode failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	resp := h.products.Create(r.Context(), vm)
	if resp.IsSuccess {
		h.logger.Info("Product created", zap.String("name", vm.Name))
	}
	respond(w, resp, http.StatusCreated)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var vm models.ProductUpdateVM
	if err := middleware.DecodeJSON(r, &vm); err != nil {
		h.logger.Debug("Product update decode failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}
	respond(w, h.products.Update(r.Context(), vm), 0)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	respond(w, h.products.Delete(r.Context(), id), 0)
}

func (h *ProductHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	respond(w, h.products.Restore(r.Context(), id), 0)
}

// UploadImage accepts a multipart form with the file in the "image" field
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemoryByte); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.RespondWithError(w, http.StatusRequestEntityTooLarge, msgImageTooLarge)
			return
		}
		h.logger.Debug("Multipart parse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, msgImageMissing)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(imageField)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, msgImageMissing)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded image", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, msgImageMissing)
		return
	}

	respond(w, h.products.UploadImage(r.Context(), models.ProductUploadImageVM{
		ProductID: id,
		FileName:  header.Filename,
		Data:      data,
	}), 0)
}
