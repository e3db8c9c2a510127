package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"barwy-shop/internal/cache"
	"barwy-shop/internal/database"
	"barwy-shop/internal/domain"
	"barwy-shop/internal/models"
	"barwy-shop/internal/repository"
	"barwy-shop/internal/storage"
	"barwy-shop/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService defines the catalog operations on products
type ProductService interface {
	Create(ctx context.Context, vm models.ProductCreateVM) Response
	Update(ctx context.Context, vm models.ProductUpdateVM) Response
	Delete(ctx context.Context, id uuid.UUID) Response
	Restore(ctx context.Context, id uuid.UUID) Response
	GetByID(ctx context.Context, id uuid.UUID) Response
	ListAll(ctx context.Context) Response
	ListByCategory(ctx context.Context, categoryName string) Response
	UploadImage(ctx context.Context, vm models.ProductUploadImageVM) Response
}

type productService struct {
	products         repository.ProductRepository
	tx               database.TxManager
	images           storage.ImageStore
	cache            cache.ProductListCache
	createValidation validation.Validator[models.ProductCreateVM]
	updateValidation validation.Validator[models.ProductUpdateVM]
	logger           *zap.Logger
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	products repository.ProductRepository,
	tx database.TxManager,
	images storage.ImageStore,
	listCache cache.ProductListCache,
	logger *zap.Logger,
) ProductService {
	return &productService{
		products:         products,
		tx:               tx,
		images:           images,
		cache:            listCache,
		createValidation: validation.ProductCreateValidation{},
		updateValidation: validation.ProductUpdateValidation{},
		logger:           logger,
	}
}

// Create validates the payload, then inserts the product and links its categories
// in one transaction. Nothing is persisted unless both steps succeed.
func (s *productService) Create(ctx context.Context, vm models.ProductCreateVM) Response {
	if result := s.createValidation.Validate(vm); !result.IsValid {
		return Fail(KindValidation, msgInvalidData, result.Errors...)
	}

	product := productFromCreate(vm)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.products.Create(ctx, product); err != nil {
			return err
		}
		return s.products.AddToCategories(ctx, product.ID, categoryNames(vm.Categories))
	})
	if err != nil {
		s.logger.Warn("Failed to create product", zap.String("name", vm.Name), zap.Error(err))
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return Fail(KindValidation, msgProductCreateFailed, msgCategoryNotFound)
		}
		return FromError(err, msgProductCreateFailed)
	}

	s.invalidate(ctx)

	created, err := s.products.GetByID(ctx, product.ID)
	if err != nil {
		s.logger.Warn("Failed to reload created product", zap.String("product_id", product.ID.String()), zap.Error(err))
		created = product
	}

	return Ok(msgProductCreated, toProductVM(created))
}

// Update keeps the stored image when the payload carries none and replaces
// category links only when the payload lists categories.
func (s *productService) Update(ctx context.Context, vm models.ProductUpdateVM) Response {
	if result := s.updateValidation.Validate(vm); !result.IsValid {
		return Fail(KindValidation, msgInvalidData, result.Errors...)
	}

	var updated *domain.Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		product, err := s.products.GetByID(ctx, vm.ID)
		if err != nil {
			return err
		}

		product.Name = vm.Name
		product.Article = vm.Article
		product.Price = vm.Price
		product.Size = vm.Size
		if vm.Image != "" {
			product.Image = vm.Image
		}

		if err := s.products.Update(ctx, product); err != nil {
			return err
		}

		if vm.Categories != nil {
			if err := s.products.ReplaceCategories(ctx, product.ID, categoryNames(vm.Categories)); err != nil {
				return err
			}
		}

		updated, err = s.products.GetByID(ctx, product.ID)
		return err
	})
	if err != nil {
		s.logger.Warn("Failed to update product", zap.String("product_id", vm.ID.String()), zap.Error(err))
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return Fail(KindNotFound, msgProductNotFound)
		case errors.Is(err, repository.ErrCategoryNotFound):
			return Fail(KindValidation, msgProductUpdateFailed, msgCategoryNotFound)
		}
		return FromError(err, msgProductUpdateFailed)
	}

	s.invalidate(ctx)

	return Ok(msgProductUpdated, toProductVM(updated))
}

// Delete marks the product as deleted
func (s *productService) Delete(ctx context.Context, id uuid.UUID) Response {
	if err := s.products.Delete(ctx, id); err != nil {
		s.logger.Warn("Failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		return FromError(err, msgProductDeleteFailed)
	}

	s.invalidate(ctx)
	return Ok(msgProductDeleted, nil)
}

// Restore clears the deleted mark
func (s *productService) Restore(ctx context.Context, id uuid.UUID) Response {
	if err := s.products.Restore(ctx, id); err != nil {
		s.logger.Warn("Failed to restore product", zap.String("product_id", id.String()), zap.Error(err))
		return FromError(err, msgProductRestoreFail)
	}

	s.invalidate(ctx)
	return Ok(msgProductRestored, nil)
}

// GetByID returns an active product
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) Response {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrProductNotFound) {
			s.logger.Error("Failed to load product", zap.String("product_id", id.String()), zap.Error(err))
		}
		return FromError(err, msgProductNotFound)
	}

	if product.IsDeleted {
		return Fail(KindNotFound, msgProductNotFound)
	}

	return Ok(msgProductLoaded, toProductVM(product))
}

func (s *productService) ListAll(ctx context.Context) Response {
	products, err := s.cache.GetAll(ctx, func(ctx context.Context) ([]models.ProductVM, error) {
		products, err := s.products.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return toProductVMs(products), nil
	})
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return FromError(err, msgProductsLoadFailed)
	}

	return Ok(msgProductsLoaded, products)
}

// ListByCategory lists active products of a category. An unknown category yields an empty list.
func (s *productService) ListByCategory(ctx context.Context, categoryName string) Response {
	products, err := s.cache.GetByCategory(ctx, categoryName, func(ctx context.Context) ([]models.ProductVM, error) {
		products, err := s.products.ListByCategory(ctx, categoryName)
		if err != nil {
			return nil, err
		}
		return toProductVMs(products), nil
	})
	if err != nil {
		s.logger.Error("Failed to list products by category", zap.String("category", categoryName), zap.Error(err))
		return FromError(err, msgProductsLoadFailed)
	}

	return Ok(msgProductsLoaded, products)
}

// UploadImage stores the file under a random name and points the product at it.
// The new file is removed again when the product cannot be updated.
func (s *productService) UploadImage(ctx context.Context, vm models.ProductUploadImageVM) Response {
	product, err := s.products.GetByID(ctx, vm.ProductID)
	if err != nil {
		return FromError(err, msgProductNotFound)
	}
	if product.IsDeleted {
		return Fail(KindNotFound, msgProductNotFound)
	}

	if len(vm.Data) == 0 {
		return Fail(KindValidation, msgImageUploadFailed, "Зображення: обов'язкове поле")
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(vm.FileName))
	if err := s.images.Save(ctx, name, vm.Data); err != nil {
		s.logger.Error("Failed to store image", zap.String("file", name), zap.Error(err))
		return Fail(KindInternal, msgImageUploadFailed)
	}

	previous := product.Image
	product.Image = name

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.products.Update(ctx, product)
	})
	if err != nil {
		s.logger.Warn("Failed to attach image, removing file", zap.String("file", name), zap.Error(err))
		if rmErr := s.images.Remove(context.WithoutCancel(ctx), name); rmErr != nil {
			s.logger.Error("Failed to remove orphaned image", zap.String("file", name), zap.Error(rmErr))
		}
		return FromError(err, msgImageUploadFailed)
	}

	if previous != "" && previous != name {
		s.removeUnreferenced(ctx, previous)
	}

	s.invalidate(ctx)

	return Ok(msgImageUploaded, toProductVM(product))
}

// removeUnreferenced deletes an image file once no product points at it
func (s *productService) removeUnreferenced(ctx context.Context, image string) {
	refs, err := s.products.CountByImage(ctx, image)
	if err != nil {
		s.logger.Warn("Failed to count image references, keeping file", zap.String("file", image), zap.Error(err))
		return
	}
	if refs > 0 {
		s.logger.Debug("Image still referenced, keeping file", zap.String("file", image), zap.Int("references", refs))
		return
	}
	if err := s.images.Remove(ctx, image); err != nil {
		s.logger.Warn("Failed to remove previous image", zap.String("file", image), zap.Error(err))
	}
}

func (s *productService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
}
