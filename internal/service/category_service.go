package service

import (
	"context"
	"errors"
	"strings"

	"barwy-shop/internal/domain"
	"barwy-shop/internal/models"
	"barwy-shop/internal/repository"
	"barwy-shop/internal/validation"

	"go.uber.org/zap"
)

// CategoryService defines the catalog operations on categories
type CategoryService interface {
	Create(ctx context.Context, vm models.CategoryCreateVM) Response
	List(ctx context.Context) Response
}

type categoryService struct {
	categories repository.CategoryRepository
	validation validation.Validator[models.CategoryCreateVM]
	logger     *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categories repository.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		validation: validation.CategoryCreateValidation{},
		logger:     logger,
	}
}

func (s *categoryService) Create(ctx context.Context, vm models.CategoryCreateVM) Response {
	vm.Name = strings.TrimSpace(vm.Name)
	if result := s.validation.Validate(vm); !result.IsValid {
		return Fail(KindValidation, msgInvalidData, result.Errors...)
	}

	category := domain.NewCategory(vm.Name)
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return Fail(KindConflict, msgCategoryAlreadyExists)
		}
		s.logger.Error("Failed to create category", zap.String("name", vm.Name), zap.Error(err))
		return FromError(err, msgCategoryCreateFailed)
	}

	return Ok(msgCategoryCreated, toCategoryVM(category))
}

func (s *categoryService) List(ctx context.Context) Response {
	categories, err := s.categories.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return FromError(err, msgCategoriesLoaded)
	}

	vms := make([]models.CategoryVM, 0, len(categories))
	for _, c := range categories {
		vms = append(vms, toCategoryVM(c))
	}
	return Ok(msgCategoriesLoaded, vms)
}
