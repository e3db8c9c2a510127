package service

import (
	"barwy-shop/internal/domain"
	"barwy-shop/internal/models"

	"github.com/google/uuid"
)

func toProductVM(p *domain.Product) models.ProductVM {
	categories := make([]models.CategoryVM, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, toCategoryVM(&c))
	}

	return models.ProductVM{
		ID:         p.ID.String(),
		Name:       p.Name,
		Image:      p.Image,
		Article:    p.Article,
		Price:      p.Price,
		Size:       p.Size,
		Categories: categories,
	}
}

func toProductVMs(products []*domain.Product) []models.ProductVM {
	vms := make([]models.ProductVM, 0, len(products))
	for _, p := range products {
		vms = append(vms, toProductVM(p))
	}
	return vms
}

func toCategoryVM(c *domain.Category) models.CategoryVM {
	return models.CategoryVM{ID: c.ID.String(), Name: c.Name}
}

func productFromCreate(vm models.ProductCreateVM) *domain.Product {
	return &domain.Product{
		ID:      uuid.New(),
		Name:    vm.Name,
		Image:   vm.Image,
		Article: vm.Article,
		Price:   vm.Price,
		Size:    vm.Size,
	}
}

func categoryNames(categories []models.CategoryVM) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

func toProfileVM(u *domain.User, roles []string) models.ProfileVM {
	return models.ProfileVM{
		ID:        u.ID.String(),
		Email:     u.Email,
		UserName:  u.UserName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Image:     u.Image,
		Roles:     roles,
	}
}
