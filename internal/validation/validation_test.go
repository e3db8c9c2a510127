package validation

import (
	"strings"
	"testing"

	"barwy-shop/internal/models"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validProduct() models.ProductCreateVM {
	return models.ProductCreateVM{
		Name:       "Все буде Україна",
		Image:      "5jghk0xy.iff.jpg",
		Article:    "0049Т1",
		Price:      decimal.NewFromInt(245),
		Size:       "40x50",
		Categories: []models.CategoryVM{{Name: "Патріотичні"}},
	}
}

func TestProductCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(vm *models.ProductCreateVM)
		valid   bool
		message string
	}{
		{"valid", func(vm *models.ProductCreateVM) {}, true, ""},
		{"zero price", func(vm *models.ProductCreateVM) { vm.Price = decimal.Zero }, true, ""},
		{"no categories", func(vm *models.ProductCreateVM) { vm.Categories = nil }, true, ""},
		{"missing name", func(vm *models.ProductCreateVM) { vm.Name = "" }, false, "Назва: обов'язкове поле"},
		{"long name", func(vm *models.ProductCreateVM) { vm.Name = strings.Repeat("я", 256) }, false, "Назва: максимальна довжина 255 символів"},
		{"long article", func(vm *models.ProductCreateVM) { vm.Article = strings.Repeat("1", 21) }, false, "Артикул: максимальна довжина 20 символів"},
		{"long size", func(vm *models.ProductCreateVM) { vm.Size = strings.Repeat("x", 21) }, false, "Розмір: максимальна довжина 20 символів"},
		{"negative price", func(vm *models.ProductCreateVM) { vm.Price = decimal.RequireFromString("-0.01") }, false, "Ціна: значення має бути не менше 0"},
		{"three decimal places", func(vm *models.ProductCreateVM) { vm.Price = decimal.RequireFromString("12.345") }, false, "Ціна: не більше 2 знаків після коми"},
		{"tenth of a cent", func(vm *models.ProductCreateVM) { vm.Price = decimal.RequireFromString("0.001") }, false, "Ціна: не більше 2 знаків після коми"},
		{"trailing zero", func(vm *models.ProductCreateVM) { vm.Price = decimal.RequireFromString("12.340") }, true, ""},
		{"largest price", func(vm *models.ProductCreateVM) { vm.Price = decimal.RequireFromString("9999999999999999.99") }, true, ""},
		{"oversized price", func(vm *models.ProductCreateVM) { vm.Price = decimal.New(1, 17) }, false, "Ціна: значення має бути менше 10000000000000000"},
		{"empty category", func(vm *models.ProductCreateVM) { vm.Categories = []models.CategoryVM{{Name: ""}} }, false, "Категорія: обов'язкове поле"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := validProduct()
			tt.mutate(&vm)

			result := ProductCreateValidation{}.Validate(vm)

			assert.Equal(t, tt.valid, result.IsValid)
			if tt.valid {
				assert.Empty(t, result.Errors)
			} else {
				assert.Contains(t, result.Errors, tt.message)
			}
		})
	}
}

func TestProperty_NameLengthBoundary(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("names are valid exactly when they have 1..255 runes", prop.ForAll(
		func(n int) bool {
			vm := validProduct()
			vm.Name = strings.Repeat("ї", n)
			result := ProductCreateValidation{}.Validate(vm)
			return result.IsValid == (n >= 1 && n <= 255)
		},
		gen.IntRange(0, 300),
	))

	properties.Property("prices are valid exactly when non-negative", prop.ForAll(
		func(cents int64) bool {
			vm := validProduct()
			vm.Price = decimal.New(cents, -2)
			return ProductCreateValidation{}.Validate(vm).IsValid == (cents >= 0)
		},
		gen.Int64Range(-100000, 100000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductUpdateValidation_RequiresID(t *testing.T) {
	vm := models.ProductUpdateVM{Name: "Тризуб", Price: decimal.NewFromInt(245)}

	result := ProductUpdateValidation{}.Validate(vm)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Ідентифікатор: обов'язкове поле")

	vm.ID = uuid.New()
	assert.True(t, ProductUpdateValidation{}.Validate(vm).IsValid)

	vm.Price = decimal.RequireFromString("245.005")
	result = ProductUpdateValidation{}.Validate(vm)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Ціна: не більше 2 знаків після коми")
}

func TestProperty_PriceScale(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("prices with sub-cent digits are rejected", prop.ForAll(
		func(mills int64) bool {
			vm := validProduct()
			vm.Price = decimal.New(mills, -3)
			return ProductCreateValidation{}.Validate(vm).IsValid == (mills%10 == 0)
		},
		gen.Int64Range(0, 10000000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCategoryCreateValidation(t *testing.T) {
	assert.True(t, CategoryCreateValidation{}.Validate(models.CategoryCreateVM{Name: "Пейзажі"}).IsValid)
	assert.False(t, CategoryCreateValidation{}.Validate(models.CategoryCreateVM{}).IsValid)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		vm    models.RegisterVM
		valid bool
	}{
		{"valid", models.RegisterVM{Email: "user@gmail.com", Password: "123456", ConfirmPassword: "123456"}, true},
		{"bad email", models.RegisterVM{Email: "user", Password: "123456", ConfirmPassword: "123456"}, false},
		{"short password", models.RegisterVM{Email: "user@gmail.com", Password: "123", ConfirmPassword: "123"}, false},
		{"mismatch", models.RegisterVM{Email: "user@gmail.com", Password: "123456", ConfirmPassword: "654321"}, false},
		{"missing confirm", models.RegisterVM{Email: "user@gmail.com", Password: "123456"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RegisterValidation{}.Validate(tt.vm)
			assert.Equal(t, tt.valid, result.IsValid, result.Errors)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	assert.True(t, LoginValidation{}.Validate(models.LoginVM{Email: "admin@gmail.com", Password: "x"}).IsValid)

	result := LoginValidation{}.Validate(models.LoginVM{})
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 2)
}
