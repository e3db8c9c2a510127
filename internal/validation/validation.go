// Package validation checks incoming payloads before any persistence work happens.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"barwy-shop/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result is the outcome of validating a payload
type Result struct {
	IsValid bool
	Errors  []string
}

// Validator checks a payload of type T
type Validator[T any] interface {
	Validate(model T) Result
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		if id, ok := v.Interface().(uuid.UUID); ok && id != uuid.Nil {
			return id.String()
		}
		return ""
	}, uuid.UUID{})

	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		checkPrice(sl, sl.Current().Interface().(models.ProductCreateVM).Price)
	}, models.ProductCreateVM{})
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		checkPrice(sl, sl.Current().Interface().(models.ProductUpdateVM).Price)
	}, models.ProductUpdateVM{})
}

// Prices are stored as NUMERIC(18,2)
const priceScale = 2

var maxPrice = decimal.New(1, 16)

func checkPrice(sl validator.StructLevel, price decimal.Decimal) {
	if price.Exponent() < -priceScale && !price.Equal(price.Round(priceScale)) {
		sl.ReportError(price, "Price", "Price", "price_scale", fmt.Sprint(priceScale))
	}
	if price.GreaterThanOrEqual(maxPrice) {
		sl.ReportError(price, "Price", "Price", "price_max", maxPrice.String())
	}
}

var fieldLabels = map[string]string{
	"Name":            "Назва",
	"Image":           "Зображення",
	"Article":         "Артикул",
	"Price":           "Ціна",
	"Size":            "Розмір",
	"ID":              "Ідентифікатор",
	"Email":           "Електронна пошта",
	"Password":        "Пароль",
	"ConfirmPassword": "Підтвердження пароля",
	"FirstName":       "Ім'я",
	"LastName":        "Прізвище",
	"RefreshToken":    "Токен оновлення",
}

func check(model any) Result {
	err := validate.Struct(model)
	if err == nil {
		return Result{IsValid: true}
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return Result{Errors: []string{"Некоректні дані"}}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, message(fe))
	}
	return Result{Errors: messages}
}

func label(fe validator.FieldError) string {
	if strings.Contains(fe.Namespace(), ".Categories[") {
		return "Категорія"
	}
	if l, ok := fieldLabels[fe.Field()]; ok {
		return l
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	l := label(fe)
	switch fe.Tag() {
	case "required":
		return l + ": обов'язкове поле"
	case "email":
		return l + ": некоректний формат"
	case "min":
		return fmt.Sprintf("%s: мінімальна довжина %s символів", l, fe.Param())
	case "max":
		return fmt.Sprintf("%s: максимальна довжина %s символів", l, fe.Param())
	case "gte":
		return fmt.Sprintf("%s: значення має бути не менше %s", l, fe.Param())
	case "price_scale":
		return fmt.Sprintf("%s: не більше %s знаків після коми", l, fe.Param())
	case "price_max":
		return fmt.Sprintf("%s: значення має бути менше %s", l, fe.Param())
	case "eqfield":
		return l + ": паролі не співпадають"
	default:
		return l + ": некоректне значення"
	}
}

// ProductCreateValidation validates new products
type ProductCreateValidation struct{}

func (ProductCreateValidation) Validate(model models.ProductCreateVM) Result {
	return check(model)
}

// ProductUpdateValidation validates product updates
type ProductUpdateValidation struct{}

func (ProductUpdateValidation) Validate(model models.ProductUpdateVM) Result {
	return check(model)
}

// CategoryCreateValidation validates new categories
type CategoryCreateValidation struct{}

func (CategoryCreateValidation) Validate(model models.CategoryCreateVM) Result {
	return check(model)
}

// RegisterValidation validates registration: both passwords at least six characters and equal
type RegisterValidation struct{}

func (RegisterValidation) Validate(model models.RegisterVM) Result {
	return check(model)
}

// LoginValidation validates sign-in payloads
type LoginValidation struct{}

func (LoginValidation) Validate(model models.LoginVM) Result {
	return check(model)
}

// RefreshValidation validates token refresh payloads
type RefreshValidation struct{}

func (RefreshValidation) Validate(model models.RefreshVM) Result {
	return check(model)
}
