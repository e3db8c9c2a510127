// Package models holds the request and response shapes exchanged with the catalog and
// account services.
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryVM is the public projection of a category
type CategoryVM struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name" validate:"required,max=255"`
}

// CategoryCreateVM is the payload for creating a category
type CategoryCreateVM struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ProductVM is the public projection of a product
type ProductVM struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Article    string          `json:"article"`
	Price      decimal.Decimal `json:"price"`
	Size       string          `json:"size"`
	Categories []CategoryVM    `json:"categories"`
}

// ProductCreateVM is the payload for creating a product.
// Categories are referenced by name.
type ProductCreateVM struct {
	Name       string          `json:"name" validate:"required,max=255"`
	Image      string          `json:"image" validate:"max=255"`
	Article    string          `json:"article" validate:"max=20"`
	Price      decimal.Decimal `json:"price" validate:"gte=0"`
	Size       string          `json:"size" validate:"max=20"`
	Categories []CategoryVM    `json:"categories" validate:"dive"`
}

// ProductUpdateVM is the payload for updating a product.
// A nil Categories slice leaves the product's links untouched.
type ProductUpdateVM struct {
	ID         uuid.UUID       `json:"id" validate:"required"`
	Name       string          `json:"name" validate:"required,max=255"`
	Image      string          `json:"image" validate:"max=255"`
	Article    string          `json:"article" validate:"max=20"`
	Price      decimal.Decimal `json:"price" validate:"gte=0"`
	Size       string          `json:"size" validate:"max=20"`
	Categories []CategoryVM    `json:"categories,omitempty" validate:"omitempty,dive"`
}

// ProductUploadImageVM carries an uploaded image for a product
type ProductUploadImageVM struct {
	ProductID uuid.UUID
	FileName  string
	Data      []byte
}

// RegisterVM is the payload for account registration
type RegisterVM struct {
	Email           string `json:"email" validate:"required,email,max=256"`
	Password        string `json:"password" validate:"required,min=6,eqfield=ConfirmPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=6,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"max=255"`
	LastName        string `json:"lastName" validate:"max=255"`
}

// LoginVM is the payload for signing in
type LoginVM struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshVM carries a refresh token
type RefreshVM struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokensVM is returned after login and refresh
type TokensVM struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
}

// ProfileVM is the public projection of a user
type ProfileVM struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	UserName  string   `json:"user_name"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Image     string   `json:"image"`
	Roles     []string `json:"roles"`
}
