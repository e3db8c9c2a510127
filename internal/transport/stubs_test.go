package transport

import (
	"context"

	"barwy-shop/internal/models"
	"barwy-shop/internal/service"

	"github.com/google/uuid"
)

// stubProductService records the last call and answers with a canned response
type stubProductService struct {
	resp   service.Response
	called string
	id     uuid.UUID
	name   string
	create models.ProductCreateVM
	update models.ProductUpdateVM
	upload models.ProductUploadImageVM
}

func (s *stubProductService) record(call string) service.Response {
	s.called = call
	return s.resp
}

func (s *stubProductService) Create(ctx context.Context, vm models.ProductCreateVM) service.Response {
	s.create = vm
	return s.record("Create")
}

func (s *stubProductService) Update(ctx context.Context, vm models.ProductUpdateVM) service.Response {
	s.update = vm
	return s.record("Update")
}

func (s *stubProductService) Delete(ctx context.Context, id uuid.UUID) service.Response {
	s.id = id
	return s.record("Delete")
}

func (s *stubProductService) Restore(ctx context.Context, id uuid.UUID) service.Response {
	s.id = id
	return s.record("Restore")
}

func (s *stubProductService) GetByID(ctx context.Context, id uuid.UUID) service.Response {
	s.id = id
	return s.record("GetByID")
}

func (s *stubProductService) ListAll(ctx context.Context) service.Response {
	return s.record("ListAll")
}

func (s *stubProductService) ListByCategory(ctx context.Context, categoryName string) service.Response {
	s.name = categoryName
	return s.record("ListByCategory")
}

func (s *stubProductService) UploadImage(ctx context.Context, vm models.ProductUploadImageVM) service.Response {
	s.upload = vm
	return s.record("UploadImage")
}

type stubCategoryService struct {
	resp   service.Response
	called string
	create models.CategoryCreateVM
}

func (s *stubCategoryService) Create(ctx context.Context, vm models.CategoryCreateVM) service.Response {
	s.called, s.create = "Create", vm
	return s.resp
}

func (s *stubCategoryService) List(ctx context.Context) service.Response {
	s.called = "List"
	return s.resp
}

type stubAccountService struct {
	resp     service.Response
	called   string
	register models.RegisterVM
	login    models.LoginVM
	token    string
	userID   uuid.UUID
}

func (s *stubAccountService) Register(ctx context.Context, vm models.RegisterVM) service.Response {
	s.called, s.register = "Register", vm
	return s.resp
}

func (s *stubAccountService) Login(ctx context.Context, vm models.LoginVM) service.Response {
	s.called, s.login = "Login", vm
	return s.resp
}

func (s *stubAccountService) Refresh(ctx context.Context, vm models.RefreshVM) service.Response {
	s.called, s.token = "Refresh", vm.RefreshToken
	return s.resp
}

func (s *stubAccountService) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) service.Response {
	s.called, s.userID, s.token = "Logout", userID, refreshToken
	return s.resp
}

func (s *stubAccountService) Profile(ctx context.Context, userID uuid.UUID) service.Response {
	s.called, s.userID = "Profile", userID
	return s.resp
}

func (s *stubAccountService) ValidateToken(tokenString string) (*service.Claims, error) {
	return nil, service.ErrInvalidToken
}
