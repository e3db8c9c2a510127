package service

import (
	"context"
	"fmt"

	"barwy-shop/internal/domain"
	"barwy-shop/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 10

// IdentityService manages users, roles and credentials
type IdentityService interface {
	AnyRoles(ctx context.Context) (bool, error)
	CreateRole(ctx context.Context, name string) error
	AnyUsers(ctx context.Context) (bool, error)
	// CreateUser hashes password and stores the user
	CreateUser(ctx context.Context, user *domain.User, password string) error
	AddToRole(ctx context.Context, userID uuid.UUID, roleName string) error
	// PrimaryRole returns the role carried in access tokens. Admin wins over any other role.
	PrimaryRole(ctx context.Context, userID uuid.UUID) (string, error)
	Roles(ctx context.Context, userID uuid.UUID) ([]string, error)
	CheckPassword(user *domain.User, password string) bool
}

type identityService struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	cost   int
	logger *zap.Logger
}

// NewIdentityService creates a new instance of IdentityService
func NewIdentityService(users repository.UserRepository, roles repository.RoleRepository, logger *zap.Logger) IdentityService {
	return &identityService{
		users:  users,
		roles:  roles,
		cost:   BcryptCost,
		logger: logger,
	}
}

func (s *identityService) AnyRoles(ctx context.Context) (bool, error) {
	return s.roles.Any(ctx)
}

func (s *identityService) CreateRole(ctx context.Context, name string) error {
	if err := s.roles.Create(ctx, &domain.Role{Name: name}); err != nil {
		return fmt.Errorf("failed to create role %q: %w", name, err)
	}
	return nil
}

func (s *identityService) AnyUsers(ctx context.Context) (bool, error) {
	return s.users.Any(ctx)
}

func (s *identityService) CreateUser(ctx context.Context, user *domain.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug("User created", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *identityService) AddToRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return fmt.Errorf("failed to find role %q: %w", roleName, err)
	}

	return s.roles.AssignToUser(ctx, userID, role.ID)
}

func (s *identityService) PrimaryRole(ctx context.Context, userID uuid.UUID) (string, error) {
	roles, err := s.roles.RolesForUser(ctx, userID)
	if err != nil {
		return "", err
	}

	for _, r := range roles {
		if r == domain.RoleAdmin {
			return r, nil
		}
	}
	if len(roles) > 0 {
		return roles[0], nil
	}
	return domain.RoleUser, nil
}

func (s *identityService) Roles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.roles.RolesForUser(ctx, userID)
}

func (s *identityService) CheckPassword(user *domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
