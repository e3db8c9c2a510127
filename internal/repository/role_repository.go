package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"barwy-shop/internal/database"
	"barwy-shop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleAlreadyExists = errors.New("role already exists")
)

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Any(ctx context.Context) (bool, error)
	AssignToUser(ctx context.Context, userID, roleID uuid.UUID) error
	RolesForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type roleRepository struct {
	db *sql.DB
}

// NewRoleRepository creates a new instance of RoleRepository
func NewRoleRepository(db *sql.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	role.NormalizedName = domain.NormalizeName(role.Name)

	_, err := database.Executor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO roles (id, name, normalized_name) VALUES ($1, $2, $3)`,
		role.ID, role.Name, role.NormalizedName,
	)
	if err != nil {
		if isUniqueViolation(err, "roles_normalized_name_key") {
			return fmt.Errorf("%w: %w", ErrRoleAlreadyExists, ErrConflict)
		}
		return fmt.Errorf("failed to create role: %w", classify(err))
	}
	return nil
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	role := &domain.Role{}
	err := database.Executor(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, name, normalized_name FROM roles WHERE normalized_name = $1`,
		domain.NormalizeName(name),
	).Scan(&role.ID, &role.Name, &role.NormalizedName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", classify(err))
	}
	return role, nil
}

func (r *roleRepository) Any(ctx context.Context) (bool, error) {
	var exists bool
	err := database.Executor(ctx, r.db).
		QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM roles)`).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check roles: %w", classify(err))
	}
	return exists, nil
}

// AssignToUser links a user to a role; assigning twice is a no-op
func (r *roleRepository) AssignToUser(ctx context.Context, userID, roleID uuid.UUID) error {
	_, err := database.Executor(ctx, r.db).ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, roleID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", classify(err))
	}
	return nil
}

// RolesForUser returns the role names of a user ordered by name
func (r *roleRepository) RolesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := database.Executor(ctx, r.db).QueryContext(ctx, `
		SELECT r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user roles: %w", classify(err))
	}
	defer rows.Close()

	roles := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}
