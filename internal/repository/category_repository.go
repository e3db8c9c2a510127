package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"barwy-shop/internal/database"
	"barwy-shop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	// FindByName looks a category up by its normalized name
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	Any(ctx context.Context) (bool, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a new category, deriving its normalized name
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, normalized_name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	category.Name = strings.TrimSpace(category.Name)
	category.NormalizedName = domain.NormalizeName(category.Name)

	_, err := database.Executor(ctx, r.db).ExecContext(
		ctx,
		query,
		category.ID,
		category.Name,
		category.NormalizedName,
		category.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "categories_normalized_name_key") {
			return fmt.Errorf("%w: %w", ErrCategoryAlreadyExists, ErrConflict)
		}
		return fmt.Errorf("failed to create category: %w", classify(err))
	}

	return nil
}

// List retrieves all categories
func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, normalized_name, created_at
		FROM categories
		ORDER BY name ASC
	`

	rows, err := database.Executor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", classify(err))
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category := &domain.Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.NormalizedName,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// FindByID retrieves a category by ID
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByName retrieves a category by name, ignoring case
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findOne(ctx, `WHERE normalized_name = $1`, domain.NormalizeName(name))
}

func (r *categoryRepository) findOne(ctx context.Context, where string, arg any) (*domain.Category, error) {
	query := `SELECT id, name, normalized_name, created_at FROM categories ` + where

	category := &domain.Category{}
	err := database.Executor(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&category.ID,
		&category.Name,
		&category.NormalizedName,
		&category.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", classify(err))
	}

	return category, nil
}

// Any reports whether at least one category exists
func (r *categoryRepository) Any(ctx context.Context) (bool, error) {
	var exists bool
	err := database.Executor(ctx, r.db).
		QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories)`).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check categories: %w", classify(err))
	}
	return exists, nil
}
