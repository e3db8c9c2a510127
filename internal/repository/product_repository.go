package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"barwy-shop/internal/database"
	"barwy-shop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const productColumns = `p.id, p.name, p.image, p.article, p.price, p.size, p.is_deleted, p.created_at, p.updated_at`

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Repository[domain.Product, uuid.UUID]

	// ListActive returns non-deleted products with their categories attached.
	ListActive(ctx context.Context) ([]*domain.Product, error)
	// ListByCategory returns active products linked to the named category.
	// Each product carries its full category list.
	ListByCategory(ctx context.Context, categoryName string) ([]*domain.Product, error)
	AddToCategory(ctx context.Context, productID uuid.UUID, categoryName string) error
	// AddToCategories links the product to every named category or to none of them.
	AddToCategories(ctx context.Context, productID uuid.UUID, categoryNames []string) error
	// ReplaceCategories drops existing links before adding the named ones.
	// Callers must run it inside a transaction.
	ReplaceCategories(ctx context.Context, productID uuid.UUID, categoryNames []string) error
	CountActive(ctx context.Context) (int, error)
	// CountByImage counts products, deleted ones included, that reference the image file
	CountByImage(ctx context.Context, image string) (int, error)
	Any(ctx context.Context) (bool, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, image, article, price, size, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := database.Executor(ctx, r.db).ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Image,
		product.Article,
		product.Price,
		product.Size,
		product.IsDeleted,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", classify(err))
	}

	return nil
}

// Update replaces the mutable fields of an existing product
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, image = $3, article = $4, price = $5, size = $6, updated_at = $7
		WHERE id = $1
	`

	product.UpdatedAt = time.Now().UTC()

	err := execOne(ctx, r.db, ErrProductNotFound, query,
		product.ID,
		product.Name,
		product.Image,
		product.Article,
		product.Price,
		product.Size,
		product.UpdatedAt,
	)
	if err != nil && !errors.Is(err, ErrProductNotFound) {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return err
}

// Delete marks a product as deleted. Deleting twice is a no-op.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.setDeleted(ctx, id, true)
}

// Restore clears the deleted flag
func (r *productRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.setDeleted(ctx, id, false)
}

func (r *productRepository) setDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	query := `UPDATE products SET is_deleted = $2, updated_at = $3 WHERE id = $1`

	err := execOne(ctx, r.db, ErrProductNotFound, query, id, deleted, time.Now().UTC())
	if err != nil && !errors.Is(err, ErrProductNotFound) {
		return fmt.Errorf("failed to toggle product deletion: %w", err)
	}
	return err
}

// GetByID retrieves a product, deleted or not, with its categories
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	product, err := scanProduct(database.Executor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", classify(err))
	}

	if err := r.attachCategories(ctx, []*domain.Product{product}); err != nil {
		return nil, err
	}

	return product, nil
}

// ListActive retrieves all non-deleted products
func (r *productRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.is_deleted = FALSE
		ORDER BY p.created_at ASC, p.id ASC
	`

	rows, err := database.Executor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", classify(err))
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	if err := r.attachCategories(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// ListByCategory joins through the link table filtered by category name and
// rebuilds every product's category list from the same result set.
func (r *productRepository) ListByCategory(ctx context.Context, categoryName string) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `, c.id, c.name, c.normalized_name, c.created_at
		FROM products p
		JOIN category_products filter_link ON filter_link.product_id = p.id
		JOIN categories filter_category ON filter_category.id = filter_link.category_id
		JOIN category_products cp ON cp.product_id = p.id
		JOIN categories c ON c.id = cp.category_id
		WHERE filter_category.normalized_name = $1 AND p.is_deleted = FALSE
		ORDER BY p.created_at ASC, p.id ASC, c.name ASC
	`

	rows, err := database.Executor(ctx, r.db).QueryContext(ctx, query, domain.NormalizeName(categoryName))
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", classify(err))
	}
	defer rows.Close()

	products := []*domain.Product{}
	var current *domain.Product
	for rows.Next() {
		var (
			p domain.Product
			c domain.Category
		)
		err := rows.Scan(
			&p.ID, &p.Name, &p.Image, &p.Article, &p.Price, &p.Size, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
			&c.ID, &c.Name, &c.NormalizedName, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		if current == nil || current.ID != p.ID {
			p.Categories = []domain.Category{}
			current = &p
			products = append(products, current)
		}
		current.Categories = append(current.Categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// AddToCategory links a product to a single category resolved case-insensitively
func (r *productRepository) AddToCategory(ctx context.Context, productID uuid.UUID, categoryName string) error {
	return r.AddToCategories(ctx, productID, []string{categoryName})
}

// AddToCategories resolves all names first and inserts the links with a single
// statement, so an unknown name leaves no link behind. Existing links are kept.
func (r *productRepository) AddToCategories(ctx context.Context, productID uuid.UUID, categoryNames []string) error {
	if len(categoryNames) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(categoryNames))
	requested := make(map[string]string, len(categoryNames))
	for _, name := range categoryNames {
		key := domain.NormalizeName(name)
		if _, seen := requested[key]; seen {
			continue
		}
		requested[key] = name
		normalized = append(normalized, key)
	}

	exec := database.Executor(ctx, r.db)

	rows, err := exec.QueryContext(ctx,
		`SELECT id, normalized_name FROM categories WHERE normalized_name = ANY($1::varchar[])`,
		normalized,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve categories: %w", classify(err))
	}
	defer rows.Close()

	categoryIDs := make([]string, 0, len(normalized))
	for rows.Next() {
		var (
			id  uuid.UUID
			key string
		)
		if err := rows.Scan(&id, &key); err != nil {
			return fmt.Errorf("failed to scan category: %w", err)
		}
		delete(requested, key)
		categoryIDs = append(categoryIDs, id.String())
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating categories: %w", err)
	}

	for _, key := range normalized {
		if name, missing := requested[key]; missing {
			return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
		}
	}

	_, err = exec.ExecContext(ctx, `
		INSERT INTO category_products (category_id, product_id)
		SELECT unnest($1::uuid[]), $2
		ON CONFLICT (category_id, product_id) DO NOTHING
	`, categoryIDs, productID)
	if err != nil {
		return fmt.Errorf("failed to link product to categories: %w", classify(err))
	}

	return nil
}

// ReplaceCategories drops the product's links and adds the named categories
func (r *productRepository) ReplaceCategories(ctx context.Context, productID uuid.UUID, categoryNames []string) error {
	_, err := database.Executor(ctx, r.db).ExecContext(ctx,
		`DELETE FROM category_products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to unlink product categories: %w", classify(err))
	}

	return r.AddToCategories(ctx, productID, categoryNames)
}

// CountActive returns the number of non-deleted products
func (r *productRepository) CountActive(ctx context.Context) (int, error) {
	var total int
	err := database.Executor(ctx, r.db).
		QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE is_deleted = FALSE`).
		Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", classify(err))
	}
	return total, nil
}

func (r *productRepository) CountByImage(ctx context.Context, image string) (int, error) {
	var total int
	err := database.Executor(ctx, r.db).
		QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE image = $1`, image).
		Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count image references: %w", classify(err))
	}
	return total, nil
}

// Any reports whether any product row exists, deleted ones included
func (r *productRepository) Any(ctx context.Context) (bool, error) {
	var exists bool
	err := database.Executor(ctx, r.db).
		QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products)`).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check products: %w", classify(err))
	}
	return exists, nil
}

// attachCategories loads the category links of the given products in one query
func (r *productRepository) attachCategories(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Product, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		p.Categories = []domain.Category{}
		byID[p.ID] = p
		ids = append(ids, p.ID.String())
	}

	query := `
		SELECT cp.product_id, c.id, c.name, c.normalized_name, c.created_at
		FROM category_products cp
		JOIN categories c ON c.id = cp.category_id
		WHERE cp.product_id = ANY($1::uuid[])
		ORDER BY c.name ASC
	`

	rows, err := database.Executor(ctx, r.db).QueryContext(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load product categories: %w", classify(err))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID uuid.UUID
			c         domain.Category
		)
		if err := rows.Scan(&productID, &c.ID, &c.Name, &c.NormalizedName, &c.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan product category: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Image,
		&product.Article,
		&product.Price,
		&product.Size,
		&product.IsDeleted,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}
