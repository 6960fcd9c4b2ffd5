package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product already exists")
)

// ProductRepository defines the interface for product data access.
// Category references live in the product_categories link table and are
// written together with the product row in a single transaction.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product and its category links in one transaction
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (id, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = tx.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Price,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	if err := insertCategoryLinks(ctx, tx, product.ID, product.CategoryIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// List retrieves every product with its category ids in stored order
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, created_at, updated_at
		FROM products
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	byID := map[uuid.UUID]*domain.Product{}
	for rows.Next() {
		product := &domain.Product{CategoryIDs: []uuid.UUID{}}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
		byID[product.ID] = product
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	linkQuery := `
		SELECT product_id, category_id
		FROM product_categories
		ORDER BY product_id, position ASC
	`

	linkRows, err := r.db.QueryContext(ctx, linkQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list category links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var productID, categoryID uuid.UUID
		if err := linkRows.Scan(&productID, &categoryID); err != nil {
			return nil, fmt.Errorf("failed to scan category link: %w", err)
		}
		if product, ok := byID[productID]; ok {
			product.CategoryIDs = append(product.CategoryIDs, categoryID)
		}
	}

	if err = linkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category links: %w", err)
	}

	return products, nil
}

// FindByID retrieves a product by ID with its category ids in stored order
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, price, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{CategoryIDs: []uuid.UUID{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	linkQuery := `
		SELECT category_id
		FROM product_categories
		WHERE product_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, linkQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID uuid.UUID
		if err := rows.Scan(&categoryID); err != nil {
			return nil, fmt.Errorf("failed to scan category link: %w", err)
		}
		product.CategoryIDs = append(product.CategoryIDs, categoryID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category links: %w", err)
	}

	return product, nil
}

// FindByName retrieves a product by its stored (trimmed, lowercased) name
func (r *productRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `
		SELECT id
		FROM products
		WHERE name = $1
	`

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query, name).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}

	return r.FindByID(ctx, id)
}

// Update replaces the product row and its category links in one transaction
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE products
		SET name = $2, price = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := tx.ExecContext(ctx, query, product.ID, product.Name, product.Price, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("failed to clear category links: %w", err)
	}

	if err := insertCategoryLinks(ctx, tx, product.ID, product.CategoryIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes a product; its category links go with it. Deleting a
// missing id is not an error.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// insertCategoryLinks writes the ordered category references for a product.
// position preserves insertion order; category_id has no foreign key so a
// link may outlive its category.
func insertCategoryLinks(ctx context.Context, tx *sql.Tx, productID uuid.UUID, categoryIDs []uuid.UUID) error {
	query := `
		INSERT INTO product_categories (product_id, category_id, position)
		VALUES ($1, $2, $3)
	`

	for i, categoryID := range categoryIDs {
		if _, err := tx.ExecContext(ctx, query, productID, categoryID, i); err != nil {
			return fmt.Errorf("failed to link category: %w", err)
		}
	}

	return nil
}
