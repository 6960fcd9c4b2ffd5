package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

const (
	// Price bounds for products
	MinPrice = 1
	MaxPrice = 1_000_000_000_000
)

var (
	ErrPriceOutOfRange    = errors.New("price must be between 1 and 1000000000000")
	ErrInvalidCategoryIDs = errors.New("One or more category ids are invalid")
)

// ExpandedProduct is a product with its category references expanded to
// id/name pairs for read responses.
type ExpandedProduct struct {
	ID         uuid.UUID            `json:"id"`
	Name       string               `json:"name"`
	Price      float64              `json:"price"`
	Categories []domain.CategoryRef `json:"categories"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// UpdateProductParams carries a partial update; nil fields are left
// unchanged on the stored product.
type UpdateProductParams struct {
	Name        *string
	Price       *float64
	CategoryIDs []uuid.UUID
}

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, name string, price float64, categoryIDs []uuid.UUID) (*ExpandedProduct, error)
	List(ctx context.Context) ([]*ExpandedProduct, error)
	Get(ctx context.Context, id uuid.UUID) (*ExpandedProduct, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateProductParams) (*ExpandedProduct, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func validatePrice(price float64) error {
	if price < MinPrice || price > MaxPrice {
		return ErrPriceOutOfRange
	}
	return nil
}

// resolveCategoryIDs batch-loads the given ids and fails when any of
// them does not reference an existing category.
func (s *productService) resolveCategoryIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve category ids: %w", err)
	}
	if len(found) != len(ids) {
		return ErrInvalidCategoryIDs
	}
	return nil
}

// expand replaces stored category ids with id/name pairs carrying the
// current category names. A dangling id stays in place with an empty
// name so readers still see the reference.
func (s *productService) expand(ctx context.Context, products ...*domain.Product) ([]*ExpandedProduct, error) {
	idSet := map[uuid.UUID]struct{}{}
	allIDs := []uuid.UUID{}
	for _, p := range products {
		for _, id := range p.CategoryIDs {
			if _, seen := idSet[id]; !seen {
				idSet[id] = struct{}{}
				allIDs = append(allIDs, id)
			}
		}
	}

	names := map[uuid.UUID]string{}
	if len(allIDs) > 0 {
		categories, err := s.categoryRepo.FindByIDs(ctx, allIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to expand categories: %w", err)
		}
		for _, c := range categories {
			names[c.ID] = c.Name
		}
	}

	expanded := make([]*ExpandedProduct, 0, len(products))
	for _, p := range products {
		refs := make([]domain.CategoryRef, 0, len(p.CategoryIDs))
		for _, id := range p.CategoryIDs {
			refs = append(refs, domain.CategoryRef{ID: id, Name: names[id]})
		}
		expanded = append(expanded, &ExpandedProduct{
			ID:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Categories: refs,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
		})
	}

	return expanded, nil
}

// Create validates and persists a new product, returning it with
// categories expanded. Category ids are resolved in one batch before the
// write; nothing is persisted when any id is invalid.
func (s *productService) Create(ctx context.Context, name string, price float64, categoryIDs []uuid.UUID) (*ExpandedProduct, error) {
	normalized, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	if err := validatePrice(price); err != nil {
		return nil, err
	}

	if err := s.resolveCategoryIDs(ctx, categoryIDs); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByName(ctx, normalized)
	if err != nil && err != repository.ErrProductNotFound {
		return nil, fmt.Errorf("failed to check existing product: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrProductAlreadyExists
	}

	if categoryIDs == nil {
		categoryIDs = []uuid.UUID{}
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        normalized,
		Price:       price,
		CategoryIDs: categoryIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.expandOne(ctx, product)
}

// List returns every product with categories expanded. Names are
// resolved with a single batch lookup across the whole result set.
func (s *productService) List(ctx context.Context) ([]*ExpandedProduct, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return s.expand(ctx, products...)
}

// Get returns one product with categories expanded. A missing id is an
// empty success, not an error: callers receive (nil, nil).
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*ExpandedProduct, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return s.expandOne(ctx, product)
}

// Update applies the supplied fields only; anything nil keeps its stored
// value. Supplied category ids are re-validated with the same batch rule
// as create.
func (s *productService) Update(ctx context.Context, id uuid.UUID, params UpdateProductParams) (*ExpandedProduct, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		normalized, err := normalizeName(*params.Name)
		if err != nil {
			return nil, err
		}
		product.Name = normalized
	}

	if params.Price != nil {
		if err := validatePrice(*params.Price); err != nil {
			return nil, err
		}
		product.Price = *params.Price
	}

	if params.CategoryIDs != nil {
		if err := s.resolveCategoryIDs(ctx, params.CategoryIDs); err != nil {
			return nil, err
		}
		product.CategoryIDs = params.CategoryIDs
	}

	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.expandOne(ctx, product)
}

// Delete removes a product. Deleting a missing id succeeds.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *productService) expandOne(ctx context.Context, product *domain.Product) (*ExpandedProduct, error) {
	expanded, err := s.expand(ctx, product)
	if err != nil {
		return nil, err
	}
	return expanded[0], nil
}
