package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
)

// MaxNameLength caps category and product names
const MaxNameLength = 50

var (
	ErrNameRequired = errors.New("name required")
	ErrNameTooLong  = errors.New("name must be 50 characters or fewer")
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// normalizeName applies the storage form shared by both entities:
// trimmed and lowercased, so uniqueness checks reduce to equality.
func normalizeName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

// Create validates and persists a new category. The existence pre-check
// gives a clean duplicate error up front; the unique index on the stored
// name remains the authoritative guard if two creates race.
func (s *categoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	normalized, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.FindByName(ctx, normalized)
	if err != nil && err != repository.ErrCategoryNotFound {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrCategoryAlreadyExists
	}

	now := time.Now()
	category := &domain.Category{
		ID:        uuid.New(),
		Name:      normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// List returns all categories ordered by name ascending
func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Update replaces the category's name. A duplicate name surfaces as
// ErrCategoryAlreadyExists through the unique index.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error) {
	normalized, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = normalized
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes a category unconditionally. Products referencing it
// keep the dangling id; deleting a missing id succeeds.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
