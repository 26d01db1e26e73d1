package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hearthwood/site/internal/catalog"
	"github.com/hearthwood/site/internal/models"
)

// ProductRepository defines the persistence operations required by the
// catalog service.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, p models.Product) error
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
	SetFeatured(ctx context.Context, id string, featured bool) error
}

// CatalogService implements catalog reads for the public site and catalog
// writes for the admin CMS.
type CatalogService struct {
	repo ProductRepository
}

// NewCatalogService constructs a CatalogService using the provided
// repository.
func NewCatalogService(repo ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// List returns the full product list ordered by id.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx)
}

// Query returns the filtered and sorted product subset. Empty category or
// collection values are treated as the "all" sentinel.
func (s *CatalogService) Query(ctx context.Context, category, collection, query string, sort catalog.SortOption) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		category = catalog.All
	}
	if collection == "" {
		collection = catalog.All
	}
	return catalog.FilterAndSort(products, category, collection, query, sort), nil
}

// Facets returns the derived category and collection facets.
func (s *CatalogService) Facets(ctx context.Context) (categories, collections []string, err error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return catalog.Categories(products), catalog.Collections(products), nil
}

// Get returns a single product by id, or ErrNotFound.
func (s *CatalogService) Get(ctx context.Context, id string) (models.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

// validateProduct enforces the structural invariants of a product record.
func validateProduct(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	return nil
}

// Create validates and inserts a new product, assigning it a fresh id.
func (s *CatalogService) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}
	p.ID = uuid.NewString()
	if err := s.repo.Create(ctx, p); err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update validates and replaces an existing product.
func (s *CatalogService) Update(ctx context.Context, p models.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := validateProduct(p); err != nil {
		return err
	}
	err := s.repo.Update(ctx, p)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes a product by id, or returns ErrNotFound.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// SetFeatured toggles the featured flag on a product.
func (s *CatalogService) SetFeatured(ctx context.Context, id string, featured bool) error {
	err := s.repo.SetFeatured(ctx, id, featured)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
