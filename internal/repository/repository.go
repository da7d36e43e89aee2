package repository

import (
	"context"

	"github.com/stitchwear/storefront/internal/domain"
)

// CatalogFilter defines filter criteria for listing catalog products.
type CatalogFilter struct {
	CategoryID *string
	PriceMin   *int64
	PriceMax   *int64
	Fabric     *string
	Occasion   *string
	Search     *string
	SortBy     string
	Page       int
	PerPage    int
}

// CatalogRepository is the backing catalog store boundary. ListProducts
// returns denormalized product rows with their image, variant, and inventory
// collections attached. ReviewSummaries is consumed opportunistically; its
// failure must not fail an overall fetch.
type CatalogRepository interface {
	// ListProducts returns products matching the filter with the total count.
	ListProducts(ctx context.Context, filter CatalogFilter) ([]domain.Product, int, error)

	// GetByID retrieves one product with its nested collections.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves one product by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// ReviewSummaries returns aggregate review statistics keyed by product id.
	ReviewSummaries(ctx context.Context, productIDs []string) (map[string]domain.ReviewSummary, error)
}

// CategoryRepository defines read operations over catalog categories.
type CategoryRepository interface {
	// GetByID retrieves a category by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Category, error)

	// GetBySlug retrieves a category by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// ListAll returns all active categories ordered for display.
	ListAll(ctx context.Context) ([]domain.Category, error)
}
