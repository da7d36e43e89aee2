package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/stitchwear/storefront/internal/cache"
	"github.com/stitchwear/storefront/internal/catalog"
	"github.com/stitchwear/storefront/internal/domain"
	"github.com/stitchwear/storefront/internal/repository"
	apperrors "github.com/stitchwear/storefront/pkg/errors"
)

// SnapshotStore persists the last-known-good catalog page used as a fallback
// when the backing store is unreachable.
type SnapshotStore interface {
	Save(ctx context.Context, page *domain.CatalogPage) error
	Load(ctx context.Context) (*domain.CatalogPage, error)
}

// EventPublisher publishes catalog domain events. Publishing is always
// best-effort; failures are logged, never returned to callers.
type EventPublisher interface {
	PublishCartItemAdded(ctx context.Context, item *domain.LineItem) error
	PublishCatalogRefreshed(ctx context.Context, page *domain.CatalogPage) error
}

// CatalogQuery holds the caller-facing filter for a catalog listing.
type CatalogQuery struct {
	Category string
	PriceMin *int64
	PriceMax *int64
	Fabric   string
	Occasion string
	Search   string
	SortBy   string
	Page     int
	PerPage  int
}

// AddToCartInput holds the parameters for resolving a cart line item.
type AddToCartInput struct {
	ProductID string
	Size      string
	Color     string
	Quantity  int
}

// AvailabilityOption is one size or color value with its matrix predicates.
type AvailabilityOption struct {
	Value     string `json:"value"`
	Exists    bool   `json:"exists"`
	InStock   bool   `json:"in_stock"`
	Available bool   `json:"available"`
}

// Availability answers what the UI may enable for a partial selection, plus
// the price and stock the selection itself resolves to.
type Availability struct {
	ProductID string               `json:"product_id"`
	Sizes     []AvailabilityOption `json:"sizes"`
	Colors    []AvailabilityOption `json:"colors"`
	Price     int64                `json:"price"`
	Status    domain.StockStatus   `json:"status"`
	Quantity  int                  `json:"quantity"`
}

// CatalogService is the fetch orchestrator: it issues one backing-store query
// per filter or pagination change, assembles raw rows into resolved views,
// and publishes the result atomically. A monotonic generation counter
// suppresses stale fetches: a response whose captured generation has been
// passed is never published, though it is still returned to its own caller.
type CatalogService struct {
	repo         repository.CatalogRepository
	categoryRepo repository.CategoryRepository
	categories   *cache.CategoryCache
	snapshots    SnapshotStore
	events       EventPublisher
	logger       *slog.Logger

	generation atomic.Uint64

	mu           sync.RWMutex
	current      *domain.CatalogPage
	publishedGen uint64
}

// NewCatalogService creates the orchestrator. snapshots and events may be nil
// when the corresponding backend is not configured.
func NewCatalogService(
	repo repository.CatalogRepository,
	categoryRepo repository.CategoryRepository,
	categories *cache.CategoryCache,
	snapshots SnapshotStore,
	events EventPublisher,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		repo:         repo,
		categoryRepo: categoryRepo,
		categories:   categories,
		snapshots:    snapshots,
		events:       events,
		logger:       logger,
	}
}

// List fetches, resolves, and publishes one catalog page. Transport failures
// degrade to the last-known-good snapshot (then the built-in sample catalog)
// with a non-fatal log; a category lookup miss yields a valid empty page.
func (s *CatalogService) List(ctx context.Context, query CatalogQuery) (*domain.CatalogPage, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PerPage <= 0 {
		query.PerPage = 20
	}
	if query.PerPage > 100 {
		query.PerPage = 100
	}

	gen := s.generation.Add(1)
	catalogFetchesTotal.Inc()

	filter := repository.CatalogFilter{
		SortBy:  query.SortBy,
		Page:    query.Page,
		PerPage: query.PerPage,
	}
	filter.PriceMin = query.PriceMin
	filter.PriceMax = query.PriceMax
	if query.Fabric != "" {
		filter.Fabric = &query.Fabric
	}
	if query.Occasion != "" {
		filter.Occasion = &query.Occasion
	}
	if query.Search != "" {
		filter.Search = &query.Search
	}

	if query.Category != "" {
		categoryID, ok, err := s.categories.Resolve(ctx, query.Category)
		if err != nil {
			s.logger.ErrorContext(ctx, "category lookup failed, treating filter as unmatched",
				slog.String("category", query.Category),
				slog.String("error", err.Error()),
			)
			ok = false
		}
		if !ok {
			catalogCategoryMissesTotal.Inc()
			return emptyPage(query), nil
		}
		filter.CategoryID = &categoryID
	}

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		catalogFallbacksTotal.Inc()
		s.logger.ErrorContext(ctx, "catalog query failed, serving fallback",
			slog.String("error", err.Error()),
		)
		return s.fallbackPage(ctx, query), nil
	}

	page := s.assemble(ctx, products, total, query)

	if !s.publish(ctx, page, gen) {
		catalogStaleDiscardsTotal.Inc()
		s.logger.DebugContext(ctx, "discarding stale fetch result",
			slog.Uint64("generation", gen),
			slog.Uint64("latest", s.generation.Load()),
		)
	}
	return page, nil
}

// Current returns the most recently published catalog page, or nil before the
// first successful publish.
func (s *CatalogService) Current() *domain.CatalogPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// GetProduct resolves one product by UUID or slug through the same engine the
// listing uses; there is no second resolution path.
func (s *CatalogService) GetProduct(ctx context.Context, idOrSlug string) (*domain.ResolvedProduct, error) {
	product, err := s.loadProduct(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	summaries := s.reviewSummaries(ctx, []string{product.ID})
	view := catalog.Resolve(product, summaries[product.ID])
	return &view, nil
}

// Availability evaluates the size/color matrix for a partial selection.
func (s *CatalogService) Availability(ctx context.Context, idOrSlug, size, color string) (*Availability, error) {
	product, err := s.loadProduct(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	m := catalog.NewMatrix(product)
	sel := catalog.Selection{Size: size, Color: color}

	avail := &Availability{ProductID: product.ID}
	for _, sz := range m.Sizes() {
		avail.Sizes = append(avail.Sizes, AvailabilityOption{
			Value:     sz,
			Exists:    m.SizeExists(sz, color),
			InStock:   m.SizeInStock(sz, color),
			Available: m.SizeAvailable(sz, color),
		})
	}
	for _, c := range m.Colors() {
		avail.Colors = append(avail.Colors, AvailabilityOption{
			Value:     c,
			Exists:    m.ColorExists(c, size),
			InStock:   m.ColorInStock(c, size),
			Available: m.ColorAvailable(c, size),
		})
	}

	avail.Price = catalog.ResolvePrice(product, catalog.MatchVariant(product, sel))
	avail.Status, avail.Quantity = catalog.ResolveStock(product, sel)
	return avail, nil
}

// AddToCart resolves a fully-populated line item for the cart manager. Every
// field is resolved before handoff; sentinels stand in where a value is
// absent. Selections that fail the availability predicates are rejected.
func (s *CatalogService) AddToCart(ctx context.Context, input AddToCartInput) (*domain.LineItem, error) {
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	product, err := s.loadProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	m := catalog.NewMatrix(product)
	sel := catalog.Selection{Size: input.Size, Color: input.Color}

	if input.Size != "" && !m.SizeAvailable(input.Size, input.Color) {
		return nil, apperrors.Unavailable(fmt.Sprintf("size %q is not available", input.Size))
	}
	if input.Color != "" && !m.ColorAvailable(input.Color, input.Size) {
		return nil, apperrors.Unavailable(fmt.Sprintf("color %q is not available", input.Color))
	}

	var variant *domain.ProductVariant
	if len(product.Variants) > 0 {
		if sel.IsEmpty() {
			return nil, apperrors.Unavailable("a size or color selection is required")
		}
		variant = catalog.MatchVariant(product, sel)
		if variant == nil {
			return nil, apperrors.Unavailable("no variant matches the selection")
		}
	}

	status, qty := catalog.ResolveStock(product, sel)
	if status == domain.StockStatusOutOfStock {
		return nil, apperrors.Unavailable("the selection is out of stock")
	}
	if input.Quantity > qty {
		return nil, apperrors.Unavailable(fmt.Sprintf("only %d in stock", qty))
	}

	item := s.buildLineItem(product, variant, sel, input.Quantity)

	if s.events != nil {
		if err := s.events.PublishCartItemAdded(ctx, item); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.item_added event",
				slog.String("product_id", item.ProductID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "cart line item resolved",
		slog.String("product_id", item.ProductID),
		slog.String("variant_id", item.VariantID),
		slog.Int64("price", item.Price),
	)

	return item, nil
}

// ListCategories returns the active category list for navigation.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// InvalidateCategoryCache discards the category id cache; the next lookup
// rebuilds it.
func (s *CatalogService) InvalidateCategoryCache() {
	s.categories.Invalidate()
}

// --- internals ---

func (s *CatalogService) loadProduct(ctx context.Context, idOrSlug string) (*domain.Product, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		product, err := s.repo.GetByID(ctx, idOrSlug)
		if err != nil {
			return nil, fmt.Errorf("get product by id: %w", err)
		}
		return product, nil
	}

	product, err := s.repo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return product, nil
}

// reviewSummaries loads review aggregates, degrading to zero values on
// failure rather than failing the fetch.
func (s *CatalogService) reviewSummaries(ctx context.Context, productIDs []string) map[string]domain.ReviewSummary {
	summaries, err := s.repo.ReviewSummaries(ctx, productIDs)
	if err != nil {
		s.logger.WarnContext(ctx, "review aggregate lookup failed, defaulting to zero",
			slog.String("error", err.Error()),
		)
		return map[string]domain.ReviewSummary{}
	}
	return summaries
}

func (s *CatalogService) assemble(ctx context.Context, products []domain.Product, total int, query CatalogQuery) *domain.CatalogPage {
	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	summaries := s.reviewSummaries(ctx, ids)

	views := make([]domain.ResolvedProduct, len(products))
	for i := range products {
		views[i] = catalog.Resolve(&products[i], summaries[products[i].ID])
	}

	return &domain.CatalogPage{
		Products:   views,
		TotalCount: total,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages(total, query.PerPage),
	}
}

// publish installs the page as current, records it as last-known-good, and
// emits catalog.refreshed, but only when gen is newer than the last published
// generation. The gate and the swap happen under one lock so a slow fetch can
// never overwrite a newer page after passing a separate check. A rejected
// page causes no side effects at all.
func (s *CatalogService) publish(ctx context.Context, page *domain.CatalogPage, gen uint64) bool {
	s.mu.Lock()
	if gen <= s.publishedGen {
		s.mu.Unlock()
		return false
	}
	s.publishedGen = gen
	s.current = page
	s.mu.Unlock()

	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, page); err != nil {
			s.logger.WarnContext(ctx, "failed to save catalog snapshot",
				slog.String("error", err.Error()),
			)
		}
	}

	if s.events != nil {
		if err := s.events.PublishCatalogRefreshed(ctx, page); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish catalog.refreshed event",
				slog.String("error", err.Error()),
			)
		}
	}

	return true
}

// fallbackPage serves the last-known-good snapshot, then the built-in sample
// catalog, so the caller never renders empty on a transport failure.
func (s *CatalogService) fallbackPage(ctx context.Context, query CatalogQuery) *domain.CatalogPage {
	if s.snapshots != nil {
		page, err := s.snapshots.Load(ctx)
		if err == nil {
			return page
		}
		s.logger.WarnContext(ctx, "catalog snapshot unavailable, serving sample catalog",
			slog.String("error", err.Error()),
		)
	}
	return samplePage(query)
}

func (s *CatalogService) buildLineItem(product *domain.Product, variant *domain.ProductVariant, sel catalog.Selection, quantity int) *domain.LineItem {
	gallery := catalog.ResolveGallery(product.Images, product.Variants)

	imageURL := gallery.URLs[0]
	size := strings.TrimSpace(sel.Size)
	color := strings.TrimSpace(sel.Color)
	variantID := ""

	if variant != nil {
		variantID = variant.ID
		if variant.Size != "" {
			size = strings.TrimSpace(variant.Size)
		}
		if variant.Color != "" {
			color = strings.TrimSpace(variant.Color)
		}
		if swatch, ok := gallery.SwatchURL[variant.ID]; ok {
			imageURL = swatch
		}
	}

	if size == "" {
		size = domain.FreeSize
	}
	if color == "" && len(product.Colors) > 0 {
		color = product.Colors[0]
	}

	var categoryLabel string
	if product.CategoryName != nil {
		categoryLabel = *product.CategoryName
	}

	return &domain.LineItem{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         catalog.ResolvePrice(product, variant),
		ImageURL:      imageURL,
		Size:          size,
		Color:         color,
		VariantID:     variantID,
		CategoryLabel: categoryLabel,
		Quantity:      quantity,
	}
}

func emptyPage(query CatalogQuery) *domain.CatalogPage {
	return &domain.CatalogPage{
		Products:   []domain.ResolvedProduct{},
		TotalCount: 0,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: 0,
	}
}

func totalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := total / perPage
	if total%perPage > 0 {
		pages++
	}
	return pages
}
