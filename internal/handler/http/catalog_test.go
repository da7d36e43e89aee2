package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stitchwear/storefront/internal/cache"
	"github.com/stitchwear/storefront/internal/domain"
	"github.com/stitchwear/storefront/internal/repository"
	"github.com/stitchwear/storefront/internal/service"
	apperrors "github.com/stitchwear/storefront/pkg/errors"
	"github.com/stitchwear/storefront/pkg/health"
	"github.com/stitchwear/storefront/pkg/httputil"
)

// =============================================================================
// Mock repositories
// =============================================================================

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) ListProducts(ctx context.Context, filter repository.CatalogFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockCatalogRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockCatalogRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockCatalogRepo) ReviewSummaries(ctx context.Context, productIDs []string) (map[string]domain.ReviewSummary, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ReviewSummary), args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// =============================================================================
// Test helpers
// =============================================================================

func catalogTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func catalogTestService(repo *mockCatalogRepo, categoryRepo *mockCategoryRepo) *service.CatalogService {
	loader := func(ctx context.Context) ([]domain.Category, error) {
		return []domain.Category{{ID: "7", Name: "Sarees", Slug: "sarees"}}, nil
	}
	return service.NewCatalogService(
		repo,
		categoryRepo,
		cache.NewCategoryCache(loader),
		nil,
		nil,
		catalogTestLogger(),
	)
}

func catalogTestRouter(repo *mockCatalogRepo, categoryRepo *mockCategoryRepo) http.Handler {
	svc := catalogTestService(repo, categoryRepo)
	return NewRouter(svc, health.NewHandler(), RouterConfig{}, catalogTestLogger())
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

func storedProduct() domain.Product {
	return domain.Product{
		ID:        "550e8400-e29b-41d4-a716-446655440001",
		Slug:      "silk-saree",
		Name:      "Silk Saree",
		BasePrice: 12999,
		SalePrice: 9999,
		Images: []domain.ProductImage{
			{ID: "img-1", ProductID: "550e8400-e29b-41d4-a716-446655440001", URL: "/images/silk-saree.jpg", IsPrimary: true},
		},
		Inventory: []domain.InventoryRecord{
			{ID: "inv-1", ProductID: "550e8400-e29b-41d4-a716-446655440001", Quantity: 15},
		},
	}
}

// =============================================================================
// ListCatalog
// =============================================================================

func TestListCatalog_Success(t *testing.T) {
	repo := new(mockCatalogRepo)
	router := catalogTestRouter(repo, new(mockCategoryRepo))

	repo.On("ListProducts", mock.Anything, mock.AnythingOfType("repository.CatalogFilter")).
		Return([]domain.Product{storedProduct()}, 1, nil)
	repo.On("ReviewSummaries", mock.Anything, []string{"550e8400-e29b-41d4-a716-446655440001"}).
		Return(map[string]domain.ReviewSummary{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp httputil.PaginatedResponse[domain.ResolvedProduct]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "silk-saree", resp.Data[0].Slug)
	assert.Equal(t, int64(9999), resp.Data[0].Price)
	assert.Equal(t, 1, resp.TotalCount)
	repo.AssertExpectations(t)
}

func TestListCatalog_InvalidPage(t *testing.T) {
	router := catalogTestRouter(new(mockCatalogRepo), new(mockCategoryRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?page=zero", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}

func TestListCatalog_InvalidSortBy(t *testing.T) {
	router := catalogTestRouter(new(mockCatalogRepo), new(mockCategoryRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?sort_by=cheapest", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}

func TestListCatalog_PriceRangeInverted(t *testing.T) {
	router := catalogTestRouter(new(mockCatalogRepo), new(mockCategoryRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?min_price=5000&max_price=1000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCatalog_UnknownCategoryYieldsEmptyPage(t *testing.T) {
	repo := new(mockCatalogRepo)
	router := catalogTestRouter(repo, new(mockCategoryRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?category=nonexistent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp httputil.PaginatedResponse[domain.ResolvedProduct]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Data)
	assert.Equal(t, 0, resp.TotalCount)
	repo.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
}

// =============================================================================
// GetProduct
// =============================================================================

func TestGetProduct_BySlug(t *testing.T) {
	repo := new(mockCatalogRepo)
	router := catalogTestRouter(repo, new(mockCategoryRepo))

	p := storedProduct()
	repo.On("GetBySlug", mock.Anything, "silk-saree").Return(&p, nil)
	repo.On("ReviewSummaries", mock.Anything, []string{p.ID}).Return(map[string]domain.ReviewSummary{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/silk-saree", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Data)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "silk-saree", data["slug"])
	repo.AssertExpectations(t)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockCatalogRepo)
	router := catalogTestRouter(repo, new(mockCategoryRepo))

	repo.On("GetBySlug", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

// =============================================================================
// GetAvailability
// =============================================================================

func TestGetAvailability_Success(t *testing.T) {
	repo := new(mockCatalogRepo)
	router := catalogTestRouter(repo, new(mockCategoryRepo))

	variantID := "var-1"
	p := storedProduct()
	p.Variants = []domain.ProductVariant{
		{ID: variantID, ProductID: p.ID, Size: "M", Color: "Blue", PriceAdjustment: 300},
	}
	p.Inventory = []domain.InventoryRecord{
		{ID: "inv-1", ProductID: p.ID, VariantID: &variantID, Quantity: 4},
	}
	repo.On("GetBySlug", mock.Anything, "silk-saree").Return(&p, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/silk-saree/availability?size=M&color=Blue", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Data)

	data := resp.Data.(map[string]any)
	assert.Equal(t, string(domain.StockStatusInStock), data["status"])
	assert.Equal(t, float64(4), data["quantity"])
	assert.Equal(t, float64(300), data["price"])
}
