package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stitchwear/storefront/internal/domain"
	"github.com/stitchwear/storefront/internal/service"
	"github.com/stitchwear/storefront/pkg/httputil"
)

// CatalogHandler handles HTTP requests for catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListCatalog handles GET /api/v1/catalog
// @Summary List the resolved catalog
// @Description Returns a paginated page of fully resolved product views with optional filtering and sorting
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(20)
// @Param category query string false "Category id, slug, or display name"
// @Param fabric query string false "Filter by fabric"
// @Param occasion query string false "Filter by occasion"
// @Param search query string false "Full-text search query"
// @Param min_price query int false "Minimum price in paise"
// @Param max_price query int false "Maximum price in paise"
// @Param sort_by query string false "Sort order" Enums(newest,price_asc,price_desc,name_asc,name_desc)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/catalog [get]
func (h *CatalogHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	query := service.CatalogQuery{
		Page:    1,
		PerPage: 20,
	}

	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page must be a valid positive integer"},
			})
			return
		}
		query.Page = page
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		perPage, err := strconv.Atoi(v)
		if err != nil || perPage < 1 || perPage > 100 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "per_page must be a valid integer between 1 and 100"},
			})
			return
		}
		query.PerPage = perPage
	}

	query.Category = r.URL.Query().Get("category")
	query.Fabric = r.URL.Query().Get("fabric")
	query.Occasion = r.URL.Query().Get("occasion")
	query.Search = r.URL.Query().Get("search")

	if v := r.URL.Query().Get("min_price"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "min_price must be a valid number"},
			})
			return
		}
		query.PriceMin = &price
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "max_price must be a valid number"},
			})
			return
		}
		query.PriceMax = &price
	}

	if query.PriceMin != nil && query.PriceMax != nil && *query.PriceMin > *query.PriceMax {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "min_price must not exceed max_price"},
		})
		return
	}

	if v := r.URL.Query().Get("sort_by"); v != "" {
		if !domain.IsValidSortBy(v) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "sort_by must be one of: newest, price_asc, price_desc, name_asc, name_desc"},
			})
			return
		}
		query.SortBy = v
	}

	page, err := h.service.List(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(page.Products, page.TotalCount, page.Page, page.PerPage))
}

// GetProduct handles GET /api/v1/catalog/{idOrSlug}
// It accepts both a UUID (product ID) and a slug for lookup. The response is
// the same resolved view shape the listing uses.
// @Summary Get a resolved product by ID or slug
// @Description Returns a fully resolved product view. Accepts both UUID and URL slug.
// @Tags catalog
// @Produce json
// @Param idOrSlug path string true "Product UUID or URL slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/catalog/{idOrSlug} [get]
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	if idOrSlug == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product id or slug is required"},
		})
		return
	}

	view, err := h.service.GetProduct(r.Context(), idOrSlug)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// GetAvailability handles GET /api/v1/catalog/{idOrSlug}/availability
// @Summary Evaluate the size/color matrix for a partial selection
// @Description Returns per-option existence/stock predicates plus the price and stock the selection resolves to
// @Tags catalog
// @Produce json
// @Param idOrSlug path string true "Product UUID or URL slug"
// @Param size query string false "Selected size"
// @Param color query string false "Selected color"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/catalog/{idOrSlug}/availability [get]
func (h *CatalogHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	if idOrSlug == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product id or slug is required"},
		})
		return
	}

	size := r.URL.Query().Get("size")
	color := r.URL.Query().Get("color")

	avail, err := h.service.Availability(r.Context(), idOrSlug, size, color)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: avail})
}
