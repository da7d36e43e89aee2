package http

import (
	"log/slog"
	"net/http"

	"github.com/stitchwear/storefront/internal/service"
	"github.com/stitchwear/storefront/pkg/httputil"
	"github.com/stitchwear/storefront/pkg/pagination"
)

// CategoryHandler handles HTTP requests for category endpoints.
type CategoryHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCategoryHandler creates a new category HTTP handler.
func NewCategoryHandler(svc *service.CatalogService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
		logger:  logger,
	}
}

// ListCategories handles GET /api/v1/categories
// @Summary List active categories
// @Description Returns active categories ordered for navigation, paginated
// @Tags categories
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/categories [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	params := pagination.FromRequest(r)
	start := params.Offset
	if start > len(categories) {
		start = len(categories)
	}
	end := start + params.PerPage
	if end > len(categories) {
		end = len(categories)
	}

	httputil.WriteJSON(w, http.StatusOK, pagination.NewResult(categories[start:end], len(categories), params))
}

// InvalidateCache handles POST /api/v1/categories/cache/invalidate
// @Summary Invalidate the category lookup cache
// @Description Discards the cached category id map; the next catalog fetch rebuilds it
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/categories/cache/invalidate [post]
func (h *CategoryHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.service.InvalidateCategoryCache()

	h.logger.InfoContext(r.Context(), "category cache invalidated")
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "invalidated"}})
}
