package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stitchwear/storefront/internal/service"
	"github.com/stitchwear/storefront/pkg/httputil"
	"github.com/stitchwear/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart handoff endpoints.
type CartHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CatalogService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddItemRequest is the JSON request body for resolving a cart line item.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,min=1,max=500"`
	Size      string `json:"size" validate:"max=50"`
	Color     string `json:"color" validate:"max=100"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=99"`
}

// AddItem handles POST /api/v1/cart/items
// @Summary Resolve a cart line item
// @Description Validates the selection against the availability matrix and returns a fully resolved line item
// @Tags cart
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Selection to resolve"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/cart/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	item, err := h.service.AddToCart(r.Context(), service.AddToCartInput{
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: item})
}
