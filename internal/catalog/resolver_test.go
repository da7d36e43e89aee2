package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchwear/storefront/internal/domain"
)

func resolverProduct() *domain.Product {
	catName := "Sarees"
	return &domain.Product{
		ID:           "prod-1",
		Slug:         "silk-saree",
		Name:         "Silk Saree",
		Description:  "Handwoven silk",
		BasePrice:    1000,
		SalePrice:    800,
		CategoryName: &catName,
		Fabric:       "Silk",
		Occasion:     "Wedding",
		Images: []domain.ProductImage{
			{ID: "i1", ProductID: "prod-1", URL: "https://cdn.example.com/front.jpg", IsPrimary: true, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "i2", ProductID: "prod-1", URL: "https://cdn.example.com/swatch.jpg", CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		},
		Variants: []domain.ProductVariant{
			{ID: "v1", SKU: "SS-S-RED", Size: "S", Color: "Red", ColorHex: "CC0000", PriceAdjustment: 500, SwatchImageID: "i2"},
			{ID: "v2", SKU: "SS-M-BLUE", Size: "M", Color: "Blue", ColorHex: "#0000cc", PriceAdjustment: 300},
		},
		Inventory: []domain.InventoryRecord{
			{ID: "inv1", ProductID: "prod-1", VariantID: strPtr("v1"), Quantity: 0},
			{ID: "inv2", ProductID: "prod-1", VariantID: strPtr("v2"), Quantity: 4},
		},
	}
}

func TestResolve_AssemblesView(t *testing.T) {
	view := Resolve(resolverProduct(), domain.ReviewSummary{AverageRating: 4.5, TotalCount: 12})

	assert.Equal(t, "prod-1", view.ID)
	assert.Equal(t, "silk-saree", view.Slug)
	assert.Equal(t, int64(300), view.Price, "minimum positive adjustment")
	assert.Equal(t, []string{"https://cdn.example.com/front.jpg", "https://cdn.example.com/swatch.jpg"}, view.Images)
	assert.Equal(t, []int{0, 1}, view.ImageSourceIndex)
	assert.Equal(t, []string{"S", "M"}, view.Sizes)
	assert.Equal(t, []string{"Red", "Blue"}, view.Colors)
	assert.Equal(t, domain.StockStatusOutOfStock, view.StockStatus, "nothing selected yet")
	assert.Equal(t, 0, view.Quantity)
	assert.Equal(t, "Sarees", view.CategoryLabel)
	assert.Equal(t, 4.5, view.Rating.AverageRating)

	require.Len(t, view.Variants, 2)
	assert.Equal(t, "#cc0000", view.Variants[0].ColorHex)
	assert.Equal(t, "https://cdn.example.com/swatch.jpg", view.Variants[0].SwatchURL)
	assert.Equal(t, 0, view.Variants[0].Quantity)
	assert.Equal(t, "#0000cc", view.Variants[1].ColorHex)
	assert.Empty(t, view.Variants[1].SwatchURL)
	assert.Equal(t, 4, view.Variants[1].Quantity)
}

func TestResolve_Idempotent(t *testing.T) {
	p := resolverProduct()
	rating := domain.ReviewSummary{AverageRating: 4.5, TotalCount: 12}

	first, err := json.Marshal(Resolve(p, rating))
	require.NoError(t, err)
	second, err := json.Marshal(Resolve(p, rating))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_NoImagesGetsPlaceholder(t *testing.T) {
	p := &domain.Product{ID: "prod-2", Name: "Plain Kurta", BasePrice: 500}

	view := Resolve(p, domain.ReviewSummary{})

	require.Len(t, view.Images, 1)
	assert.Equal(t, domain.PlaceholderImageURL, view.Images[0])
	assert.Equal(t, []int{-1}, view.ImageSourceIndex)
	assert.Equal(t, []string{domain.FreeSize}, view.Sizes)
}

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"CC0000", "#cc0000"},
		{"#AABBCC", "#aabbcc"},
		{"  #ff0000  ", "#ff0000"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeHex(tt.input), "input %q", tt.input)
	}
}
