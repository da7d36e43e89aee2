package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitchwear/storefront/internal/domain"
)

func TestResolvePrice_MinimumPositiveAdjustmentWins(t *testing.T) {
	p := &domain.Product{
		BasePrice: 1000,
		SalePrice: 800,
		Variants: []domain.ProductVariant{
			{ID: "v1", PriceAdjustment: 500},
			{ID: "v2", PriceAdjustment: 300},
			{ID: "v3", PriceAdjustment: 0},
		},
	}

	// Base and sale price are ignored once any variant carries a positive
	// adjustment; the minimum positive value is the "starting at" price.
	assert.Equal(t, int64(300), ResolvePrice(p, nil))
}

func TestResolvePrice_SelectedVariantOverridesMinimum(t *testing.T) {
	p := &domain.Product{
		BasePrice: 1000,
		Variants: []domain.ProductVariant{
			{ID: "v1", PriceAdjustment: 500},
			{ID: "v2", PriceAdjustment: 300},
		},
	}

	assert.Equal(t, int64(500), ResolvePrice(p, &p.Variants[0]))
}

func TestResolvePrice_SelectedZeroAdjustmentFallsBackToMinimum(t *testing.T) {
	p := &domain.Product{
		BasePrice: 1000,
		Variants: []domain.ProductVariant{
			{ID: "v1", PriceAdjustment: 0},
			{ID: "v2", PriceAdjustment: 300},
		},
	}

	assert.Equal(t, int64(300), ResolvePrice(p, &p.Variants[0]))
}

func TestResolvePrice_SalePriceFallback(t *testing.T) {
	p := &domain.Product{
		BasePrice: 1000,
		SalePrice: 800,
		Variants: []domain.ProductVariant{
			{ID: "v1", PriceAdjustment: 0},
		},
	}

	assert.Equal(t, int64(800), ResolvePrice(p, nil))
}

func TestResolvePrice_BasePriceFallback(t *testing.T) {
	p := &domain.Product{BasePrice: 1000}
	assert.Equal(t, int64(1000), ResolvePrice(p, nil))
}

func TestResolvePrice_AllZeroDisplaysZeroBase(t *testing.T) {
	p := &domain.Product{
		Variants: []domain.ProductVariant{
			{ID: "v1", PriceAdjustment: 0},
		},
	}

	// Every candidate is zero: display the zero base price rather than fail.
	assert.Equal(t, int64(0), ResolvePrice(p, nil))
}

func TestResolvePrice_PositivityInvariant(t *testing.T) {
	// Whenever any candidate is positive, the result is strictly positive.
	tests := []struct {
		name string
		p    domain.Product
	}{
		{"positive base only", domain.Product{BasePrice: 1}},
		{"positive sale only", domain.Product{SalePrice: 1}},
		{"positive adjustment only", domain.Product{Variants: []domain.ProductVariant{{PriceAdjustment: 1}}}},
		{"negative adjustment ignored", domain.Product{BasePrice: 700, Variants: []domain.ProductVariant{{PriceAdjustment: -50}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Positive(t, ResolvePrice(&tt.p, nil))
		})
	}
}
