package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitchwear/storefront/internal/domain"
)

func matrixProduct() *domain.Product {
	return &domain.Product{
		ID: "prod-1",
		Variants: []domain.ProductVariant{
			{ID: "v1", Size: "S", Color: "Red"},
			{ID: "v2", Size: "M", Color: "Red"},
			{ID: "v3", Size: "M", Color: "Blue"},
		},
		Inventory: []domain.InventoryRecord{
			{ID: "i1", ProductID: "prod-1", VariantID: strPtr("v1"), Quantity: 0},
			{ID: "i2", ProductID: "prod-1", VariantID: strPtr("v2"), Quantity: 3},
			{ID: "i3", ProductID: "prod-1", VariantID: strPtr("v3"), Quantity: 0},
		},
	}
}

func TestMatrix_Sizes_CanonicalOrder(t *testing.T) {
	p := &domain.Product{
		Variants: []domain.ProductVariant{
			{ID: "v1", Size: "L"},
			{ID: "v2", Size: "XS"},
			{ID: "v3", Size: "L"},
			{ID: "v4", Size: " "},
		},
	}

	assert.Equal(t, []string{"XS", "L"}, NewMatrix(p).Sizes())
}

func TestMatrix_Sizes_FreeSizeSynthesis(t *testing.T) {
	tests := []struct {
		name string
		p    domain.Product
	}{
		{"no variants", domain.Product{}},
		{"variants without sizes", domain.Product{Variants: []domain.ProductVariant{{ID: "v1", Color: "Red"}}}},
		{"only blank sizes", domain.Product{Variants: []domain.ProductVariant{{ID: "v1", Size: "  "}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{domain.FreeSize}, NewMatrix(&tt.p).Sizes())
		})
	}
}

func TestMatrix_Colors_FromVariants(t *testing.T) {
	m := NewMatrix(matrixProduct())
	assert.Equal(t, []string{"Red", "Blue"}, m.Colors())
}

func TestMatrix_Colors_NoVariantsUsesProductColors(t *testing.T) {
	p := &domain.Product{Colors: []string{"Teal", "", "Ivory"}}
	assert.Equal(t, []string{"Teal", "Ivory"}, NewMatrix(p).Colors())
}

func TestMatrix_SizeExists(t *testing.T) {
	m := NewMatrix(matrixProduct())

	assert.True(t, m.SizeExists("S", ""))
	assert.True(t, m.SizeExists("m", "blue"), "case-insensitive with color filter")
	assert.False(t, m.SizeExists("S", "Blue"), "no S in Blue")
	assert.False(t, m.SizeExists("XL", ""))
}

func TestMatrix_SizeInStock(t *testing.T) {
	m := NewMatrix(matrixProduct())

	assert.False(t, m.SizeInStock("S", ""), "S exists but qty 0")
	assert.True(t, m.SizeInStock("M", ""), "summed across colors")
	assert.True(t, m.SizeInStock("M", "Red"))
	assert.False(t, m.SizeInStock("M", "Blue"), "M+Blue variant has qty 0")
}

func TestMatrix_SizeAvailable(t *testing.T) {
	m := NewMatrix(matrixProduct())

	assert.True(t, m.SizeAvailable("M", "Red"))
	assert.False(t, m.SizeAvailable("S", ""), "exists but out of stock")
	assert.False(t, m.SizeAvailable("XL", ""), "does not exist")
}

func TestMatrix_ColorPredicates(t *testing.T) {
	m := NewMatrix(matrixProduct())

	assert.True(t, m.ColorExists("Red", ""))
	assert.True(t, m.ColorExists("Blue", "M"))
	assert.False(t, m.ColorExists("Blue", "S"))

	assert.True(t, m.ColorInStock("Red", ""), "v2 carries stock")
	assert.False(t, m.ColorInStock("Red", "S"), "S+Red has qty 0")
	assert.False(t, m.ColorInStock("Blue", ""))

	assert.True(t, m.ColorAvailable("Red", "M"))
	assert.False(t, m.ColorAvailable("Blue", ""))
}

func TestMatrix_NoVariants_InStockProduct(t *testing.T) {
	p := &domain.Product{
		Colors: []string{"Teal"},
		Inventory: []domain.InventoryRecord{
			{ID: "i1", Quantity: 20},
		},
	}
	m := NewMatrix(p)

	assert.True(t, m.SizeExists(domain.FreeSize, ""))
	assert.True(t, m.SizeAvailable(domain.FreeSize, ""))
	assert.False(t, m.SizeExists("M", ""), "only the sentinel size exists")
	assert.True(t, m.ColorAvailable("Teal", ""))
	assert.False(t, m.ColorExists("Red", ""))
}

func TestMatrix_NoVariants_OutOfStockProduct(t *testing.T) {
	p := &domain.Product{Colors: []string{"Teal"}}
	m := NewMatrix(p)

	assert.True(t, m.SizeExists(domain.FreeSize, ""))
	assert.False(t, m.SizeInStock(domain.FreeSize, ""))
	assert.False(t, m.SizeAvailable(domain.FreeSize, ""))
	assert.True(t, m.ColorExists("Teal", ""))
	assert.False(t, m.ColorAvailable("Teal", ""))
}
