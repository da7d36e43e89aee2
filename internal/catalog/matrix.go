package catalog

import (
	"strings"

	"github.com/stitchwear/storefront/internal/domain"
)

// Matrix answers size/color existence and in-stock queries for one product
// under an optional partial selection. It is purely query-style and stateless;
// selection state belongs to the UI layer. Callers must consult Available
// predicates before enabling any size/color control, never the raw rows.
type Matrix struct {
	product     *domain.Product
	hasVariants bool
	// productInStock is the no-variants availability: derived product-level
	// stock status is not Out of Stock.
	productInStock bool
}

// NewMatrix builds an availability matrix for the given product.
func NewMatrix(p *domain.Product) *Matrix {
	m := &Matrix{
		product:     p,
		hasVariants: len(p.Variants) > 0,
	}
	if !m.hasVariants {
		status, _ := ResolveStock(p, Selection{})
		m.productInStock = status != domain.StockStatusOutOfStock
	}
	return m
}

// Sizes returns the distinct non-blank sizes in canonical order. When the
// product has no real sizes at all, the Free Size sentinel is synthesized so
// the list is never empty.
func (m *Matrix) Sizes() []string {
	var sizes []string
	seen := make(map[string]bool)
	for _, v := range m.product.Variants {
		trimmed := strings.TrimSpace(v.Size)
		if trimmed == "" {
			continue
		}
		key := strings.ToUpper(trimmed)
		if !seen[key] {
			seen[key] = true
			sizes = append(sizes, trimmed)
		}
	}
	if len(RealSizes(sizes)) == 0 {
		return []string{domain.FreeSize}
	}
	return SortSizes(sizes)
}

// Colors returns the distinct non-blank colors in order of appearance. For a
// product without variants the product's own color list applies.
func (m *Matrix) Colors() []string {
	if !m.hasVariants {
		colors := make([]string, 0, len(m.product.Colors))
		for _, c := range m.product.Colors {
			if strings.TrimSpace(c) != "" {
				colors = append(colors, c)
			}
		}
		return colors
	}

	var colors []string
	seen := make(map[string]bool)
	for _, v := range m.product.Variants {
		trimmed := strings.TrimSpace(v.Color)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if !seen[key] {
			seen[key] = true
			colors = append(colors, trimmed)
		}
	}
	return colors
}

// SizeExists reports whether at least one variant with the given size matches
// the optional color filter. A product without variants exposes only the
// Free Size sentinel.
func (m *Matrix) SizeExists(size, colorFilter string) bool {
	if !m.hasVariants {
		return equalLabel(size, domain.FreeSize)
	}
	for _, v := range m.product.Variants {
		if !equalLabel(v.Size, size) {
			continue
		}
		if colorFilter != "" && !equalLabel(v.Color, colorFilter) {
			continue
		}
		return true
	}
	return false
}

// SizeInStock reports whether the variants matching the size and optional
// color filter have positive summed quantity. Without variants it reflects
// the product-level availability.
func (m *Matrix) SizeInStock(size, colorFilter string) bool {
	if !m.hasVariants {
		return equalLabel(size, domain.FreeSize) && m.productInStock
	}
	total := 0
	for _, v := range m.product.Variants {
		if !equalLabel(v.Size, size) {
			continue
		}
		if colorFilter != "" && !equalLabel(v.Color, colorFilter) {
			continue
		}
		total += VariantQuantity(m.product, v.ID)
	}
	return total > 0
}

// SizeAvailable is the UI-facing predicate: the size exists under the color
// filter and has stock.
func (m *Matrix) SizeAvailable(size, colorFilter string) bool {
	return m.SizeExists(size, colorFilter) && m.SizeInStock(size, colorFilter)
}

// ColorExists reports whether at least one variant with the given color
// matches the optional size filter. A product without variants checks its own
// color list.
func (m *Matrix) ColorExists(color, sizeFilter string) bool {
	if !m.hasVariants {
		for _, c := range m.product.Colors {
			if equalLabel(c, color) {
				return true
			}
		}
		return false
	}
	for _, v := range m.product.Variants {
		if !equalLabel(v.Color, color) {
			continue
		}
		if sizeFilter != "" && !equalLabel(v.Size, sizeFilter) {
			continue
		}
		return true
	}
	return false
}

// ColorInStock reports whether the variants matching the color and optional
// size filter have positive summed quantity. Without variants it reflects the
// product-level availability.
func (m *Matrix) ColorInStock(color, sizeFilter string) bool {
	if !m.hasVariants {
		return m.ColorExists(color, sizeFilter) && m.productInStock
	}
	total := 0
	for _, v := range m.product.Variants {
		if !equalLabel(v.Color, color) {
			continue
		}
		if sizeFilter != "" && !equalLabel(v.Size, sizeFilter) {
			continue
		}
		total += VariantQuantity(m.product, v.ID)
	}
	return total > 0
}

// ColorAvailable is the UI-facing predicate: the color exists under the size
// filter and has stock.
func (m *Matrix) ColorAvailable(color, sizeFilter string) bool {
	return m.ColorExists(color, sizeFilter) && m.ColorInStock(color, sizeFilter)
}
