package catalog

import (
	"strings"

	"github.com/stitchwear/storefront/internal/domain"
)

// NormalizeHex canonicalizes a color hex string: trimmed, lowercased, with a
// leading '#'. Blank input stays blank.
func NormalizeHex(hex string) string {
	trimmed := strings.ToLower(strings.TrimSpace(hex))
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "#") {
		trimmed = "#" + trimmed
	}
	return trimmed
}

// Resolve assembles the canonical display-ready view of one product from its
// raw rows. Resolving the same product twice yields identical output; nothing
// here mutates the input.
func Resolve(p *domain.Product, rating domain.ReviewSummary) domain.ResolvedProduct {
	gallery := ResolveGallery(p.Images, p.Variants)
	matrix := NewMatrix(p)
	status, qty := ResolveStock(p, Selection{})

	variants := make([]domain.ResolvedVariant, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = domain.ResolvedVariant{
			ID:              v.ID,
			SKU:             v.SKU,
			Size:            strings.TrimSpace(v.Size),
			Color:           strings.TrimSpace(v.Color),
			ColorHex:        NormalizeHex(v.ColorHex),
			PriceAdjustment: v.PriceAdjustment,
			SwatchURL:       gallery.SwatchURL[v.ID],
			Quantity:        VariantQuantity(p, v.ID),
		}
	}

	var categoryLabel string
	if p.CategoryName != nil {
		categoryLabel = *p.CategoryName
	}

	return domain.ResolvedProduct{
		ID:               p.ID,
		Slug:             p.Slug,
		Name:             p.Name,
		Description:      p.Description,
		Price:            ResolvePrice(p, nil),
		Images:           gallery.URLs,
		ImageSourceIndex: gallery.RawIndex,
		Variants:         variants,
		Sizes:            matrix.Sizes(),
		Colors:           matrix.Colors(),
		StockStatus:      status,
		Quantity:         qty,
		CategoryLabel:    categoryLabel,
		Fabric:           p.Fabric,
		Occasion:         p.Occasion,
		Rating:           rating,
	}
}
