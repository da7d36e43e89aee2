package catalog

import "github.com/stitchwear/storefront/internal/domain"

// ResolvePrice derives the single display price for a product.
//
// If any variant carries a strictly positive price adjustment, the minimum
// positive value wins as the "starting at" price, ignoring the product's own
// base and sale price. A selected variant with a positive adjustment of its
// own overrides that minimum. With no positive adjustments anywhere the sale
// price applies, then the base price. The result is never zero when any
// considered candidate was positive; when every candidate is zero the
// (possibly zero) base price is returned rather than an error.
func ResolvePrice(p *domain.Product, selected *domain.ProductVariant) int64 {
	if selected != nil && selected.PriceAdjustment > 0 {
		return selected.PriceAdjustment
	}

	var minPositive int64
	for _, v := range p.Variants {
		if v.PriceAdjustment > 0 && (minPositive == 0 || v.PriceAdjustment < minPositive) {
			minPositive = v.PriceAdjustment
		}
	}
	if minPositive > 0 {
		return minPositive
	}

	if p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.BasePrice
}
