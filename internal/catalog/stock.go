package catalog

import (
	"strings"

	"github.com/stitchwear/storefront/internal/domain"
)

// defaultLowStockThreshold applies when no relevant inventory row specifies one.
const defaultLowStockThreshold = 10

// Selection is an optional (size, color) partial selection. Empty fields mean
// the dimension is not selected.
type Selection struct {
	Size  string
	Color string
}

// IsEmpty reports whether no dimension is selected.
func (s Selection) IsEmpty() bool {
	return s.Size == "" && s.Color == ""
}

func equalLabel(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// MatchVariant returns the first variant matching every provided dimension of
// the selection, or nil if none matches. An absent dimension matches anything.
func MatchVariant(p *domain.Product, sel Selection) *domain.ProductVariant {
	for i := range p.Variants {
		v := &p.Variants[i]
		if sel.Size != "" && !equalLabel(v.Size, sel.Size) {
			continue
		}
		if sel.Color != "" && !equalLabel(v.Color, sel.Color) {
			continue
		}
		return v
	}
	return nil
}

// VariantQuantity sums the variant-scoped inventory rows for one variant.
func VariantQuantity(p *domain.Product, variantID string) int {
	total := 0
	for _, rec := range p.Inventory {
		if rec.VariantID != nil && *rec.VariantID == variantID {
			total += rec.Quantity
		}
	}
	return total
}

// relevantInventory filters inventory rows to the subset that counts for this
// product: variant-scoped rows when variants exist, product-scoped rows
// otherwise. The two pools are never mixed.
func relevantInventory(p *domain.Product) []domain.InventoryRecord {
	hasVariants := len(p.Variants) > 0
	relevant := make([]domain.InventoryRecord, 0, len(p.Inventory))
	for _, rec := range p.Inventory {
		if (rec.VariantID != nil) == hasVariants {
			relevant = append(relevant, rec)
		}
	}
	return relevant
}

// ResolveStock derives the tri-state stock status and available quantity for a
// product under an optional (size, color) selection. Status is a pure function
// of the relevant inventory rows, never of stored status strings.
//
// For variant-bearing products an empty selection resolves to Out of Stock:
// nothing is purchasable until a concrete variant is chosen. With a selection,
// the single matching variant's own quantity decides (no match means Out of
// Stock). Products without variants use their product-scoped rows: summed
// quantity against the minimum specified low-stock threshold, default 10.
// A product with no relevant rows at all is Out of Stock, never silently
// in stock.
func ResolveStock(p *domain.Product, sel Selection) (domain.StockStatus, int) {
	if len(p.Variants) > 0 {
		if sel.IsEmpty() {
			return domain.StockStatusOutOfStock, 0
		}
		v := MatchVariant(p, sel)
		if v == nil {
			return domain.StockStatusOutOfStock, 0
		}
		qty := VariantQuantity(p, v.ID)
		if qty == 0 {
			return domain.StockStatusOutOfStock, 0
		}
		return domain.StockStatusInStock, qty
	}

	relevant := relevantInventory(p)
	if len(relevant) == 0 {
		return domain.StockStatusOutOfStock, 0
	}

	total := 0
	threshold := 0
	for _, rec := range relevant {
		total += rec.Quantity
		if rec.LowStockThreshold > 0 && (threshold == 0 || rec.LowStockThreshold < threshold) {
			threshold = rec.LowStockThreshold
		}
	}
	if threshold == 0 {
		threshold = defaultLowStockThreshold
	}

	switch {
	case total == 0:
		return domain.StockStatusOutOfStock, 0
	case total <= threshold:
		return domain.StockStatusLowStock, total
	default:
		return domain.StockStatusInStock, total
	}
}
