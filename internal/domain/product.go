package domain

import (
	"time"
)

// Sort key constants for catalog listings.
const (
	SortByNewest    = "newest"
	SortByPriceAsc  = "price_asc"
	SortByPriceDesc = "price_desc"
	SortByNameAsc   = "name_asc"
	SortByNameDesc  = "name_desc"
)

// Product is one denormalized row from the backing catalog store, with its
// nested image, variant, and inventory collections attached. It is immutable
// once fetched; a refetch replaces it wholesale.
type Product struct {
	ID           string            `json:"id"`
	Slug         string            `json:"slug"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	BasePrice    int64             `json:"base_price"`
	SalePrice    int64             `json:"sale_price"`
	CategoryID   *string           `json:"category_id,omitempty"`
	CategoryName *string           `json:"category_name,omitempty"`
	Fabric       string            `json:"fabric,omitempty"`
	Occasion     string            `json:"occasion,omitempty"`
	Colors       []string          `json:"colors,omitempty"`
	Images       []ProductImage    `json:"images,omitempty"`
	Variants     []ProductVariant  `json:"variants,omitempty"`
	Inventory    []InventoryRecord `json:"inventory,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ProductImage is a raw image row belonging to exactly one product.
type ProductImage struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	URL       string    `json:"url"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductVariant is a specific size/color combination of a product.
// SwatchImageID is a weak reference into the product's own image collection,
// not an ownership edge; it may point at nothing.
type ProductVariant struct {
	ID              string `json:"id"`
	ProductID       string `json:"product_id"`
	SKU             string `json:"sku"`
	Size            string `json:"size,omitempty"`
	Color           string `json:"color,omitempty"`
	ColorHex        string `json:"color_hex,omitempty"`
	PriceAdjustment int64  `json:"price_adjustment"`
	SwatchImageID   string `json:"swatch_image_id,omitempty"`
}

// InventoryRecord is a raw inventory row. VariantID is nil for product-scoped
// rows. Rows with a variant id count only when the product has variants; rows
// without one count only when it does not.
type InventoryRecord struct {
	ID                string  `json:"id"`
	ProductID         string  `json:"product_id"`
	VariantID         *string `json:"variant_id,omitempty"`
	Quantity          int     `json:"quantity"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

// ValidSortKeys returns the set of valid catalog sort keys.
func ValidSortKeys() []string {
	return []string{SortByNewest, SortByPriceAsc, SortByPriceDesc, SortByNameAsc, SortByNameDesc}
}

// IsValidSortBy checks whether the given string is a valid catalog sort key.
func IsValidSortBy(sortBy string) bool {
	for _, s := range ValidSortKeys() {
		if s == sortBy {
			return true
		}
	}
	return false
}
