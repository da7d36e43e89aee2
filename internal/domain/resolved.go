package domain

// StockStatus is the tri-state stock indicator derived from inventory rows.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// FreeSize is the sentinel size synthesized for products whose variant set has
// no distinct non-blank sizes. Every product yields a non-empty size list.
const FreeSize = "Free Size"

// PlaceholderImageURL is appended when no image resolves for a product so
// downstream code never receives an empty gallery.
const PlaceholderImageURL = "/images/placeholder-product.svg"

// ResolvedVariant is the display-ready form of a product variant.
type ResolvedVariant struct {
	ID              string `json:"id"`
	SKU             string `json:"sku"`
	Size            string `json:"size,omitempty"`
	Color           string `json:"color,omitempty"`
	ColorHex        string `json:"color_hex,omitempty"`
	PriceAdjustment int64  `json:"price_adjustment"`
	SwatchURL       string `json:"swatch_url,omitempty"`
	Quantity        int    `json:"quantity"`
}

// ResolvedProduct is the canonical display-ready view of one product. It is
// created fresh on every fetch cycle and never mutated in place; a new view
// replaces the old one atomically from the caller's perspective.
type ResolvedProduct struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Price       int64             `json:"price"`
	Images      []string          `json:"images"`
	// ImageSourceIndex maps each gallery position to the position the image
	// occupied in the raw image order, -1 for the placeholder.
	ImageSourceIndex []int             `json:"image_source_index"`
	Variants         []ResolvedVariant `json:"variants"`
	Sizes            []string          `json:"sizes"`
	Colors           []string          `json:"colors"`
	StockStatus      StockStatus       `json:"stock_status"`
	Quantity         int               `json:"quantity"`
	CategoryLabel    string            `json:"category_label,omitempty"`
	Fabric           string            `json:"fabric,omitempty"`
	Occasion         string            `json:"occasion,omitempty"`
	Rating           ReviewSummary     `json:"rating"`
}

// CatalogPage is one published result set with pagination metadata.
type CatalogPage struct {
	Products   []ResolvedProduct `json:"products"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	TotalPages int               `json:"total_pages"`
}

// LineItem is the flattened cart handoff payload. All fields are fully
// resolved before handoff; sentinels stand in where a value is absent.
type LineItem struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	ImageURL      string `json:"image_url"`
	Size          string `json:"size"`
	Color         string `json:"color,omitempty"`
	VariantID     string `json:"variant_id,omitempty"`
	CategoryLabel string `json:"category_label,omitempty"`
	Quantity      int    `json:"quantity"`
}
