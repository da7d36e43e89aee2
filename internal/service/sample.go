package service

import (
	"time"

	"github.com/stitchwear/storefront/internal/catalog"
	"github.com/stitchwear/storefront/internal/domain"
)

// sampleCreatedAt keeps the sample catalog deterministic across processes.
var sampleCreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func variantRef(id string) *string { return &id }

// sampleProducts is the built-in catalog served when both the backing store
// and the snapshot store are unavailable. It goes through the same resolution
// engine as real rows so the shape is identical.
func sampleProducts() []domain.Product {
	sarees := "Sarees"
	kurtas := "Kurta Sets"
	return []domain.Product{
		{
			ID:           "sample-banarasi-silk-saree",
			Slug:         "banarasi-silk-saree",
			Name:         "Banarasi Silk Saree",
			Description:  "Handwoven Banarasi silk with zari border",
			BasePrice:    12999,
			SalePrice:    9999,
			CategoryName: &sarees,
			Fabric:       "Silk",
			Occasion:     "Wedding",
			Colors:       []string{"Maroon", "Gold"},
			Images: []domain.ProductImage{
				{ID: "sample-img-1", ProductID: "sample-banarasi-silk-saree", URL: "/images/samples/banarasi-silk-saree.jpg", IsPrimary: true, CreatedAt: sampleCreatedAt},
			},
			Inventory: []domain.InventoryRecord{
				{ID: "sample-inv-1", ProductID: "sample-banarasi-silk-saree", Quantity: 25},
			},
			CreatedAt: sampleCreatedAt,
			UpdatedAt: sampleCreatedAt,
		},
		{
			ID:           "sample-chanderi-kurta-set",
			Slug:         "chanderi-kurta-set",
			Name:         "Chanderi Kurta Set",
			Description:  "Three-piece Chanderi cotton kurta set",
			BasePrice:    4999,
			CategoryName: &kurtas,
			Fabric:       "Cotton",
			Occasion:     "Festive",
			Images: []domain.ProductImage{
				{ID: "sample-img-2", ProductID: "sample-chanderi-kurta-set", URL: "/images/samples/chanderi-kurta-set.jpg", IsPrimary: true, CreatedAt: sampleCreatedAt},
			},
			Variants: []domain.ProductVariant{
				{ID: "sample-var-s", ProductID: "sample-chanderi-kurta-set", SKU: "CKS-S", Size: "S", Color: "Teal", PriceAdjustment: 4999},
				{ID: "sample-var-m", ProductID: "sample-chanderi-kurta-set", SKU: "CKS-M", Size: "M", Color: "Teal", PriceAdjustment: 4999},
				{ID: "sample-var-l", ProductID: "sample-chanderi-kurta-set", SKU: "CKS-L", Size: "L", Color: "Teal", PriceAdjustment: 5299},
			},
			Inventory: []domain.InventoryRecord{
				{ID: "sample-inv-2", ProductID: "sample-chanderi-kurta-set", VariantID: variantRef("sample-var-s"), Quantity: 12},
				{ID: "sample-inv-3", ProductID: "sample-chanderi-kurta-set", VariantID: variantRef("sample-var-m"), Quantity: 18},
				{ID: "sample-inv-4", ProductID: "sample-chanderi-kurta-set", VariantID: variantRef("sample-var-l"), Quantity: 6},
			},
			CreatedAt: sampleCreatedAt,
			UpdatedAt: sampleCreatedAt,
		},
		{
			ID:          "sample-linen-dupatta",
			Slug:        "linen-dupatta",
			Name:        "Linen Dupatta",
			Description: "Lightweight linen dupatta with tasseled edge",
			BasePrice:   1499,
			Fabric:      "Linen",
			Occasion:    "Casual",
			Colors:      []string{"Ivory"},
			Inventory: []domain.InventoryRecord{
				{ID: "sample-inv-5", ProductID: "sample-linen-dupatta", Quantity: 8, LowStockThreshold: 10},
			},
			CreatedAt: sampleCreatedAt,
			UpdatedAt: sampleCreatedAt,
		},
	}
}

// samplePage resolves the sample catalog into a page matching the caller's
// pagination so the degraded response keeps the usual shape.
func samplePage(query CatalogQuery) *domain.CatalogPage {
	products := sampleProducts()

	views := make([]domain.ResolvedProduct, len(products))
	for i := range products {
		views[i] = catalog.Resolve(&products[i], domain.ReviewSummary{})
	}

	return &domain.CatalogPage{
		Products:   views,
		TotalCount: len(views),
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: 1,
	}
}
