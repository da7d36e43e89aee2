package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stitchwear/storefront/internal/domain"
	pkgkafka "github.com/stitchwear/storefront/pkg/kafka"
)

// Kafka topics for storefront catalog events.
var (
	TopicCartItemAdded    = pkgkafka.Topic("cart", "item-added")
	TopicCatalogRefreshed = pkgkafka.Topic("catalog", "refreshed")
)

// Aggregate type constants.
const (
	AggregateTypeLineItem = "line_item"
	AggregateTypeCatalog  = "catalog_page"
)

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// CartItemAddedData is the payload for a cart.item_added event: the fully
// resolved line item handed off to the cart manager.
type CartItemAddedData struct {
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

// CatalogRefreshedData is the payload for a catalog.refreshed event.
type CatalogRefreshedData struct {
	ProductCount int `json:"product_count"`
	TotalCount   int `json:"total_count"`
	Page         int `json:"page"`
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartItemAdded publishes a cart.item_added event.
func (p *Producer) PublishCartItemAdded(ctx context.Context, item *domain.LineItem) error {
	data := CartItemAddedData{
		ProductID:     item.ProductID,
		Name:          item.Name,
		Price:         item.Price,
		ImageURL:      item.ImageURL,
		Size:          item.Size,
		Color:         item.Color,
		VariantID:     item.VariantID,
		CategoryLabel: item.CategoryLabel,
		Quantity:      item.Quantity,
	}

	event, err := pkgkafka.NewEvent("cart.item_added", item.ProductID, AggregateTypeLineItem, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create cart.item_added event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartItemAdded, event); err != nil {
		return fmt.Errorf("publish cart.item_added event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.item_added event",
		slog.String("product_id", item.ProductID),
		slog.String("variant_id", item.VariantID),
	)

	return nil
}

// PublishCatalogRefreshed publishes a catalog.refreshed event for a newly
// published page.
func (p *Producer) PublishCatalogRefreshed(ctx context.Context, page *domain.CatalogPage) error {
	data := CatalogRefreshedData{
		ProductCount: len(page.Products),
		TotalCount:   page.TotalCount,
		Page:         page.Page,
	}

	event, err := pkgkafka.NewEvent("catalog.refreshed", fmt.Sprintf("page-%d", page.Page), AggregateTypeCatalog, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create catalog.refreshed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCatalogRefreshed, event); err != nil {
		return fmt.Errorf("publish catalog.refreshed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published catalog.refreshed event",
		slog.Int("product_count", data.ProductCount),
		slog.Int("page", data.Page),
	)

	return nil
}
