package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/stitchwear/storefront/internal/domain"
	"github.com/stitchwear/storefront/internal/repository"
	"github.com/stitchwear/storefront/pkg/database"
	apperrors "github.com/stitchwear/storefront/pkg/errors"
)

// productColumns is the standard SELECT column list for products, joined with
// the category name.
const productColumns = `p.id, p.slug, p.name, p.description, p.base_price, p.sale_price,
	p.category_id, c.name AS category_name, p.fabric, p.occasion, p.colors,
	p.created_at, p.updated_at`

// CatalogRepository implements repository.CatalogRepository using PostgreSQL.
type CatalogRepository struct {
	pool database.DBTX
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool database.DBTX) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListProducts returns products matching the filter with the total count.
// Image, variant, and inventory collections are batch-loaded for the page.
func (r *CatalogRepository) ListProducts(ctx context.Context, filter repository.CatalogFilter) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	if filter.PriceMin != nil {
		conditions = append(conditions, fmt.Sprintf("p.base_price >= $%d", argIndex))
		args = append(args, *filter.PriceMin)
		argIndex++
	}

	if filter.PriceMax != nil {
		conditions = append(conditions, fmt.Sprintf("p.base_price <= $%d", argIndex))
		args = append(args, *filter.PriceMax)
		argIndex++
	}

	if filter.Fabric != nil {
		conditions = append(conditions, fmt.Sprintf("p.fabric ILIKE $%d", argIndex))
		args = append(args, *filter.Fabric)
		argIndex++
	}

	if filter.Occasion != nil {
		conditions = append(conditions, fmt.Sprintf("p.occasion ILIKE $%d", argIndex))
		args = append(args, *filter.Occasion)
		argIndex++
	}

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Use count(*) OVER() for total count in a single query.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, orderBy(filter.SortBy), argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	ctx, finish := database.TraceQuery(ctx, "catalog.list_products", query)
	rows, err := r.pool.Query(ctx, query, args...)
	finish(err)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product
		if err := scanProductRow(rows, &p, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if err := r.loadCollections(ctx, products); err != nil {
		return nil, 0, err
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}

// GetByID retrieves one product with its nested collections.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`, productColumns)

	return r.getProduct(ctx, query, id)
}

// GetBySlug retrieves one product by its slug with its nested collections.
func (r *CatalogRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1`, productColumns)

	return r.getProduct(ctx, query, slug)
}

func (r *CatalogRepository) getProduct(ctx context.Context, query string, arg any) (*domain.Product, error) {
	var p domain.Product

	ctx, finish := database.TraceQuery(ctx, "catalog.get_product", query)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Description,
		&p.BasePrice,
		&p.SalePrice,
		&p.CategoryID,
		&p.CategoryName,
		&p.Fabric,
		&p.Occasion,
		&p.Colors,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	finish(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	products := []domain.Product{p}
	if err := r.loadCollections(ctx, products); err != nil {
		return nil, err
	}

	return &products[0], nil
}

// loadCollections batch-loads images, variants, and inventory for the given
// products and attaches them in place.
func (r *CatalogRepository) loadCollections(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	index := make(map[string]*domain.Product, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = &products[i]
	}

	if err := r.loadImages(ctx, ids, index); err != nil {
		return err
	}
	if err := r.loadVariants(ctx, ids, index); err != nil {
		return err
	}
	return r.loadInventory(ctx, ids, index)
}

func (r *CatalogRepository) loadImages(ctx context.Context, ids []string, index map[string]*domain.Product) error {
	query := `
		SELECT id, product_id, url, is_primary, created_at
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY product_id, created_at`

	ctx, finish := database.TraceQuery(ctx, "catalog.load_images", query)
	rows, err := r.pool.Query(ctx, query, ids)
	finish(err)
	if err != nil {
		return fmt.Errorf("load product images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.IsPrimary, &img.CreatedAt); err != nil {
			return fmt.Errorf("scan image row: %w", err)
		}
		if p, ok := index[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate image rows: %w", err)
	}
	return nil
}

func (r *CatalogRepository) loadVariants(ctx context.Context, ids []string, index map[string]*domain.Product) error {
	query := `
		SELECT id, product_id, sku, size, color, color_hex, price_adjustment, swatch_image_id
		FROM product_variants
		WHERE product_id = ANY($1)
		ORDER BY product_id, sku`

	ctx, finish := database.TraceQuery(ctx, "catalog.load_variants", query)
	rows, err := r.pool.Query(ctx, query, ids)
	finish(err)
	if err != nil {
		return fmt.Errorf("load product variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v                     domain.ProductVariant
			size, color, colorHex *string
			swatchImageID         *string
		)
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &size, &color, &colorHex, &v.PriceAdjustment, &swatchImageID); err != nil {
			return fmt.Errorf("scan variant row: %w", err)
		}
		v.Size = deref(size)
		v.Color = deref(color)
		v.ColorHex = deref(colorHex)
		v.SwatchImageID = deref(swatchImageID)
		if p, ok := index[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate variant rows: %w", err)
	}
	return nil
}

func (r *CatalogRepository) loadInventory(ctx context.Context, ids []string, index map[string]*domain.Product) error {
	query := `
		SELECT id, product_id, variant_id, quantity, low_stock_threshold
		FROM inventory
		WHERE product_id = ANY($1)
		ORDER BY product_id, id`

	ctx, finish := database.TraceQuery(ctx, "catalog.load_inventory", query)
	rows, err := r.pool.Query(ctx, query, ids)
	finish(err)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.VariantID, &rec.Quantity, &rec.LowStockThreshold); err != nil {
			return fmt.Errorf("scan inventory row: %w", err)
		}
		if p, ok := index[rec.ProductID]; ok {
			p.Inventory = append(p.Inventory, rec)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate inventory rows: %w", err)
	}
	return nil
}

// orderBy maps a sort key to an ORDER BY clause. The keys are validated at
// the handler boundary; anything else falls back to newest-first.
func orderBy(sortBy string) string {
	switch sortBy {
	case domain.SortByPriceAsc:
		return "p.base_price ASC, p.created_at DESC"
	case domain.SortByPriceDesc:
		return "p.base_price DESC, p.created_at DESC"
	case domain.SortByNameAsc:
		return "p.name ASC"
	case domain.SortByNameDesc:
		return "p.name DESC"
	default:
		return "p.created_at DESC"
	}
}

func scanProductRow(rows pgx.Rows, p *domain.Product, totalCount *int) error {
	return rows.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Description,
		&p.BasePrice,
		&p.SalePrice,
		&p.CategoryID,
		&p.CategoryName,
		&p.Fabric,
		&p.Occasion,
		&p.Colors,
		&p.CreatedAt,
		&p.UpdatedAt,
		totalCount,
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
