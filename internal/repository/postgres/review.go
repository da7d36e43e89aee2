package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/stitchwear/storefront/internal/domain"
	"github.com/stitchwear/storefront/pkg/database"
)

// ReviewSummaries returns aggregate review statistics keyed by product id.
// Products without reviews are simply absent from the result.
func (r *CatalogRepository) ReviewSummaries(ctx context.Context, productIDs []string) (map[string]domain.ReviewSummary, error) {
	summaries := make(map[string]domain.ReviewSummary, len(productIDs))
	if len(productIDs) == 0 {
		return summaries, nil
	}

	query := `
		SELECT product_id, COALESCE(AVG(rating), 0), COUNT(*)
		FROM product_reviews
		WHERE product_id = ANY($1)
		GROUP BY product_id`

	ctx, finish := database.TraceQuery(ctx, "catalog.review_summaries", query)
	rows, err := r.pool.Query(ctx, query, productIDs)
	finish(err)
	if err != nil {
		return nil, fmt.Errorf("load review summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID string
			summary   domain.ReviewSummary
		)
		if err := rows.Scan(&productID, &summary.AverageRating, &summary.TotalCount); err != nil {
			return nil, fmt.Errorf("scan review summary row: %w", err)
		}
		// Round average rating to one decimal place.
		summary.AverageRating = math.Round(summary.AverageRating*10) / 10
		summaries[productID] = summary
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review summary rows: %w", err)
	}

	return summaries, nil
}
