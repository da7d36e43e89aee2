package domain

// ReviewSummary holds aggregate review statistics for a product. A failed
// aggregate lookup degrades to the zero value rather than failing the fetch.
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalCount    int     `json:"total_count"`
}
