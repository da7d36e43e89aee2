// Package catalog implements the normalization and variant resolution engine:
// the rules that turn raw catalog rows (products, variants, images, inventory)
// into one canonical display-ready view per product.
package catalog

import (
	"sort"
	"strings"

	"github.com/stitchwear/storefront/internal/domain"
)

// sizeOrder is the canonical garment size sequence. Labels outside this
// vocabulary sort alphabetically after all known sizes.
var sizeOrder = []string{"XS", "S", "M", "L", "XL", "2XL", "3XL", "4XL", "5XL", "6XL", "7XL", "8XL"}

// sizePriority returns the rank of a size label in the canonical sequence,
// or len(sizeOrder) for unknown labels. Matching is case-insensitive and
// ignores surrounding whitespace.
func sizePriority(size string) int {
	normalized := strings.ToUpper(strings.TrimSpace(size))
	for i, s := range sizeOrder {
		if s == normalized {
			return i
		}
	}
	return len(sizeOrder)
}

// SortSizes returns a new slice with the given size labels sorted by the
// canonical garment-size order. Unknown labels come after all known ones,
// alphabetically among themselves. The sort is stable for equal-priority ties.
func SortSizes(sizes []string) []string {
	sorted := make([]string, len(sizes))
	copy(sorted, sizes)

	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sizePriority(sorted[i]), sizePriority(sorted[j])
		if pi != pj {
			return pi < pj
		}
		if pi == len(sizeOrder) {
			return strings.ToUpper(strings.TrimSpace(sorted[i])) < strings.ToUpper(strings.TrimSpace(sorted[j]))
		}
		return false
	})

	return sorted
}

// RealSizes filters out blank labels and the Free Size sentinel. Callers use
// an empty result to decide that no size selector should be shown.
func RealSizes(sizes []string) []string {
	real := make([]string, 0, len(sizes))
	for _, s := range sizes {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" || strings.EqualFold(trimmed, domain.FreeSize) {
			continue
		}
		real = append(real, s)
	}
	return real
}
