package catalog

import (
	"sort"
	"strings"

	"github.com/stitchwear/storefront/internal/domain"
)

// Gallery is the resolved image set for one product: an ordered, deduplicated
// URL list with gallery images first and swatch images after, plus a mapping
// from each gallery position back to the image's position in the raw order.
type Gallery struct {
	URLs []string
	// RawIndex maps gallery position to raw image-row position, -1 for the
	// placeholder entry.
	RawIndex []int
	// SwatchURL maps variant id to the URL of its matched swatch image.
	// Variants whose swatch reference matched nothing are absent.
	SwatchURL map[string]string
}

// separatorStripper removes the punctuation commonly embedded in storage
// paths so a swatch id can be found inside a path that drops its formatting.
var separatorStripper = strings.NewReplacer("-", "", "_", "", "/", "", ".", "", ":", "")

func stripSeparators(s string) string {
	return separatorStripper.Replace(strings.ToLower(s))
}

// matchesSwatchRef reports whether an image is the one a variant's swatch
// reference points at. The match is a deliberately lossy two-stage heuristic:
// exact id match, then exact URL equality, then substring containment of the
// reference in the URL with and without separator characters stripped. The
// loose stages handle storage paths that embed the id without canonical
// formatting.
func matchesSwatchRef(img domain.ProductImage, ref string) bool {
	if ref == "" {
		return false
	}
	if img.ID == ref || img.URL == ref {
		return true
	}
	if strings.Contains(img.URL, ref) {
		return true
	}
	return strings.Contains(stripSeparators(img.URL), stripSeparators(ref))
}

// ResolveGallery turns a product's raw image rows plus its variants' swatch
// references into a Gallery. Images sort primary-first then by creation time
// ascending; gallery candidates (not referenced as any swatch) come before
// swatch candidates; duplicates by URL are dropped with the first occurrence
// winning, which establishes "primary" identity for the UI. Blank URLs are
// skipped, never an error. An empty result gets a single placeholder entry.
func ResolveGallery(images []domain.ProductImage, variants []domain.ProductVariant) Gallery {
	// Remember each row's position in the raw order before sorting.
	rawPos := make(map[string]int, len(images))
	for i, img := range images {
		rawPos[img.ID] = i
	}

	sorted := make([]domain.ProductImage, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsPrimary != sorted[j].IsPrimary {
			return sorted[i].IsPrimary
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	swatchURL := make(map[string]string, len(variants))
	isSwatch := make(map[string]bool, len(images))
	for _, v := range variants {
		if v.SwatchImageID == "" {
			continue
		}
		for _, img := range sorted {
			if matchesSwatchRef(img, v.SwatchImageID) {
				isSwatch[img.ID] = true
				if _, ok := swatchURL[v.ID]; !ok && img.URL != "" {
					swatchURL[v.ID] = img.URL
				}
				break
			}
		}
	}

	g := Gallery{SwatchURL: swatchURL}
	seen := make(map[string]bool, len(sorted))

	appendImage := func(img domain.ProductImage) {
		url := strings.TrimSpace(img.URL)
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		g.URLs = append(g.URLs, url)
		g.RawIndex = append(g.RawIndex, rawPos[img.ID])
	}

	// Gallery candidates first, then swatch candidates.
	for _, img := range sorted {
		if !isSwatch[img.ID] {
			appendImage(img)
		}
	}
	for _, img := range sorted {
		if isSwatch[img.ID] {
			appendImage(img)
		}
	}

	if len(g.URLs) == 0 {
		g.URLs = []string{domain.PlaceholderImageURL}
		g.RawIndex = []int{-1}
	}

	return g
}
