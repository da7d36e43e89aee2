// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen, with no hyphens at either end. "Kurta
// Sets" becomes "kurta-sets"; an all-punctuation input becomes "".
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
