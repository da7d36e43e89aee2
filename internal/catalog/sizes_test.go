package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitchwear/storefront/internal/domain"
)

func TestSortSizes(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "canonical subset",
			input:    []string{"L", "XS", "3XL", "M"},
			expected: []string{"XS", "M", "L", "3XL"},
		},
		{
			name:     "full sequence shuffled",
			input:    []string{"8XL", "M", "XS", "2XL", "XL", "S", "L"},
			expected: []string{"XS", "S", "M", "L", "XL", "2XL", "8XL"},
		},
		{
			name:     "case insensitive and trimmed",
			input:    []string{" xl ", "xs", "m"},
			expected: []string{"xs", "m", " xl "},
		},
		{
			name:     "unknown sizes after known, alphabetical",
			input:    []string{"Tall", "M", "Petite", "XS"},
			expected: []string{"XS", "M", "Petite", "Tall"},
		},
		{
			name:     "all unknown",
			input:    []string{"Z", "A", "K"},
			expected: []string{"A", "K", "Z"},
		},
		{
			name:     "empty",
			input:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SortSizes(tt.input))
		})
	}
}

func TestSortSizes_Stable(t *testing.T) {
	// Equal-priority duplicates keep their relative order.
	input := []string{"M", "m", "M "}
	assert.Equal(t, []string{"M", "m", "M "}, SortSizes(input))
}

func TestSortSizes_DoesNotMutateInput(t *testing.T) {
	input := []string{"L", "XS"}
	_ = SortSizes(input)
	assert.Equal(t, []string{"L", "XS"}, input)
}

func TestRealSizes(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "filters blanks and sentinel",
			input:    []string{"S", "", "  ", domain.FreeSize, "M"},
			expected: []string{"S", "M"},
		},
		{
			name:     "sentinel case insensitive",
			input:    []string{"free size", "FREE SIZE"},
			expected: []string{},
		},
		{
			name:     "all real",
			input:    []string{"XS", "8XL", "Tall"},
			expected: []string{"XS", "8XL", "Tall"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RealSizes(tt.input))
		})
	}
}
