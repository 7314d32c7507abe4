// Package catalog derives the rendered prompt list from the fetched
// catalog and the user's filter/sort state, and keeps the client-side
// read-through copy of the catalog.
package catalog

import (
	"sort"
	"strings"

	"github.com/vpetrenko/promptmart/internal/client/models"
)

// SortOption selects the ordering of the derived view.
type SortOption string

const (
	SortLatest    SortOption = "latest"
	SortPopular   SortOption = "popular"
	SortRating    SortOption = "rating"
	SortPriceLow  SortOption = "priceLow"
	SortPriceHigh SortOption = "priceHigh"
)

// SortOptions lists every valid option, for UI enumeration.
var SortOptions = []SortOption{SortLatest, SortPopular, SortRating, SortPriceLow, SortPriceHigh}

// ValidSortOption reports whether s names a known sort option.
func ValidSortOption(s string) bool {
	for _, opt := range SortOptions {
		if SortOption(s) == opt {
			return true
		}
	}
	return false
}

// DeriveView applies category filter, text search, and sort to the catalog
// and returns a fresh ordered slice. Pure: the input is never mutated and
// identical inputs yield identical output.
//
// Category matching is exact and case-sensitive; "All" (or empty) passes
// everything. A non-empty trimmed search term keeps prompts whose title or
// content contains it case-insensitively. Sorting is stable; missing
// numeric keys count as zero. For "latest", prompts carrying a timestamp
// order before those without one (descending timestamp), and ties as well
// as the untimestamped tail fall back to descending id.
func DeriveView(catalog []models.Prompt, category, searchTerm string, sortOption SortOption) []models.Prompt {
	view := make([]models.Prompt, 0, len(catalog))

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	for _, p := range catalog {
		if category != "" && category != models.CategoryAll && p.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Content), term) {
			continue
		}
		view = append(view, p)
	}

	sortView(view, sortOption)
	return view
}

func sortView(view []models.Prompt, option SortOption) {
	switch option {
	case SortPopular:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Likes > view[j].Likes
		})
	case SortRating:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Rating > view[j].Rating
		})
	case SortPriceLow:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Price < view[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Price > view[j].Price
		})
	default: // SortLatest
		sort.SliceStable(view, func(i, j int) bool {
			return newerThan(view[i], view[j])
		})
	}
}

// newerThan is the total order behind "latest": timestamped before
// untimestamped, then descending timestamp, then descending id.
func newerThan(a, b models.Prompt) bool {
	switch {
	case a.CreatedAt != nil && b.CreatedAt != nil:
		if !a.CreatedAt.Equal(b.CreatedAt.Time) {
			return a.CreatedAt.After(b.CreatedAt.Time)
		}
		return a.ID > b.ID
	case a.CreatedAt != nil:
		return true
	case b.CreatedAt != nil:
		return false
	default:
		return a.ID > b.ID
	}
}
