// Package listing implements the filter and sort pipeline applied to
// property collections before display.
package listing

import (
	"sort"
	"strings"

	"github.com/srpnetwork/realty-api/internal/models"
)

// FilterTypeAll matches every property regardless of its type.
const FilterTypeAll = "All"

// Sort orders accepted by Query. Any other value preserves input order.
const (
	SortNewest       = "Newest"
	SortPriceLowHigh = "Price: Low to High"
	SortPriceHighLow = "Price: High to Low"
)

// Filter holds the active listing predicates. All active predicates must
// hold for a property to be included (AND semantics).
type Filter struct {
	// Type is an exact type category, or FilterTypeAll.
	Type string
	// Search matches case-insensitively against title or location.
	// Empty matches everything.
	Search string
	// MaxPrice is an inclusive upper bound. Zero or negative means unbounded.
	MaxPrice float64
}

// Query filters properties by f and orders the result by sortOrder.
// The input slice is never mutated; ties keep their input order (stable sort).
// An empty result is valid and returned as an empty slice, not nil.
func Query(properties []*models.Property, f Filter, sortOrder string) []*models.Property {
	result := make([]*models.Property, 0, len(properties))
	for _, p := range properties {
		if f.matches(p) {
			result = append(result, p)
		}
	}

	switch sortOrder {
	case SortNewest:
		// Missing timestamps sort as the oldest possible date
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	case SortPriceLowHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price < result[j].Price
		})
	case SortPriceHighLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price > result[j].Price
		})
	}

	return result
}

func (f Filter) matches(p *models.Property) bool {
	if f.Type != "" && f.Type != FilterTypeAll && p.Type != f.Type {
		return false
	}

	if f.Search != "" {
		query := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Location), query) {
			return false
		}
	}

	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}

	return true
}
