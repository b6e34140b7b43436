// Package listing filters, orders and pages in-memory lists for the
// catalogue, recycling guide and business opportunity views.
package listing

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"daurulang/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Item is anything that can be shown in a filterable list.
type Item interface {
	ListingName() string
	ListingDescription() string
	ListingCategory() string
	// ListingPrice returns the value price ordering uses. ok is false when
	// the item has no price.
	ListingPrice() (price float64, ok bool)
}

// Collators are not safe for concurrent use, so each call borrows one.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.Indonesian)
	},
}

// Apply returns the items matching f.Search and f.Category, ordered by
// f.Sort. The input slice is never modified.
func Apply[T Item](items []T, f model.FilterState) []T {
	f = f.Normalize()
	return Sort(Filter(items, f.Search, f.Category), f.Sort)
}

// Filter keeps the items whose name or description contains query
// (case-insensitive, surrounding whitespace ignored) and whose category
// equals category, unless category is model.AllCategories.
func Filter[T Item](items []T, query, category string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.TrimSpace(category)

	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchesText(it, query) && matchesCategory(it, category) {
			out = append(out, it)
		}
	}
	return out
}

func matchesText(it Item, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(it.ListingName()), query) ||
		strings.Contains(strings.ToLower(it.ListingDescription()), query)
}

func matchesCategory(it Item, category string) bool {
	if category == "" || category == model.AllCategories {
		return true
	}
	return it.ListingCategory() == category
}

// Sort returns a stably ordered copy of items.
func Sort[T Item](items []T, key model.SortKey) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}

	switch model.ParseSortKey(string(key)) {
	case model.SortNameDesc:
		c := collators.Get().(*collate.Collator)
		defer collators.Put(c)
		slices.SortStableFunc(out, func(a, b T) int {
			return c.CompareString(b.ListingName(), a.ListingName())
		})
	case model.SortPriceAsc:
		slices.SortStableFunc(out, func(a, b T) int { return comparePrice(a, b, false) })
	case model.SortPriceDesc:
		slices.SortStableFunc(out, func(a, b T) int { return comparePrice(a, b, true) })
	default:
		c := collators.Get().(*collate.Collator)
		defer collators.Put(c)
		slices.SortStableFunc(out, func(a, b T) int {
			return c.CompareString(a.ListingName(), b.ListingName())
		})
	}
	return out
}

// comparePrice orders priced items before unpriced ones in either direction.
func comparePrice(a, b Item, desc bool) int {
	pa, okA := a.ListingPrice()
	pb, okB := b.ListingPrice()
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	case desc:
		return cmp.Compare(pb, pa)
	default:
		return cmp.Compare(pa, pb)
	}
}
