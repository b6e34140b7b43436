package model

import "strings"

// SortKey selects the ordering of a filtered list.
type SortKey string

const (
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// DefaultSortKey is applied when no (or an unknown) sort key is requested.
const DefaultSortKey = SortNameAsc

// ParseSortKey maps a request value onto one of the four sort keys.
// Unknown values fall back to DefaultSortKey.
func ParseSortKey(s string) SortKey {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
		return key
	default:
		return DefaultSortKey
	}
}

// FilterState is the search text, category selector and sort key driving a list view.
type FilterState struct {
	Search   string  `json:"search"`
	Category string  `json:"category"`
	Sort     SortKey `json:"sort"`
}

// DefaultFilterState returns the state a list view resets to.
func DefaultFilterState() FilterState {
	return FilterState{
		Search:   "",
		Category: AllCategories,
		Sort:     DefaultSortKey,
	}
}

// Normalize fills in defaults for empty fields and coerces the sort key.
func (f FilterState) Normalize() FilterState {
	f.Category = strings.TrimSpace(f.Category)
	if f.Category == "" {
		f.Category = AllCategories
	}
	f.Sort = ParseSortKey(string(f.Sort))
	return f
}
