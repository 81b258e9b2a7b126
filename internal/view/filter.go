package view

import (
	"strconv"
)

const (
	DefaultPageSize = 10
	// TopRatedThreshold is exclusive: a rating must be strictly greater.
	TopRatedThreshold = 4.0
)

type SortKey int

const (
	SortNone SortKey = iota
	SortRatingDesc
	SortPriceAsc
	SortPriceDesc
	SortNameAsc
)

func (k SortKey) String() string {
	switch k {
	case SortRatingDesc:
		return "rating_desc"
	case SortPriceAsc:
		return "price_asc"
	case SortPriceDesc:
		return "price_desc"
	case SortNameAsc:
		return "name_asc"
	default:
		return "none"
	}
}

// ParseSortKey maps the String form back to a SortKey. Unknown values give SortNone.
func ParseSortKey(s string) SortKey {
	for _, k := range []SortKey{SortRatingDesc, SortPriceAsc, SortPriceDesc, SortNameAsc} {
		if k.String() == s {
			return k
		}
	}
	return SortNone
}

// Bracket is a price range [Min, Max). An Open bracket has no upper bound.
type Bracket struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max,omitempty"`
	Open bool    `json:"open,omitempty"`
}

func (b Bracket) Contains(price float64) bool {
	if price < b.Min {
		return false
	}
	return b.Open || price < b.Max
}

func (b Bracket) Label() string {
	if b.Open {
		return formatAmount(b.Min) + "+"
	}
	return formatAmount(b.Min) + " - " + formatAmount(b.Max)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FilterState holds the user controlled inputs of a derived view. Every
// setter except SetPage moves the view back to the first page.
type FilterState struct {
	Search   string
	TopRated bool
	Category string
	Bracket  *Bracket
	Sort     SortKey
	Page     int
	PageSize int
}

func NewFilterState(pageSize int) FilterState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return FilterState{Page: 1, PageSize: pageSize}
}

func (f *FilterState) SetSearch(term string) {
	f.Search = term
	f.Page = 1
}

func (f *FilterState) SetTopRated(on bool) {
	f.TopRated = on
	f.Page = 1
}

func (f *FilterState) ToggleTopRated() {
	f.SetTopRated(!f.TopRated)
}

// SetCategory filters by category. An empty string clears the filter.
func (f *FilterState) SetCategory(category string) {
	f.Category = category
	f.Page = 1
}

// SetBracket filters by price. nil clears the filter.
func (f *FilterState) SetBracket(b *Bracket) {
	f.Bracket = b
	f.Page = 1
}

func (f *FilterState) SetSort(k SortKey) {
	f.Sort = k
	f.Page = 1
}

// SetPage does not clamp; Apply clamps against the filtered size.
func (f *FilterState) SetPage(page int) {
	f.Page = page
}

// Reset clears all filters and keeps the page size.
func (f *FilterState) Reset() {
	*f = NewFilterState(f.PageSize)
}

func (f FilterState) pageSize() int {
	if f.PageSize <= 0 {
		return DefaultPageSize
	}
	return f.PageSize
}
