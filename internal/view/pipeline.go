// Package view derives the visible slice of a catalog collection from a
// FilterState: search, filters, sort, pagination, suggestions.
package view

import (
	"cmp"
	"slices"
	"strings"
)

// Fields tells the pipeline how to read an entity. A nil accessor disables
// the filters and sorts that need it. Noun names the entities in the
// no-results message.
type Fields[T any] struct {
	Noun       string
	Name       func(T) string
	Searchable []func(T) string
	Rating     func(T) float64
	Categories func(T) []string
	Price      func(T) float64
}

type Result[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
	Pages      []int
	Message    string
}

func (r Result[T]) HasPrev() bool { return r.Page > 1 }
func (r Result[T]) HasNext() bool { return r.Page < r.TotalPages }

const pageWindowSize = 5

// Apply runs the full pipeline over items. items is not modified.
func Apply[T any](items []T, fields Fields[T], state FilterState) Result[T] {
	filtered := Filter(items, fields, state)
	Sort(filtered, fields, state.Sort)

	size := state.pageSize()
	total := len(filtered)
	totalPages := max(1, (total+size-1)/size)
	page := min(max(state.Page, 1), totalPages)

	start := (page - 1) * size
	end := min(start+size, total)

	res := Result[T]{
		Items:      filtered[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   size,
		Pages:      PageWindow(page, totalPages),
	}
	if total == 0 {
		res.Message = NoResultsMessage(fields.Noun, state)
	}
	return res
}

// Filter returns a new slice with the entries matching every active filter.
func Filter[T any](items []T, fields Fields[T], state FilterState) []T {
	term := strings.ToLower(strings.TrimSpace(state.Search))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if term != "" && !matchesSearch(item, fields, term) {
			continue
		}
		if state.TopRated && fields.Rating != nil && !(fields.Rating(item) > TopRatedThreshold) {
			continue
		}
		if state.Category != "" && fields.Categories != nil && !hasCategory(fields.Categories(item), state.Category) {
			continue
		}
		if state.Bracket != nil && fields.Price != nil && !state.Bracket.Contains(fields.Price(item)) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch[T any](item T, fields Fields[T], term string) bool {
	if fields.Name != nil && strings.Contains(strings.ToLower(fields.Name(item)), term) {
		return true
	}
	for _, field := range fields.Searchable {
		if strings.Contains(strings.ToLower(field(item)), term) {
			return true
		}
	}
	return false
}

func hasCategory(categories []string, want string) bool {
	for _, c := range categories {
		if strings.EqualFold(c, want) {
			return true
		}
	}
	return false
}

// Sort orders items in place. Ties keep their fetched order.
func Sort[T any](items []T, fields Fields[T], key SortKey) {
	var less func(a, b T) int
	switch key {
	case SortRatingDesc:
		if fields.Rating == nil {
			return
		}
		less = func(a, b T) int { return cmp.Compare(fields.Rating(b), fields.Rating(a)) }
	case SortPriceAsc:
		if fields.Price == nil {
			return
		}
		less = func(a, b T) int { return cmp.Compare(fields.Price(a), fields.Price(b)) }
	case SortPriceDesc:
		if fields.Price == nil {
			return
		}
		less = func(a, b T) int { return cmp.Compare(fields.Price(b), fields.Price(a)) }
	case SortNameAsc:
		if fields.Name == nil {
			return
		}
		less = func(a, b T) int {
			return cmp.Compare(strings.ToLower(fields.Name(a)), strings.ToLower(fields.Name(b)))
		}
	default:
		return
	}
	slices.SortStableFunc(items, less)
}

// PageWindow returns up to five consecutive page numbers around current,
// shifted to stay inside [1, totalPages].
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	current = min(max(current, 1), totalPages)

	first := 1
	switch {
	case totalPages <= pageWindowSize:
	case current <= 3:
	case current >= totalPages-2:
		first = totalPages - pageWindowSize + 1
	default:
		first = current - 2
	}

	n := min(pageWindowSize, totalPages)
	pages := make([]int, n)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}
