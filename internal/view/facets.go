package view

import (
	"math"
	"sort"
	"strings"
)

// PriceBrackets splits [0, maxPrice] into brackets of width and appends an
// open bracket above them.
func PriceBrackets(maxPrice, width float64) []Bracket {
	if width <= 0 {
		return nil
	}
	if maxPrice < 0 {
		maxPrice = 0
	}

	n := int(math.Floor(maxPrice/width)) + 1
	brackets := make([]Bracket, 0, n+1)
	for i := 0; i < n; i++ {
		lo := float64(i) * width
		brackets = append(brackets, Bracket{Min: lo, Max: lo + width})
	}
	return append(brackets, Bracket{Min: float64(n) * width, Open: true})
}

// MaxPrice is the highest price in items, 0 when empty.
func MaxPrice[T any](items []T, fields Fields[T]) float64 {
	if fields.Price == nil {
		return 0
	}
	highest := 0.0
	for _, item := range items {
		highest = math.Max(highest, fields.Price(item))
	}
	return highest
}

// Categories lists the distinct categories in items, sorted case-insensitively.
func Categories[T any](items []T, fields Fields[T]) []string {
	if fields.Categories == nil {
		return []string{}
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, item := range items {
		for _, c := range fields.Categories(item) {
			key := strings.ToLower(strings.TrimSpace(c))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
