package view

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fjod/go_foodcart/internal/domain"
)

var amountPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// RestaurantFields searches name and cuisines. Categories are the cuisines,
// price is the amount in the cost-for-two message.
var RestaurantFields = Fields[domain.Restaurant]{
	Noun: "restaurants",
	Name: func(r domain.Restaurant) string { return r.Name },
	Searchable: []func(domain.Restaurant) string{
		func(r domain.Restaurant) string { return strings.Join(r.Cuisines, ", ") },
	},
	Rating:     func(r domain.Restaurant) float64 { return r.Rating },
	Categories: func(r domain.Restaurant) []string { return r.Cuisines },
	Price:      func(r domain.Restaurant) float64 { return CostForTwo(r.CostForTwoMessage) },
}

var ProductFields = Fields[domain.Product]{
	Noun: "products",
	Name: func(p domain.Product) string { return p.Title },
	Searchable: []func(domain.Product) string{
		func(p domain.Product) string { return p.Category },
		func(p domain.Product) string { return p.Brand },
		func(p domain.Product) string { return p.Description },
	},
	Rating:     func(p domain.Product) float64 { return p.Rating },
	Categories: func(p domain.Product) []string { return []string{p.Category} },
	Price:      func(p domain.Product) float64 { return p.Price },
}

// CostForTwo extracts the first amount from messages like "₹1,200 for two".
// It returns 0 when there is none.
func CostForTwo(message string) float64 {
	m := amountPattern.FindString(strings.ReplaceAll(message, ",", ""))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
