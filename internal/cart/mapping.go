package cart

import (
	"strconv"

	"github.com/fjod/go_foodcart/internal/domain"
)

// Mapping extracts the cart fields from a catalog type.
type Mapping[T any] struct {
	ID    func(T) string
	Name  func(T) string
	Price func(T) float64
	Image func(T) string
}

func ProductFrom[T any](m Mapping[T], v T) Product {
	p := Product{
		ID:    m.ID(v),
		Name:  m.Name(v),
		Price: m.Price(v),
	}
	if m.Image != nil {
		p.ImageURL = m.Image(v)
	}
	return p
}

// MenuItemMapping keys menu items by restaurant and section since item IDs
// repeat across menu lists.
func MenuItemMapping(restaurantID, section string) Mapping[domain.MenuItem] {
	return Mapping[domain.MenuItem]{
		ID:    func(m domain.MenuItem) string { return m.CartKey(restaurantID, section) },
		Name:  func(m domain.MenuItem) string { return m.Name },
		Price: func(m domain.MenuItem) float64 { return m.Price },
		Image: func(m domain.MenuItem) string { return m.ImageURL },
	}
}

var GroceryMapping = Mapping[domain.Product]{
	ID:    func(p domain.Product) string { return "grocery:" + strconv.Itoa(p.ID) },
	Name:  func(p domain.Product) string { return p.Title },
	Price: func(p domain.Product) float64 { return p.Price },
	Image: func(p domain.Product) string { return p.Thumbnail },
}
