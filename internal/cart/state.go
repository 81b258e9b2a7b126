// Package cart holds the shopping cart state machine.
//
// Reduce is a pure transition over State. Cart wraps it with a mutex and
// forwards the notification each transition produces to a Notifier.
package cart

import (
	"github.com/shopspring/decimal"
)

// Product is the cart's view of anything that can be bought: a restaurant
// menu item or a grocery product. Build one with ProductFrom.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
}

// LineItem is one product in the cart. Display fields are copied when the
// product is first added and are not refreshed afterwards.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// State is an ordered list of line items, at most one per ID.
type State struct {
	Items []LineItem `json:"items"`
}

func (s State) find(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	return State{Items: items}
}

// Total sums price times quantity over every line item.
func (s State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Quantity returns the quantity for id, or 0 when it is not in the cart.
func (s State) Quantity(id string) int {
	if i := s.find(id); i >= 0 {
		return s.Items[i].Quantity
	}
	return 0
}
