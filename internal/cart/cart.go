package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// SnapshotStore persists cart state between sessions. cache.RedisCartCache
// satisfies it.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (*State, error)
	Set(ctx context.Context, key string, state *State) error
	Delete(ctx context.Context, key string) error
}

type Cart struct {
	mu       sync.Mutex
	state    State
	notifier Notifier
}

// New returns an empty cart. A nil notifier drops notifications.
func New(notifier Notifier) *Cart {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &Cart{
		state:    State{Items: []LineItem{}},
		notifier: notifier,
	}
}

// Dispatch applies action and reports whether the cart changed.
func (c *Cart) Dispatch(action Action) bool {
	c.mu.Lock()
	next, n := Reduce(c.state, action)
	c.state = next
	c.mu.Unlock()

	if n == nil {
		return false
	}
	c.notifier.Notify(*n)
	return true
}

func (c *Cart) AddItem(p Product) { c.Dispatch(Add(p)) }
func (c *Cart) IncrementQuantity(id string) { c.Dispatch(Increment(id)) }
func (c *Cart) DecrementQuantity(id string) { c.Dispatch(Decrement(id)) }
func (c *Cart) RemoveItem(id string) { c.Dispatch(Remove(id)) }
func (c *Cart) ClearCart() { c.Dispatch(Clear()) }

func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Total()
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone().Items
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.state.Items)
}

// Count is the number of units across all line items.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.state.Items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Restore replaces the cart contents without emitting notifications. Items
// with a non-positive quantity or a repeated ID are dropped.
func (c *Cart) Restore(s State) {
	items := make([]LineItem, 0, len(s.Items))
	seen := make(map[string]bool, len(s.Items))
	for _, item := range s.Items {
		if item.Quantity < 1 || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		items = append(items, item)
	}

	c.mu.Lock()
	c.state = State{Items: items}
	c.mu.Unlock()
}
