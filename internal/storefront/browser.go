package storefront

import (
	"context"
	"errors"
	"sync"

	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/fjod/go_foodcart/internal/view"
	"github.com/sirupsen/logrus"
)

// Status is the fetch state of a browsable collection.
type Status[T any] struct {
	Loading bool
	Err     error
	Data    []T
}

type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Browser owns one fetched collection and the filter state applied to it.
// Each Load gets a generation number; only the latest generation may write.
type Browser[T any] struct {
	fetch  FetchFunc[T]
	fields view.Fields[T]
	log    logrus.FieldLogger
	// empty replaces the view message when nothing was fetched at all.
	empty  string

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	status Status[T]
	filter view.FilterState
}

func NewBrowser[T any](fetch FetchFunc[T], fields view.Fields[T], pageSize int, log logrus.FieldLogger) *Browser[T] {
	return &Browser[T]{
		fetch:  fetch,
		fields: fields,
		log:    log.WithField("component", fields.Noun+"_browser"),
		filter: view.NewFilterState(pageSize),
	}
}

// NewRestaurantBrowser treats an empty restaurant list as data, not failure.
func NewRestaurantBrowser(c *Client, pageSize int, log logrus.FieldLogger) *Browser[domain.Restaurant] {
	fetch := func(ctx context.Context) ([]domain.Restaurant, error) {
		items, err := c.Restaurants(ctx)
		if errors.Is(err, ErrNoRestaurants) {
			return []domain.Restaurant{}, nil
		}
		return items, err
	}
	b := NewBrowser(fetch, view.RestaurantFields, pageSize, log)
	b.empty = "No Restaurants Found"
	return b
}

func NewGroceryBrowser(c *Client, pageSize int, log logrus.FieldLogger) *Browser[domain.Product] {
	return NewBrowser(c.Products, view.ProductFields, pageSize, log)
}

// Load fetches the collection, cancelling any fetch still in flight. A
// result that arrives after a newer Load started is dropped with ErrStale.
// A failed fetch keeps the previous data.
func (b *Browser[T]) Load(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.gen++
	gen := b.gen
	b.cancel = cancel
	b.status.Loading = true
	b.status.Err = nil
	b.mu.Unlock()

	items, err := b.fetch(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		b.log.WithField("generation", gen).Debug("dropping stale response")
		return ErrStale
	}
	b.cancel = nil
	b.status.Loading = false
	if err != nil {
		b.status.Err = err
		b.log.WithError(err).Warn("fetch failed")
		return err
	}
	b.status.Data = items
	return nil
}

// Cancel aborts the in-flight fetch, if any. Its result will be stale.
func (b *Browser[T]) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel == nil {
		return
	}
	b.cancel()
	b.cancel = nil
	b.gen++
	b.status.Loading = false
}

func (b *Browser[T]) Status() Status[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.status
	s.Data = append([]T(nil), b.status.Data...)
	return s
}

func (b *Browser[T]) Filter() view.FilterState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// Update mutates the filter state through its setters, e.g.
// b.Update(func(f *view.FilterState) { f.SetSearch("pizza") }).
func (b *Browser[T]) Update(fn func(f *view.FilterState)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.filter)
}

// View runs the derived view pipeline over the loaded collection.
func (b *Browser[T]) View() view.Result[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := view.Apply(b.status.Data, b.fields, b.filter)
	if len(b.status.Data) == 0 && b.empty != "" {
		result.Message = b.empty
	}
	return result
}

func (b *Browser[T]) Suggestions(term string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return view.Suggestions(b.status.Data, b.fields, term, view.MaxSuggestions)
}

func (b *Browser[T]) Categories() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return view.Categories(b.status.Data, b.fields)
}

func (b *Browser[T]) PriceBrackets(width float64) []view.Bracket {
	b.mu.Lock()
	defer b.mu.Unlock()
	return view.PriceBrackets(view.MaxPrice(b.status.Data, b.fields), width)
}
