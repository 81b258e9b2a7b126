package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fjod/go_foodcart/pkg/circuitbreaker"
	"github.com/fjod/go_foodcart/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageJSON = `{"products":[
	{"id":1,"title":"Essence Mascara","price":9.99,"rating":4.94,"category":"beauty","thumbnail":"https://cdn/1.png"},
	{"id":2,"title":"Apple","price":1.99,"rating":4.1,"category":"groceries","thumbnail":"https://cdn/2.png"}
],"total":194,"skip":0,"limit":2}`

func TestListPage(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, pageJSON)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", logger.Discard())
	page, err := c.ListPage(context.Background(), 12, 24)
	require.NoError(t, err)

	assert.Equal(t, "limit=12&skip=24", gotQuery)
	assert.Equal(t, 194, page.Total)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Essence Mascara", page.Products[0].Title)
	assert.Equal(t, "groceries", page.Products[1].Category)
}

func TestListAll_RequestsEverything(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"total":0,"skip":0,"limit":0}`)
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL, logger.Discard()).ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/7":
			fmt.Fprint(w, `{"id":7,"title":"Kiwi","price":2.49,"reviews":[{"rating":5,"comment":"Great"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, logger.Discard())

	p, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Kiwi", p.Title)
	require.Len(t, p.Reviews, 1)
	assert.Equal(t, 5, p.Reviews[0].Rating)

	_, err = c.Get(context.Background(), 8)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, logger.Discard()).ListAll(context.Background())

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, "upstream exploded", se.Body)
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"products":[`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, logger.Discard()).ListAll(context.Background())
	require.ErrorContains(t, err, "decode /products")
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := circuitbreaker.DefaultConfig("test-catalog")
	cfg.ConsecutiveFailures = 2
	cfg.Timeout = time.Hour
	c := NewClient(srv.URL, logger.Discard(), WithBreaker(cfg))

	for i := 0; i < 2; i++ {
		_, err := c.ListAll(context.Background())
		var se *StatusError
		require.True(t, errors.As(err, &se))
	}

	_, err := c.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), hits.Load())
}

func TestBreakerIgnoresNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := circuitbreaker.DefaultConfig("test-catalog")
	cfg.ConsecutiveFailures = 1
	c := NewClient(srv.URL, logger.Discard(), WithBreaker(cfg))

	for i := 0; i < 3; i++ {
		_, err := c.Get(context.Background(), i)
		assert.ErrorIs(t, err, ErrProductNotFound)
	}
}

func TestContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, logger.Discard()).ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
