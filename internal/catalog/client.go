// Package catalog is a client for the third-party grocery product API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/fjod/go_foodcart/pkg/circuitbreaker"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("product catalog unavailable")
)

// StatusError is a non-success response other than 404.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog returned status %d: %s", e.StatusCode, e.Body)
}

const maxErrorBody = 512

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     logrus.FieldLogger
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func WithBreaker(cfg circuitbreaker.Config) Option {
	return func(cl *Client) {
		cfg.IsSuccessful = countsAsSuccess
		cl.breaker = circuitbreaker.New[[]byte](cfg, cl.log)
	}
}

func NewClient(baseURL string, log logrus.FieldLogger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log.WithField("component", "catalog_client"),
	}
	WithBreaker(circuitbreaker.DefaultConfig("product-catalog"))(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPage fetches one page. limit 0 asks for the whole catalog.
func (c *Client) ListPage(ctx context.Context, limit, skip int) (*domain.ProductPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(max(limit, 0)))
	q.Set("skip", strconv.Itoa(max(skip, 0)))

	var page domain.ProductPage
	if err := c.getJSON(ctx, "/products?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	if page.Products == nil {
		page.Products = []domain.Product{}
	}
	return &page, nil
}

func (c *Client) ListAll(ctx context.Context) (*domain.ProductPage, error) {
	return c.ListPage(ctx, 0, 0)
}

func (c *Client) Get(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, "/products/"+strconv.Itoa(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst interface{}) error {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, path)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return body, nil
}

// countsAsSuccess keeps client-side problems from tripping the breaker.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, ErrProductNotFound) || errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode < 500
	}
	return false
}
