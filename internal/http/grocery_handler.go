package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/go_foodcart/internal/catalog"
	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type ProductCatalog interface {
	ListPage(ctx context.Context, limit, skip int) (*domain.ProductPage, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
}

// GroceryHandler proxies the third-party product catalog.
type GroceryHandler struct {
	catalog ProductCatalog
	timeout time.Duration
	responder
}

func NewGroceryHandler(c ProductCatalog, timeout time.Duration, log logrus.FieldLogger) *GroceryHandler {
	return &GroceryHandler{catalog: c, timeout: timeout, responder: responder{log: log.WithField("handler", "grocery")}}
}

func (h *GroceryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	limit, err := queryInt(r, "limit")
	if err != nil {
		h.error(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
		return
	}
	skip, err := queryInt(r, "skip")
	if err != nil {
		h.error(w, http.StatusBadRequest, "invalid_skip", "skip must be a non-negative integer")
		return
	}

	page, err := h.catalog.ListPage(ctx, limit, skip)
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}

	h.json(w, http.StatusOK, page)
}

func (h *GroceryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		h.error(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	product, err := h.catalog.Get(ctx, id)
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}

	h.json(w, http.StatusOK, product)
}

func (h *GroceryHandler) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		h.error(w, http.StatusNotFound, "not_found", "Product not found")
	case errors.Is(err, catalog.ErrUnavailable):
		h.error(w, http.StatusServiceUnavailable, "service_unavailable", "product catalog is unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		h.error(w, http.StatusGatewayTimeout, "timeout", "product catalog timed out")
	default:
		requestLogger(h.log, r).WithError(err).Warn("catalog request failed")
		h.error(w, http.StatusBadGateway, "upstream_error", "Failed to fetch data")
	}
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("invalid integer")
	}
	return n, nil
}
