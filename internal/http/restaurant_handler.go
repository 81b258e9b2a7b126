package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/fjod/go_foodcart/internal/repository"
	"github.com/fjod/go_foodcart/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	msgNoRestaurants      = "No Restaurants Found"
	msgRestaurantNotFound = "Restaurant not found"
	msgRestaurantAdded    = "Restaurant added successfully"
)

type RestaurantService interface {
	GetAll(ctx context.Context) ([]domain.Restaurant, error)
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	Create(ctx context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error)
}

type RestaurantHandler struct {
	restaurants RestaurantService
	timeout     time.Duration
	responder
}

func NewRestaurantHandler(restaurants RestaurantService, timeout time.Duration, log logrus.FieldLogger) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, timeout: timeout, responder: responder{log: log.WithField("handler", "restaurants")}}
}

type AddRestaurantResponse struct {
	Message    string             `json:"message"`
	Restaurant *domain.Restaurant `json:"restaurant"`
}

// List answers 404 when the catalog is empty.
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	restaurants, err := h.restaurants.GetAll(ctx)
	if err != nil {
		h.internal(w, r, err, "Error fetching restaurants")
		return
	}
	if len(restaurants) == 0 {
		h.error(w, http.StatusNotFound, "not_found", msgNoRestaurants)
		return
	}

	h.json(w, http.StatusOK, restaurants)
}

func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	restaurant, err := h.restaurants.GetByID(ctx, id)
	if errors.Is(err, repository.ErrRestaurantNotFound) {
		h.error(w, http.StatusNotFound, "not_found", msgRestaurantNotFound)
		return
	}
	if err != nil {
		h.internal(w, r, err, "Error fetching restaurant")
		return
	}

	h.json(w, http.StatusOK, restaurant)
}

func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req domain.Restaurant
	if err := decodeJSON(r, &req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	created, err := h.restaurants.Create(ctx, &req)
	if errors.Is(err, service.ErrMissingFields) {
		h.error(w, http.StatusBadRequest, "missing_fields", "restaurant name is required")
		return
	}
	if err != nil {
		h.internal(w, r, err, "Error adding restaurant")
		return
	}

	h.json(w, http.StatusCreated, AddRestaurantResponse{Message: msgRestaurantAdded, Restaurant: created})
}
