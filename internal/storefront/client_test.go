package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/fjod/go_foodcart/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend answers like the storefront backend.
type fakeBackend struct {
	mu          sync.Mutex
	restaurants []domain.Restaurant
	products    []domain.Product
	users       map[string]string // email -> password
	calls       map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{users: map[string]string{}, calls: map[string]int{}}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	track := func(name string, h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			f.calls[name]++
			f.mu.Unlock()
			h(w, r)
		}
	}

	mux.HandleFunc("POST /register", track("register", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		f.users[in["email"]] = in["password"]
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"user": domain.PublicUser{ID: "u-" + in["email"], Name: in["name"], Email: in["email"]},
		})
	}))
	mux.HandleFunc("POST /login", track("login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		pw, ok := f.users[in["email"]]
		f.mu.Unlock()
		if !ok || pw != in["password"] {
			writeErr(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"user": domain.PublicUser{ID: "u-" + in["email"], Email: in["email"]},
		})
	}))
	mux.HandleFunc("GET /restaurants", track("restaurants", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if len(f.restaurants) == 0 {
			writeErr(w, http.StatusNotFound, "No Restaurants Found")
			return
		}
		writeJSON(w, http.StatusOK, f.restaurants)
	}))
	mux.HandleFunc("GET /restaurants/{id}", track("restaurant", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, rest := range f.restaurants {
			if rest.ID == r.PathValue("id") {
				writeJSON(w, http.StatusOK, rest)
				return
			}
		}
		writeErr(w, http.StatusNotFound, "Restaurant not found")
	}))
	mux.HandleFunc("POST /add-restaurant", track("add", func(w http.ResponseWriter, r *http.Request) {
		var in domain.Restaurant
		_ = json.NewDecoder(r.Body).Decode(&in)
		in.ID = "new-id"
		f.mu.Lock()
		f.restaurants = append(f.restaurants, in)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Restaurant added successfully", "restaurant": in,
		})
	}))
	mux.HandleFunc("GET /grocery/products", track("products", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, domain.ProductPage{Products: f.products, Total: len(f.products)})
	}))
	mux.HandleFunc("POST /upload-image", track("upload", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			writeErr(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		writeJSON(w, http.StatusCreated, map[string]string{
			"url": "https://cdn.example.com/" + header.Filename + "?size=" + strconv.Itoa(len(data)),
		})
	}))
	return mux
}

func newTestClient(t *testing.T, f *fakeBackend) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", logger.Discard())
}

func TestClient_RegisterAndLogin(t *testing.T) {
	f := newFakeBackend()
	c := newTestClient(t, f)
	ctx := context.Background()

	user, err := c.Register(ctx, "Asha", "asha@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)

	user, err = c.Login(ctx, "asha@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u-asha@example.com", user.ID)

	_, err = c.Login(ctx, "asha@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestClient_ValidatesBeforeSending(t *testing.T) {
	f := newFakeBackend()
	c := newTestClient(t, f)
	ctx := context.Background()

	_, err := c.Register(ctx, "", "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.Login(ctx, "a@b.c", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Please provide email and password")

	_, err = c.AddRestaurant(ctx, &domain.Restaurant{Name: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Zero(t, f.count("register"))
	assert.Zero(t, f.count("login"))
	assert.Zero(t, f.count("add"))
}

func TestClient_Restaurants(t *testing.T) {
	f := newFakeBackend()
	c := newTestClient(t, f)
	ctx := context.Background()

	_, err := c.Restaurants(ctx)
	assert.ErrorIs(t, err, ErrNoRestaurants)

	created, err := c.AddRestaurant(ctx, &domain.Restaurant{Name: "Spice Hub", Rating: 4.4})
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)

	list, err := c.Restaurants(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := c.Restaurant(ctx, "new-id")
	require.NoError(t, err)
	assert.Equal(t, "Spice Hub", got.Name)

	_, err = c.Restaurant(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ProductsAndUpload(t *testing.T) {
	f := newFakeBackend()
	f.products = []domain.Product{{ID: 1, Title: "Milk"}, {ID: 2, Title: "Eggs"}}
	c := newTestClient(t, f)
	ctx := context.Background()

	products, err := c.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	url, err := c.UploadImage(ctx, "logo.png", strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/logo.png?size=3", url)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, logger.Discard())

	_, err := c.Products(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
