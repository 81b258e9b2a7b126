// Package storefront holds client-side application state: the backend API
// client, the browsable collections and the signed-in gate around the cart.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the storefront backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

func NewClient(baseURL string, log logrus.FieldLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log.WithField("component", "storefront_client"),
	}
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type userBody struct {
	User domain.PublicUser `json:"user"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.PublicUser, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, validationError("Please fill in all fields")
	}
	var out userBody
	in := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/register", in, &out); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &out.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.PublicUser, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, validationError("Please provide email and password")
	}
	var out userBody
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", in, &out); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &out.User, nil
}

// Restaurants returns ErrNoRestaurants when the backend has none.
func (c *Client) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	err := c.do(ctx, http.MethodGet, "/restaurants", nil, &out)
	if isStatus(err, http.StatusNotFound) {
		return nil, ErrNoRestaurants
	}
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return out, nil
}

func (c *Client) Restaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	if id == "" {
		return nil, validationError("restaurant id is required")
	}
	var out domain.Restaurant
	err := c.do(ctx, http.MethodGet, "/restaurants/"+url.PathEscape(id), nil, &out)
	if isStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("restaurant %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return &out, nil
}

func (c *Client) AddRestaurant(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, validationError("restaurant name is required")
	}
	var out struct {
		Message    string            `json:"message"`
		Restaurant domain.Restaurant `json:"restaurant"`
	}
	if err := c.do(ctx, http.MethodPost, "/add-restaurant", r, &out); err != nil {
		return nil, fmt.Errorf("add restaurant: %w", err)
	}
	return &out.Restaurant, nil
}

// Products fetches the whole grocery catalog through the backend proxy.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var page domain.ProductPage
	if err := c.do(ctx, http.MethodGet, "/grocery/products?limit=0", nil, &page); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return page.Products, nil
}

func (c *Client) Product(ctx context.Context, id int) (*domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodGet, "/grocery/products/"+strconv.Itoa(id), nil, &out)
	if isStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &out, nil
}

// UploadImage posts file to the backend and returns the hosted URL.
func (c *Client) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-image", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		URL string `json:"url"`
	}
	if err := c.send(req, &out); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return out.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.NewDecoder(resp.Body).Decode(&eb) == nil {
			apiErr.Message, apiErr.Code = eb.Error, eb.Code
		}
		c.log.WithFields(logrus.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
			"status": resp.StatusCode,
		}).Debug("backend request failed")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
