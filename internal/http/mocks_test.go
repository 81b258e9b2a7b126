package http

import (
	"context"
	"io"
	"sync"

	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/fjod/go_foodcart/internal/repository"
)

type UserServiceMock struct {
	user *domain.PublicUser
	err  error

	gotName, gotEmail, gotPassword string
}

func (m *UserServiceMock) Register(_ context.Context, name, email, password string) (*domain.PublicUser, error) {
	m.gotName, m.gotEmail, m.gotPassword = name, email, password
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *UserServiceMock) Login(_ context.Context, email, password string) (*domain.PublicUser, error) {
	m.gotEmail, m.gotPassword = email, password
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

type RestaurantServiceMock struct {
	restaurants []domain.Restaurant
	err         error

	mu      sync.Mutex
	created []*domain.Restaurant
}

func (m *RestaurantServiceMock) GetAll(context.Context) ([]domain.Restaurant, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.restaurants, nil
}

func (m *RestaurantServiceMock) GetByID(_ context.Context, id string) (*domain.Restaurant, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.restaurants {
		if m.restaurants[i].ID == id {
			return &m.restaurants[i], nil
		}
	}
	return nil, repository.ErrRestaurantNotFound
}

func (m *RestaurantServiceMock) Create(_ context.Context, r *domain.Restaurant) (*domain.Restaurant, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = "generated-id"
	m.created = append(m.created, r)
	return r, nil
}

type CatalogMock struct {
	page    *domain.ProductPage
	product *domain.Product
	err     error

	gotLimit, gotSkip, gotID int
}

func (m *CatalogMock) ListPage(_ context.Context, limit, skip int) (*domain.ProductPage, error) {
	m.gotLimit, m.gotSkip = limit, skip
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

func (m *CatalogMock) Get(_ context.Context, id int) (*domain.Product, error) {
	m.gotID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

type UploaderMock struct {
	url string
	err error

	gotFilename string
	gotBody     []byte
}

func (m *UploaderMock) Upload(_ context.Context, filename string, file io.Reader) (string, error) {
	m.gotFilename = filename
	body, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.gotBody = body
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}
