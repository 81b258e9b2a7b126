package service

import (
	"context"
	"sync"

	"github.com/fjod/go_foodcart/internal/cache"
	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/fjod/go_foodcart/internal/events"
	"github.com/fjod/go_foodcart/internal/repository"
)

type mockRestaurantRepo struct {
	m           sync.RWMutex
	restaurants []domain.Restaurant
	err         error
	getAllCalls int
	// gate, when set, holds the next GetAll after it has read the rows.
	gate *readGate
}

type readGate struct {
	entered chan struct{}
	release chan struct{}
}

func newReadGate() *readGate {
	return &readGate{entered: make(chan struct{}), release: make(chan struct{})}
}

func (m *mockRestaurantRepo) GetAll(context.Context) ([]domain.Restaurant, error) {
	m.m.Lock()
	m.getAllCalls++
	if m.err != nil {
		m.m.Unlock()
		return nil, m.err
	}
	rows := append([]domain.Restaurant{}, m.restaurants...)
	gate := m.gate
	m.gate = nil
	m.m.Unlock()

	if gate != nil {
		close(gate.entered)
		<-gate.release
	}
	return rows, nil
}

func (m *mockRestaurantRepo) GetByID(_ context.Context, id string) (*domain.Restaurant, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.restaurants {
		if m.restaurants[i].ID == id {
			r := m.restaurants[i]
			return &r, nil
		}
	}
	return nil, repository.ErrRestaurantNotFound
}

func (m *mockRestaurantRepo) Create(_ context.Context, r *domain.Restaurant) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.restaurants = append(m.restaurants, *r)
	return nil
}

func (m *mockRestaurantRepo) calls() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.getAllCalls
}

type mockRestaurantCache struct {
	m           sync.RWMutex
	list        []domain.Restaurant
	byID        map[string]*domain.Restaurant
	err         error
	invalidated []string
}

func newMockRestaurantCache() *mockRestaurantCache {
	return &mockRestaurantCache{byID: map[string]*domain.Restaurant{}}
}

func (m *mockRestaurantCache) GetAll(context.Context) ([]domain.Restaurant, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.list == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.list, nil
}

func (m *mockRestaurantCache) SetAll(_ context.Context, restaurants []domain.Restaurant) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.list = restaurants
	return nil
}

func (m *mockRestaurantCache) Get(_ context.Context, id string) (*domain.Restaurant, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.byID[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return r, nil
}

func (m *mockRestaurantCache) Set(_ context.Context, r *domain.Restaurant) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.byID[r.ID] = r
	return nil
}

func (m *mockRestaurantCache) Invalidate(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.list = nil
	delete(m.byID, id)
	m.invalidated = append(m.invalidated, id)
	return nil
}

func (m *mockRestaurantCache) cachedList() []domain.Restaurant {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.list
}

func (m *mockRestaurantCache) cached(id string) *domain.Restaurant {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.byID[id]
}

type mockPublisher struct {
	m      sync.Mutex
	events []events.RestaurantEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, e events.RestaurantEvent) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

type mockUserRepo struct {
	m     sync.RWMutex
	users map[string]*domain.User
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*domain.User{}}
}

func (m *mockUserRepo) Create(_ context.Context, u *domain.User) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	m.users[u.Email] = u
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}
