package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fjod/go_foodcart/internal/cache"
	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/fjod/go_foodcart/internal/events"
	"github.com/fjod/go_foodcart/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	allRestaurantsKey = "all"
	cacheWriteTimeout = 2 * time.Second
)

type RestaurantService struct {
	repo      repository.RestaurantRepository
	cache     cache.RestaurantCache
	publisher events.Publisher
	log       logrus.FieldLogger
	sfg       singleflight.Group // collapses concurrent cache misses

	// listVersion is bumped by every write. A list read under an older
	// version is never written to the cache.
	listMu      sync.Mutex
	listVersion uint64
}

func NewRestaurantService(
	repo repository.RestaurantRepository,
	cache cache.RestaurantCache,
	publisher events.Publisher,
	log logrus.FieldLogger,
) *RestaurantService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &RestaurantService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log.WithField("component", "restaurant_service"),
	}
}

// GetAll returns every restaurant. An empty catalog is an empty slice, not an error.
func (s *RestaurantService) GetAll(ctx context.Context) ([]domain.Restaurant, error) {
	v, err, _ := s.sfg.Do(allRestaurantsKey, func() (interface{}, error) {
		restaurants, err := s.cache.GetAll(ctx)
		if err == nil {
			return restaurants, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.WithError(err).Warn("cache get failed")
		}

		version := s.currentListVersion()
		restaurants, err = s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		go s.fillListCache(version, restaurants)

		return restaurants, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Restaurant), nil
}

func (s *RestaurantService) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	v, err, _ := s.sfg.Do("id:"+id, func() (interface{}, error) {
		restaurant, err := s.cache.Get(ctx, id)
		if err == nil {
			return restaurant, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.WithError(err).WithField("restaurant_id", id).Warn("cache get failed")
		}

		restaurant, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), restaurant); errSet != nil {
				s.log.WithError(errSet).WithField("restaurant_id", id).Warn("cache set failed")
			}
		}()

		return restaurant, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Restaurant), nil
}

// Create stores restaurant under a new server-generated ID, ignoring any ID
// the caller supplied.
func (s *RestaurantService) Create(ctx context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	if strings.TrimSpace(restaurant.Name) == "" {
		return nil, fmt.Errorf("restaurant name: %w", ErrMissingFields)
	}

	restaurant.ID = uuid.NewString()
	restaurant.CreatedAt = time.Time{}
	if err := s.repo.Create(ctx, restaurant); err != nil {
		s.log.WithError(err).Error("repo create restaurant failed")
		return nil, err
	}

	s.listMu.Lock()
	s.listVersion++
	s.invalidateCache(restaurant.ID)
	s.listMu.Unlock()
	s.sfg.Forget(allRestaurantsKey)

	if err := s.publisher.Publish(ctx, events.RestaurantCreated(restaurant.ID)); err != nil {
		s.log.WithError(err).WithField("restaurant_id", restaurant.ID).Warn("publish event failed")
	}

	return restaurant, nil
}

func (s *RestaurantService) invalidateCache(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.WithError(err).Warn("cache invalidate failed")
	}
}

func (s *RestaurantService) currentListVersion() uint64 {
	s.listMu.Lock()
	defer s.listMu.Unlock()
	return s.listVersion
}

// fillListCache caches restaurants unless a write happened after they were read.
func (s *RestaurantService) fillListCache(version uint64, restaurants []domain.Restaurant) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
	defer cancel()

	s.listMu.Lock()
	defer s.listMu.Unlock()
	if version != s.listVersion {
		s.log.WithField("version", version).Debug("skipping stale list cache fill")
		return
	}
	if err := s.cache.SetAll(ctx, restaurants); err != nil {
		s.log.WithError(err).Warn("cache set failed")
	}
}
