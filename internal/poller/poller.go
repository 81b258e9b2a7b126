package poller

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fjod/go_foodcart/internal/cache"
	"github.com/fjod/go_foodcart/internal/events"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const GroupID = "storefront-cache-invalidator"

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Poller drops cached restaurants when a change event arrives. All instances
// share one consumer group and one Redis cache, so each event is handled once.
// The writing instance has already invalidated the cache; the poller repeats it
// after the event round trip, clearing a list cached by a read that overlapped
// the write on another instance.
type Poller struct {
	reader messageReader
	cache  cache.RestaurantCache
	log    logrus.FieldLogger
}

func NewPoller(c cache.RestaurantCache, log logrus.FieldLogger, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    events.TopicRestaurantEvents,
		GroupID:  GroupID,
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{
		reader: reader,
		cache:  c,
		log:    log.WithField("component", "poller"),
	}
}

const retryDelay = time.Second

// Run blocks until ctx is cancelled. Read failures are retried after a short delay.
func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p.readAndInvalidate(ctx) {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		p.log.WithError(err).Warn("error closing reader")
	}
}

// readAndInvalidate handles one message and reports whether the reader is
// still usable.
func (p *Poller) readAndInvalidate(ctx context.Context) bool {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.log.WithError(err).Warn("error reading message")
		}
		return false
	}

	var event events.RestaurantEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		p.log.WithError(err).Warn("error parsing message")
		return true
	}
	if event.RestaurantID == "" {
		p.log.WithField("offset", m.Offset).Warn("missing restaurant_id")
		return true
	}

	if err := p.cache.Invalidate(ctx, event.RestaurantID); err != nil {
		p.log.WithError(err).WithField("restaurant_id", event.RestaurantID).Warn("failed to invalidate cache")
		return true
	}

	p.log.WithFields(logrus.Fields{
		"event_type":    event.EventType,
		"restaurant_id": event.RestaurantID,
	}).Debug("restaurant cache invalidated")
	return true
}
