package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicRestaurantEvents = "restaurant-events"

	EventRestaurantCreated = "restaurant.created"

	HeaderEventType = "event_type"
)

type RestaurantEvent struct {
	EventType    string    `json:"event_type"`
	RestaurantID string    `json:"restaurant_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func RestaurantCreated(id string) RestaurantEvent {
	return RestaurantEvent{
		EventType:    EventRestaurantCreated,
		RestaurantID: id,
		OccurredAt:   time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event RestaurantEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicRestaurantEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return &KafkaPublisher{writer: w}
}

// Publish keys the message by restaurant ID so events for one restaurant
// stay on one partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event RestaurantEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.RestaurantID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(event.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, RestaurantEvent) error { return nil }
func (NoopPublisher) Close() error { return nil }
