package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisOrderEvents fans order events out over Redis pub/sub, one channel per
// restaurant, so a dashboard receives new orders without polling.
type RedisOrderEvents struct {
	redis *redis.Client
}

// NewRedisOrderEvents creates a new RedisOrderEvents instance
func NewRedisOrderEvents(client *redis.Client) *RedisOrderEvents {
	return &RedisOrderEvents{redis: client}
}

func orderChannel(restaurantID uuid.UUID) string {
	return fmt.Sprintf("orders:%s", restaurantID)
}

// PublishOrderEvent implements OrderEventPublisher.
func (e *RedisOrderEvents) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	if err := e.redis.Publish(ctx, orderChannel(event.Order.RestaurantID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of order events for one restaurant. The
// returned cancel function must be called when the consumer goes away; the
// event channel is closed afterwards.
func (e *RedisOrderEvents) Subscribe(ctx context.Context, restaurantID uuid.UUID) (<-chan OrderEvent, func()) {
	sub := e.redis.Subscribe(ctx, orderChannel(restaurantID))
	events := make(chan OrderEvent)

	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var event OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("dropping malformed order event for restaurant %s: %v", restaurantID, err)
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, func() { _ = sub.Close() }
}
