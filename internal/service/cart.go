package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/safebite/backend/internal/models"
)

// ErrMixedRestaurants rejects an add that would put items from two
// restaurants into one cart; an order always targets a single restaurant.
var ErrMixedRestaurants = errors.New("cart already contains items from another restaurant")

// Carts are session state: they survive an app restart only for the TTL and
// are never part of the durable order record.
const cartTTL = 24 * time.Hour

// AddLine returns the cart with one more of the given item: an existing line
// keeps its add-time name/price snapshot and gains quantity, a new item gets
// a fresh line with quantity 1.
func AddLine(lines []models.CartLine, item *models.FoodItem) ([]models.CartLine, error) {
	for i := range lines {
		if lines[i].ItemID == item.ID {
			lines[i].Quantity++
			return lines, nil
		}
	}
	if len(lines) > 0 && lines[0].RestaurantID != item.RestaurantID {
		return lines, ErrMixedRestaurants
	}
	return append(lines, models.CartLine{
		ItemID:       item.ID,
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		Price:        item.Price,
		Ingredients:  item.Ingredients,
		Quantity:     1,
	}), nil
}

// DecreaseLine lowers the matching line's quantity by one, removing the line
// when it reaches zero. Unknown ids are a no-op.
func DecreaseLine(lines []models.CartLine, itemID uuid.UUID) []models.CartLine {
	out := lines[:0]
	for _, line := range lines {
		if line.ItemID == itemID {
			line.Quantity--
		}
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	return out
}

// ComputeTotal sums price times quantity over all lines. Missing values count
// as zero; the total never goes negative and the function never fails.
func ComputeTotal(lines []models.CartLine) float64 {
	var total float64
	for _, line := range lines {
		if line.Price <= 0 || line.Quantity <= 0 {
			continue
		}
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// CartStore persists one cart per user.
type CartStore interface {
	Get(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	Save(ctx context.Context, userID uuid.UUID, lines []models.CartLine) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// RedisCartStore keeps carts in Redis under cart:<userID> with a TTL.
type RedisCartStore struct {
	redis *redis.Client
}

// NewRedisCartStore creates a new RedisCartStore instance
func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{redis: client}
}

func cartKey(userID uuid.UUID) string {
	return fmt.Sprintf("cart:%s", userID)
}

func (s *RedisCartStore) Get(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	data, err := s.redis.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return lines, nil
}

func (s *RedisCartStore) Save(ctx context.Context, userID uuid.UUID, lines []models.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.redis.Set(ctx, cartKey(userID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *RedisCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.redis.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// CartService applies the cart aggregation rules on top of a CartStore.
type CartService struct {
	store CartStore
}

// NewCartService creates a new CartService instance
func NewCartService(store CartStore) *CartService {
	return &CartService{store: store}
}

// Get returns the user's current cart lines.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	return s.store.Get(ctx, userID)
}

// AddItem adds one unit of the item to the user's cart.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, item *models.FoodItem) ([]models.CartLine, error) {
	lines, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines, err = AddLine(lines, item)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Decrease removes one unit of the item from the user's cart.
func (s *CartService) Decrease(ctx context.Context, userID, itemID uuid.UUID) ([]models.CartLine, error) {
	lines, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines = DecreaseLine(lines, itemID)
	if err := s.store.Save(ctx, userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Clear empties the user's cart unconditionally.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Clear(ctx, userID)
}
