package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safebite/backend/internal/models"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidPrepTime   = errors.New("prep time must be a positive number of minutes")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotOrderOwner     = errors.New("order belongs to another restaurant")
	ErrInvalidTransition = errors.New("order status does not permit this transition")
)

// deliveryBufferMinutes is the fixed transit buffer added to the restaurant's
// declared prep time when estimating delivery.
const deliveryBufferMinutes = 15

// OrderEvent is pushed to the owning restaurant's dashboard stream whenever
// an order is created or transitions.
type OrderEvent struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

// Order event types.
const (
	EventOrderPlaced    = "order.placed"
	EventOrderAccepted  = "order.accepted"
	EventOrderCompleted = "order.completed"
)

// OrderEventPublisher delivers order events to the restaurant dashboard. The
// lifecycle engine itself stays subscription-agnostic.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

// RestaurantOrder is an order enriched with customer contact details for the
// restaurant dashboard.
type RestaurantOrder struct {
	models.Order
	CustomerEmail   string `json:"customer_email"`
	CustomerAddress string `json:"customer_address"`
}

// OrderService drives the order lifecycle: placement by customers and
// guarded status transitions by restaurants.
type OrderService struct {
	db     *gorm.DB
	carts  *CartService
	events OrderEventPublisher
	now    func() time.Time
}

// NewOrderService creates a new OrderService instance. events may be nil when
// no dashboard stream is wired (tests, seed tooling).
func NewOrderService(db *gorm.DB, carts *CartService, events OrderEventPublisher) *OrderService {
	return &OrderService{
		db:     db,
		carts:  carts,
		events: events,
		now:    time.Now,
	}
}

// PlaceOrder creates a new order from the user's cart. The cart is cleared
// only after the order has been persisted, so a failed placement can be
// retried.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, paymentMethod string) (*models.Order, error) {
	lines, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	orderLines := make(models.OrderLines, len(lines))
	for i, line := range lines {
		orderLines[i] = models.OrderLine{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		}
	}

	order := &models.Order{
		UserID:        userID,
		RestaurantID:  lines[0].RestaurantID,
		Lines:         orderLines,
		Total:         ComputeTotal(lines),
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusNew,
	}

	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order is already persisted; a stale cart is recoverable.
		log.Printf("failed to clear cart for user %s after checkout: %v", userID, err)
	}

	s.publish(ctx, OrderEvent{Type: EventOrderPlaced, Order: *order})
	return order, nil
}

// Accept transitions an order from new to accepted, recording the prep time
// and deriving the estimated delivery. The precondition check and mutation
// are a single conditional update, so two dashboards racing on the same
// order cannot both succeed.
func (s *OrderService) Accept(ctx context.Context, restaurantID, orderID uuid.UUID, prepMinutes int) (*models.Order, error) {
	if prepMinutes <= 0 {
		return nil, ErrInvalidPrepTime
	}

	eta := s.now().Add(time.Duration(prepMinutes+deliveryBufferMinutes) * time.Minute)
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND restaurant_id = ? AND status = ?", orderID, restaurantID, models.OrderStatusNew).
		Updates(map[string]interface{}{
			"status":             models.OrderStatusAccepted,
			"prep_time_minutes":  prepMinutes,
			"estimated_delivery": eta,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to accept order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.rejectTransition(ctx, restaurantID, orderID)
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, OrderEvent{Type: EventOrderAccepted, Order: *order})
	return order, nil
}

// Complete transitions an order from accepted to completed, the terminal
// state. Guarded the same way as Accept.
func (s *OrderService) Complete(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND restaurant_id = ? AND status = ?", orderID, restaurantID, models.OrderStatusAccepted).
		Update("status", models.OrderStatusCompleted)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to complete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.rejectTransition(ctx, restaurantID, orderID)
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, OrderEvent{Type: EventOrderCompleted, Order: *order})
	return order, nil
}

// rejectTransition explains a guarded update that matched no rows: missing
// order, wrong owner, or a status that does not permit the transition. State
// is unchanged in every case.
func (s *OrderService) rejectTransition(ctx context.Context, restaurantID, orderID uuid.UUID) error {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if order.RestaurantID != restaurantID {
		return ErrNotOrderOwner
	}
	return fmt.Errorf("%w: order is %s", ErrInvalidTransition, order.Status)
}

func (s *OrderService) getOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ActiveForUser returns the user's orders still in flight (new or accepted).
func (s *OrderService) ActiveForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []string{models.OrderStatusNew, models.OrderStatusAccepted}).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListForRestaurant returns a restaurant's orders, newest first, optionally
// filtered by status, each enriched with customer contact details. A
// customer record that cannot be resolved degrades to "Unknown" rather than
// failing the listing.
func (s *OrderService) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID, status string) ([]RestaurantOrder, error) {
	query := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}

	enriched := make([]RestaurantOrder, len(orders))
	for i, order := range orders {
		enriched[i] = RestaurantOrder{Order: order, CustomerEmail: "Unknown", CustomerAddress: "Unknown"}
		var user models.User
		if err := s.db.WithContext(ctx).First(&user, "id = ?", order.UserID).Error; err == nil {
			enriched[i].CustomerEmail = user.Email
			enriched[i].CustomerAddress = user.Address
		}
	}
	return enriched, nil
}

// EstimatedDeliveryDisplay formats the estimated delivery as a time of day.
// It is only available once an order has been accepted.
func EstimatedDeliveryDisplay(order *models.Order) (string, bool) {
	if order.Status != models.OrderStatusAccepted || order.EstimatedDelivery == nil {
		return "", false
	}
	return order.EstimatedDelivery.Format("15:04"), true
}

func (s *OrderService) publish(ctx context.Context, event OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("failed to publish %s event for order %s: %v", event.Type, event.Order.ID, err)
	}
}
