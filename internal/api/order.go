package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/safebite/backend/internal/middleware"
	"github.com/safebite/backend/internal/models"
	"github.com/safebite/backend/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
	events service.OrderEventSubscriber
}

// NewOrderHandler creates a new OrderHandler instance. events may be nil when
// no live dashboard stream is wired.
func NewOrderHandler(orders *service.OrderService, events service.OrderEventSubscriber) *OrderHandler {
	return &OrderHandler{orders: orders, events: events}
}

func orderView(order *models.Order) gin.H {
	view := gin.H{"order": order}
	if eta, ok := service.EstimatedDeliveryDisplay(order); ok {
		view["estimated_delivery_display"] = eta
	}
	return view
}

// Place creates an order from the caller's cart.
func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), userID, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}
	c.JSON(http.StatusCreated, orderView(order))
}

// ListMine returns the caller's order history, newest first.
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orders, err := h.orders.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Active returns the caller's orders still in flight.
func (h *OrderHandler) Active(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orders, err := h.orders.ActiveForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListForRestaurant returns the caller restaurant's orders, optionally
// filtered by ?status=, enriched with customer contact details.
func (h *OrderHandler) ListForRestaurant(c *gin.Context) {
	restaurantID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	status := c.Query("status")
	switch status {
	case "", models.OrderStatusNew, models.OrderStatusAccepted, models.OrderStatusCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	orders, err := h.orders.ListForRestaurant(c.Request.Context(), restaurantID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Accept moves a new order to accepted with the restaurant's prep time.
func (h *OrderHandler) Accept(c *gin.Context) {
	restaurantID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req AcceptOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Accept(c.Request.Context(), restaurantID, orderID, req.PrepTimeMinutes)
	if err != nil {
		h.transitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView(order))
}

// Complete moves an accepted order to its terminal completed state.
func (h *OrderHandler) Complete(c *gin.Context) {
	restaurantID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.orders.Complete(c.Request.Context(), restaurantID, orderID)
	if err != nil {
		h.transitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView(order))
}

func (h *OrderHandler) transitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPrepTime):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, service.ErrNotOrderOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Order belongs to another restaurant"})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
	}
}

// Stream pushes the restaurant's order events over server-sent events until
// the client disconnects.
func (h *OrderHandler) Stream(c *gin.Context) {
	restaurantID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if h.events == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live order stream is not available"})
		return
	}

	events, cancel := h.events.Subscribe(c.Request.Context(), restaurantID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(event.Type, event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
