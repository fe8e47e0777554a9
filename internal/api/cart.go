package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/safebite/backend/internal/middleware"
	"github.com/safebite/backend/internal/models"
	"github.com/safebite/backend/internal/service"
)

type CartHandler struct {
	carts *service.CartService
	menus *service.MenuService
}

func NewCartHandler(carts *service.CartService, menus *service.MenuService) *CartHandler {
	return &CartHandler{carts: carts, menus: menus}
}

func cartResponse(lines []models.CartLine) gin.H {
	if lines == nil {
		lines = []models.CartLine{}
	}
	return gin.H{
		"items": lines,
		"total": service.ComputeTotal(lines),
	}
}

// Get returns the caller's cart with its running total.
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	lines, err := h.carts.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(lines))
}

// AddItem puts one unit of a food item into the caller's cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.menus.GetItem(c.Request.Context(), req.ItemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Food item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		return
	}

	lines, err := h.carts.AddItem(c.Request.Context(), userID, item)
	if err != nil {
		if errors.Is(err, service.ErrMixedRestaurants) {
			c.JSON(http.StatusConflict, gin.H{"error": "Cart already has items from another restaurant"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(lines))
}

// DecreaseItem removes one unit of a food item from the caller's cart.
func (h *CartHandler) DecreaseItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	lines, err := h.carts.Decrease(c.Request.Context(), userID, itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(lines))
}

// Clear empties the caller's cart.
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.carts.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(nil))
}
