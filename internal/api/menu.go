package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/safebite/backend/internal/middleware"
	"github.com/safebite/backend/internal/service"
)

type MenuHandler struct {
	menus    *service.MenuService
	profiles *service.ProfileService
}

func NewMenuHandler(menus *service.MenuService, profiles *service.ProfileService) *MenuHandler {
	return &MenuHandler{menus: menus, profiles: profiles}
}

// ListRestaurants returns every approved restaurant.
func (h *MenuHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.menus.ListRestaurants(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GetMenu returns a restaurant's menu filtered against the caller's dietary
// profile. ?show_all=true bypasses the filter; warnings are always attached.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	restaurant, err := h.menus.GetRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurant"})
		return
	}

	profile, err := h.profiles.GetDietaryProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	showAll := c.Query("show_all") == "true"
	entries, err := h.menus.Menu(c.Request.Context(), restaurantID, profile, showAll)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant,
		"items":      entries,
		"show_all":   showAll,
		"filtered":   profile != nil && !showAll,
	})
}
