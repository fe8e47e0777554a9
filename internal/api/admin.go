package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/backend/internal/service"
)

type AdminHandler struct {
	auth *service.AuthService
}

func NewAdminHandler(auth *service.AuthService) *AdminHandler {
	return &AdminHandler{auth: auth}
}

// CreateRestaurant provisions a restaurant account and its approved listing.
func (h *AdminHandler) CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant, err := h.auth.CreateRestaurantAccount(c.Request.Context(), req.Email, req.Password, req.Name, req.Cuisine, req.Address)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
}
