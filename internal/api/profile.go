package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/backend/internal/middleware"
	"github.com/safebite/backend/internal/models"
	"github.com/safebite/backend/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetDietary returns the caller's dietary profile; an empty profile is
// returned for users who never filled the medical form.
func (h *ProfileHandler) GetDietary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.profiles.GetDietaryProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	if profile == nil {
		profile = &models.DietaryProfile{UserID: userID}
	}

	c.JSON(http.StatusOK, profile)
}

// PutDietary creates or replaces the caller's dietary profile.
func (h *ProfileHandler) PutDietary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req DietaryProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := models.DietaryProfile{
		UserID:       userID,
		Diabetes:     req.Diabetes,
		GlutenFree:   req.GlutenFree,
		NutAllergy:   req.NutAllergy,
		LactoseFree:  req.LactoseFree,
		Hypertension: req.Hypertension,
		Cholesterol:  req.Cholesterol,
		LowCarb:      req.LowCarb,
		HighProtein:  req.HighProtein,
		LowFat:       req.LowFat,
		MaxCalories:  req.MaxCalories,
	}
	if err := h.profiles.UpsertDietaryProfile(c.Request.Context(), &profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
