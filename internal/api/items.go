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

// maxPhotoBytes caps item photo uploads at 5 MB.
const maxPhotoBytes = 5 << 20

type ItemHandler struct {
	menus      *service.MenuService
	classifier service.Classifier
	images     service.PhotoUploader
}

// NewItemHandler creates a new ItemHandler instance. classifier and images
// may be nil; the corresponding endpoints then report the feature as
// unavailable.
func NewItemHandler(menus *service.MenuService, classifier service.Classifier, images service.PhotoUploader) *ItemHandler {
	return &ItemHandler{menus: menus, classifier: classifier, images: images}
}

// List returns the caller restaurant's full catalog, hidden items included.
func (h *ItemHandler) List(c *gin.Context) {
	restaurantID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := h.menus.ItemsForRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create stores a new menu item for the caller restaurant. With classify set,
// the hazard flags and calories are filled from the description by the
// classifier; classifier failure falls back to the submitted flags.
func (h *ItemHandler) Create(c *gin.Context) {
	restaurantID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.FoodItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Price:        req.Price,
		Calories:     req.Calories,
		Allowed:      true,

		ContainsGluten:   req.ContainsGluten,
		ContainsLactose:  req.ContainsLactose,
		NutAllergy:       req.NutAllergy,
		CholesterolRisk:  req.CholesterolRisk,
		DiabetesRisk:     req.DiabetesRisk,
		HypertensionRisk: req.HypertensionRisk,
		HighCarb:         req.HighCarb,
		HighFat:          req.HighFat,
	}

	classified := false
	if req.Classify && h.classifier != nil && req.Description != "" {
		if cls, err := h.classifier.ClassifyDescription(c.Request.Context(), req.Description); err == nil {
			item.ContainsGluten = cls.ContainsGluten
			item.ContainsLactose = cls.ContainsLactose
			item.NutAllergy = cls.NutAllergy
			item.CholesterolRisk = cls.CholesterolRisk
			item.DiabetesRisk = cls.DiabetesRisk
			item.HypertensionRisk = cls.HypertensionRisk
			item.HighCarb = cls.HighCarb
			item.HighFat = cls.HighFat
			if cls.Calories != nil {
				item.Calories = cls.Calories
			}
			classified = true
		}
	}

	created, err := h.menus.CreateItem(c.Request.Context(), &item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item":       created,
		"warnings":   service.ComputeWarnings(created),
		"classified": classified,
	})
}

// Classify suggests hazard flags and calories for a description without
// storing anything.
func (h *ItemHandler) Classify(c *gin.Context) {
	if h.classifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Classification is not available"})
		return
	}

	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	classification, err := h.classifier.ClassifyDescription(c.Request.Context(), req.Description)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Classification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classification": classification})
}

// UploadPhoto stores a photo for one of the caller restaurant's items and
// records the resulting URL on it.
func (h *ItemHandler) UploadPhoto(c *gin.Context) {
	restaurantID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo upload is not available"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo file provided"})
		return
	}
	if file.Size > maxPhotoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Photo exceeds the 5MB limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read photo"})
		return
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read photo"})
		return
	}

	photoURL, err := h.images.UploadItemPhoto(c.Request.Context(), itemID, data, file.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo"})
		return
	}

	if err := h.menus.SetItemPhoto(c.Request.Context(), restaurantID, itemID, photoURL); err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Food item not found"})
		case errors.Is(err, service.ErrNotItemOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Food item belongs to another restaurant"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo URL"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": photoURL})
}
