package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safebite/backend/internal/models"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrItemNotFound       = errors.New("food item not found")
	ErrNotItemOwner       = errors.New("food item belongs to another restaurant")
)

// hazardLabels is the tag vocabulary in display order: one human-readable
// warning per hazard flag on an item.
var hazardLabels = []struct {
	Label   string
	Flagged func(*models.FoodItem) bool
}{
	{"Gluten", func(i *models.FoodItem) bool { return i.ContainsGluten }},
	{"Lactose", func(i *models.FoodItem) bool { return i.ContainsLactose }},
	{"Nuts", func(i *models.FoodItem) bool { return i.NutAllergy }},
	{"High Cholesterol", func(i *models.FoodItem) bool { return i.CholesterolRisk }},
	{"High Sugar", func(i *models.FoodItem) bool { return i.DiabetesRisk }},
	{"High Sodium", func(i *models.FoodItem) bool { return i.HypertensionRisk }},
	{"Not Low Carb", func(i *models.FoodItem) bool { return i.HighCarb }},
	{"High Fat", func(i *models.FoodItem) bool { return i.HighFat }},
}

// RestrictionRule maps one dietary profile restriction to the item hazard
// flag it excludes. The table is the single place the correspondence lives;
// HighProtein has no item-side flag and therefore no rule.
type RestrictionRule struct {
	Restriction string
	Active      func(*models.DietaryProfile) bool
	Hazard      func(*models.FoodItem) bool
}

// RestrictionRules is the profile-flag to item-flag correspondence table.
var RestrictionRules = []RestrictionRule{
	{"gluten_free", func(p *models.DietaryProfile) bool { return p.GlutenFree }, func(i *models.FoodItem) bool { return i.ContainsGluten }},
	{"lactose_free", func(p *models.DietaryProfile) bool { return p.LactoseFree }, func(i *models.FoodItem) bool { return i.ContainsLactose }},
	{"nut_allergy", func(p *models.DietaryProfile) bool { return p.NutAllergy }, func(i *models.FoodItem) bool { return i.NutAllergy }},
	{"cholesterol", func(p *models.DietaryProfile) bool { return p.Cholesterol }, func(i *models.FoodItem) bool { return i.CholesterolRisk }},
	{"diabetes", func(p *models.DietaryProfile) bool { return p.Diabetes }, func(i *models.FoodItem) bool { return i.DiabetesRisk }},
	{"hypertension", func(p *models.DietaryProfile) bool { return p.Hypertension }, func(i *models.FoodItem) bool { return i.HypertensionRisk }},
	{"low_carb", func(p *models.DietaryProfile) bool { return p.LowCarb }, func(i *models.FoodItem) bool { return i.HighCarb }},
	{"low_fat", func(p *models.DietaryProfile) bool { return p.LowFat }, func(i *models.FoodItem) bool { return i.HighFat }},
}

// ComputeWarnings returns the human-readable warning labels for every hazard
// flag set on the item. An empty result means the item is safe for all.
func ComputeWarnings(item *models.FoodItem) []string {
	var warnings []string
	for _, h := range hazardLabels {
		if h.Flagged(item) {
			warnings = append(warnings, h.Label)
		}
	}
	return warnings
}

// ItemSafeFor reports whether a single item passes the given profile. A nil
// profile means no restrictions. Unknown calories are never excluded by the
// calorie ceiling.
func ItemSafeFor(item *models.FoodItem, profile *models.DietaryProfile) bool {
	if profile == nil {
		return true
	}
	if profile.MaxCalories != nil && item.Calories != nil && *item.Calories > *profile.MaxCalories {
		return false
	}
	for _, rule := range RestrictionRules {
		if rule.Active(profile) && rule.Hazard(item) {
			return false
		}
	}
	return true
}

// FilterMenu returns the items safe for the given profile, preserving input
// order. showAll bypasses filtering entirely (the user opted into seeing
// unsafe items); a nil profile is an empty restriction set.
func FilterMenu(items []models.FoodItem, profile *models.DietaryProfile, showAll bool) []models.FoodItem {
	if showAll || profile == nil {
		return items
	}
	filtered := make([]models.FoodItem, 0, len(items))
	for _, item := range items {
		if ItemSafeFor(&item, profile) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// MenuEntry is a food item annotated with its warning labels for display.
type MenuEntry struct {
	models.FoodItem
	Warnings []string `json:"warnings"`
	Safe     bool     `json:"safe"`
}

// MenuService handles the restaurant catalog and filtered menu reads.
type MenuService struct {
	db *gorm.DB
}

// NewMenuService creates a new MenuService instance
func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// ListRestaurants returns all approved restaurants.
func (s *MenuService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := s.db.WithContext(ctx).Where("approved = ?", true).Order("name").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

// GetRestaurant retrieves an approved restaurant by ID.
func (s *MenuService) GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).Where("id = ? AND approved = ?", id, true).First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Menu returns the restaurant's catalog filtered against the profile and
// annotated with warnings. Items the restaurant has not allowed are never
// surfaced regardless of showAll.
func (s *MenuService) Menu(ctx context.Context, restaurantID uuid.UUID, profile *models.DietaryProfile, showAll bool) ([]MenuEntry, error) {
	var items []models.FoodItem
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ? AND allowed = ?", restaurantID, true).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	filtered := FilterMenu(items, profile, showAll)
	entries := make([]MenuEntry, len(filtered))
	for i, item := range filtered {
		warnings := ComputeWarnings(&item)
		entries[i] = MenuEntry{
			FoodItem: item,
			Warnings: warnings,
			Safe:     len(warnings) == 0,
		}
	}
	return entries, nil
}

// ItemsForRestaurant returns the full catalog of a restaurant owner,
// including items hidden from customers.
func (s *MenuService) ItemsForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem stores a new menu item for a restaurant.
func (s *MenuService) CreateItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves a visible food item by ID.
func (s *MenuService) GetItem(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	var item models.FoodItem
	err := s.db.WithContext(ctx).Where("id = ? AND allowed = ?", id, true).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SetItemPhoto records the uploaded photo URL on an item owned by the given
// restaurant. Items are otherwise immutable.
func (s *MenuService) SetItemPhoto(ctx context.Context, restaurantID, itemID uuid.UUID, photoURL string) error {
	res := s.db.WithContext(ctx).Model(&models.FoodItem{}).
		Where("id = ? AND restaurant_id = ?", itemID, restaurantID).
		Update("photo_url", photoURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var item models.FoodItem
		if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return ErrNotItemOwner
	}
	return nil
}
