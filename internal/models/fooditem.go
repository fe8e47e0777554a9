package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// FoodItem is a menu entry owned by a restaurant. The hazard flags are the
// stored source of truth for menu filtering; the AI classifier only suggests
// values for them at creation time. Items are immutable once created.
type FoodItem struct {
	ID           uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	RestaurantID uuid.UUID        `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Price        float64          `gorm:"not null;check:price >= 0" json:"price"`
	Calories     *int             `json:"calories"`
	PhotoURL     string           `gorm:"size:255" json:"photo_url,omitempty"`

	ContainsGluten   bool `gorm:"not null;default:false" json:"contains_gluten"`
	ContainsLactose  bool `gorm:"not null;default:false" json:"contains_lactose"`
	NutAllergy       bool `gorm:"not null;default:false" json:"nut_allergy"`
	CholesterolRisk  bool `gorm:"not null;default:false" json:"cholesterol_risk"`
	DiabetesRisk     bool `gorm:"not null;default:false" json:"diabetes_risk"`
	HypertensionRisk bool `gorm:"not null;default:false" json:"hypertension_risk"`
	HighCarb         bool `gorm:"not null;default:false" json:"high_carb"`
	HighFat          bool `gorm:"not null;default:false" json:"high_fat"`

	// Allowed is the restaurant's visibility switch; items with Allowed=false
	// are never surfaced to customers.
	Allowed bool `gorm:"not null;default:true" json:"allowed"`
}

func (i *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
