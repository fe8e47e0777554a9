package models

import (
	"time"

	"github.com/google/uuid"
)

// DietaryProfile holds a user's medical/dietary restrictions, one row per
// user with upsert semantics. The menu filter only ever reads it.
//
// HighProtein is recorded as a stated preference but has no hazard flag on
// FoodItem, so it never excludes an item.
type DietaryProfile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Diabetes     bool `gorm:"not null;default:false" json:"diabetes"`
	GlutenFree   bool `gorm:"not null;default:false" json:"gluten_free"`
	NutAllergy   bool `gorm:"not null;default:false" json:"nut_allergy"`
	LactoseFree  bool `gorm:"not null;default:false" json:"lactose_free"`
	Hypertension bool `gorm:"not null;default:false" json:"hypertension"`
	Cholesterol  bool `gorm:"not null;default:false" json:"cholesterol"`
	LowCarb      bool `gorm:"not null;default:false" json:"low_carb"`
	HighProtein  bool `gorm:"not null;default:false" json:"high_protein"`
	LowFat       bool `gorm:"not null;default:false" json:"low_fat"`

	// MaxCalories is an optional per-meal ceiling; nil means no limit.
	MaxCalories *int `json:"max_calories"`
}

func (DietaryProfile) TableName() string {
	return "dietary_profiles"
}
