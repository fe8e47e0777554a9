package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant is the public-facing record for a restaurant account. Its ID is
// the ID of the owning user, so orders addressed to a restaurant can be
// authorized against the token's user id directly.
type Restaurant struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Cuisine   string         `gorm:"size:100" json:"cuisine"`
	Email     string         `gorm:"size:255;not null" json:"email"`
	Address   string         `gorm:"size:255" json:"address"`
	Approved  bool           `gorm:"not null;default:false" json:"approved"`
}
