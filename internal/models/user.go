package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles recognized by the platform. Tokens carry exactly one of these.
const (
	RoleCustomer   = "customer"
	RoleRestaurant = "restaurant"
	RoleAdmin      = "admin"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"size:20;not null;default:'customer'" json:"role"`
	Address      string         `gorm:"size:255" json:"address"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
