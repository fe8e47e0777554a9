package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses. The lifecycle is linear: new -> accepted -> completed.
const (
	OrderStatusNew       = "new"
	OrderStatusAccepted  = "accepted"
	OrderStatusCompleted = "completed"
)

// OrderLine is the per-item snapshot frozen into an order at checkout, so
// historical orders are not rewritten by later catalog edits.
type OrderLine struct {
	ItemID   uuid.UUID `json:"item_id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
}

// OrderLines stores the snapshot as a JSONB column.
type OrderLines []OrderLine

// Value implements the driver.Valuer interface
func (l OrderLines) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *OrderLines) Scan(value interface{}) error {
	if value == nil {
		*l = OrderLines{}
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

	return json.Unmarshal(bytes, l)
}

// Order is created by a customer at checkout and thereafter mutated only by
// the owning restaurant through guarded status transitions. Orders are never
// deleted.
type Order struct {
	ID            uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	RestaurantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Lines         OrderLines     `gorm:"type:jsonb;not null;default:'[]'" json:"lines"`
	Total         float64        `gorm:"not null;check:total >= 0" json:"total"`
	PaymentMethod string         `gorm:"size:50" json:"payment_method"`
	Status        string         `gorm:"size:20;not null;default:'new';index" json:"status"`

	// Set on acceptance only.
	PrepTimeMinutes   *int       `json:"prep_time_minutes,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// IsActive reports whether the order still appears in the customer's active
// orders view.
func (o *Order) IsActive() bool {
	return o.Status == OrderStatusNew || o.Status == OrderStatusAccepted
}
