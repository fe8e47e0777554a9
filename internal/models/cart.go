package models

import "github.com/google/uuid"

// CartLine is one selected item in a user's cart. Name, price and ingredients
// are snapshotted at add time so later catalog edits do not change a cart in
// progress. Carts are session state, serialized to the cart store as JSON;
// they are not a database table.
type CartLine struct {
	ItemID       uuid.UUID `json:"item_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Ingredients  []string  `json:"ingredients"`
	Quantity     int       `json:"quantity"`
}
