package api

import "github.com/google/uuid"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type DietaryProfileRequest struct {
	Diabetes     bool `json:"diabetes"`
	GlutenFree   bool `json:"gluten_free"`
	NutAllergy   bool `json:"nut_allergy"`
	LactoseFree  bool `json:"lactose_free"`
	Hypertension bool `json:"hypertension"`
	Cholesterol  bool `json:"cholesterol"`
	LowCarb      bool `json:"low_carb"`
	HighProtein  bool `json:"high_protein"`
	LowFat       bool `json:"low_fat"`
	MaxCalories  *int `json:"max_calories" binding:"omitempty,gt=0"`
}

type AddCartItemRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
}

type PlaceOrderRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type AcceptOrderRequest struct {
	PrepTimeMinutes int `json:"prep_time_minutes" binding:"required"`
}

type CreateItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Price       float64  `json:"price" binding:"gte=0"`
	Calories    *int     `json:"calories" binding:"omitempty,gt=0"`

	ContainsGluten   bool `json:"contains_gluten"`
	ContainsLactose  bool `json:"contains_lactose"`
	NutAllergy       bool `json:"nut_allergy"`
	CholesterolRisk  bool `json:"cholesterol_risk"`
	DiabetesRisk     bool `json:"diabetes_risk"`
	HypertensionRisk bool `json:"hypertension_risk"`
	HighCarb         bool `json:"high_carb"`
	HighFat          bool `json:"high_fat"`

	// Classify asks the AI classifier to fill the hazard flags and calories
	// from the description, overriding the values above when it succeeds.
	Classify bool `json:"classify"`
}

type ClassifyRequest struct {
	Description string `json:"description" binding:"required"`
}

type CreateRestaurantRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Cuisine  string `json:"cuisine"`
	Address  string `json:"address"`
}
