package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/safebite/backend/config"
	"github.com/safebite/backend/internal/database"
	"github.com/safebite/backend/internal/models"
)

func intPtr(v int) *int { return &v }

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	password := "testpassword123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	accounts := []models.User{
		{Email: "admin@safebite.dev", Role: models.RoleAdmin},
		{Email: "customer@safebite.dev", Role: models.RoleCustomer, Address: "12 Elm Street"},
		{Email: "warung@safebite.dev", Role: models.RoleRestaurant, Address: "3 Market Lane"},
	}
	for i := range accounts {
		accounts[i].PasswordHash = string(hashedPassword)
		err := db.Where("email = ?", accounts[i].Email).FirstOrCreate(&accounts[i]).Error
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", accounts[i].Email, err)
		}
		log.Printf("Seeded user %s (%s)", accounts[i].Email, accounts[i].Role)
	}

	owner := accounts[2]
	restaurant := models.Restaurant{
		ID:       owner.ID,
		Name:     "Warung Sehat",
		Cuisine:  "Indonesian",
		Email:    owner.Email,
		Address:  owner.Address,
		Approved: true,
	}
	if err := db.Where("id = ?", restaurant.ID).FirstOrCreate(&restaurant).Error; err != nil {
		log.Fatalf("Failed to seed restaurant: %v", err)
	}

	items := []models.FoodItem{
		{
			RestaurantID: restaurant.ID,
			Name:         "Gado-Gado",
			Description:  "Steamed vegetables with peanut sauce, lontong and krupuk",
			Ingredients:  models.JSONBStringArray{"vegetables", "peanut sauce", "rice cake", "crackers"},
			Price:        6.50,
			Calories:     intPtr(550),
			Allowed:      true,

			ContainsGluten: true,
			NutAllergy:     true,
			HighCarb:       true,
		},
		{
			RestaurantID: restaurant.ID,
			Name:         "Grilled Chicken Salad",
			Description:  "Grilled chicken breast over mixed greens, no dressing",
			Ingredients:  models.JSONBStringArray{"chicken breast", "mixed greens", "tomato", "cucumber"},
			Price:        7.00,
			Calories:     intPtr(380),
			Allowed:      true,
		},
		{
			RestaurantID: restaurant.ID,
			Name:         "Nasi Goreng Special",
			Description:  "Fried rice with egg, chicken and sweet soy sauce",
			Ingredients:  models.JSONBStringArray{"rice", "egg", "chicken", "sweet soy sauce"},
			Price:        5.75,
			Calories:     intPtr(720),
			Allowed:      true,

			ContainsGluten:   true,
			DiabetesRisk:     true,
			HypertensionRisk: true,
			HighCarb:         true,
			HighFat:          true,
		},
		{
			RestaurantID: restaurant.ID,
			Name:         "Cheese Omelette",
			Description:  "Three-egg omelette with cheddar",
			Ingredients:  models.JSONBStringArray{"egg", "cheddar", "butter"},
			Price:        4.25,
			Calories:     intPtr(450),
			Allowed:      true,

			ContainsLactose: true,
			CholesterolRisk: true,
			HighFat:         true,
		},
	}
	for i := range items {
		err := db.Where("restaurant_id = ? AND name = ?", restaurant.ID, items[i].Name).
			FirstOrCreate(&items[i]).Error
		if err != nil {
			log.Fatalf("Failed to seed item %s: %v", items[i].Name, err)
		}
	}
	log.Printf("Seeded restaurant %s with %d items", restaurant.Name, len(items))

	profile := models.DietaryProfile{
		UserID:      accounts[1].ID,
		NutAllergy:  true,
		LactoseFree: true,
		MaxCalories: intPtr(700),
	}
	err = db.Where("user_id = ?", profile.UserID).FirstOrCreate(&profile).Error
	if err != nil {
		log.Fatalf("Failed to seed dietary profile: %v", err)
	}
	log.Println("Seed complete")
}
