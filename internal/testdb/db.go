package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/safebite/backend/internal/models"
)

// Open returns an isolated in-memory database with the full schema, suitable
// for service and handler tests that do not need Postgres semantics.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.FoodItem{},
		&models.DietaryProfile{},
		&models.Order{},
	))
	return db
}

// CreateUser inserts a user with the given role and a bcrypt-hashed default
// password, returning the record.
func CreateUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("%s+%s@example.com", role, uuid.New().String()[:8]),
		PasswordHash: string(hashed),
		Role:         role,
		Address:      "1 Test Street",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// CreateRestaurant inserts an approved restaurant owned by a fresh
// restaurant-role user.
func CreateRestaurant(t *testing.T, db *gorm.DB) *models.Restaurant {
	t.Helper()

	owner := CreateUser(t, db, models.RoleRestaurant)
	restaurant := models.Restaurant{
		ID:       owner.ID,
		Name:     "Test Kitchen",
		Cuisine:  "Fusion",
		Email:    owner.Email,
		Address:  owner.Address,
		Approved: true,
	}
	require.NoError(t, db.Create(&restaurant).Error)
	return &restaurant
}

// CreateItem inserts a visible food item for the restaurant, applying any
// mutators to the default record before saving.
func CreateItem(t *testing.T, db *gorm.DB, restaurantID uuid.UUID, mutate ...func(*models.FoodItem)) *models.FoodItem {
	t.Helper()

	item := models.FoodItem{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         fmt.Sprintf("Dish %s", uuid.New().String()[:8]),
		Ingredients:  models.JSONBStringArray{},
		Price:        5.0,
		Allowed:      true,
	}
	for _, m := range mutate {
		m(&item)
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}
