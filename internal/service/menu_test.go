package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebite/backend/internal/models"
	"github.com/safebite/backend/internal/testdb"
)

func intPtr(v int) *int { return &v }

func TestItemSafeForNilProfile(t *testing.T) {
	item := models.FoodItem{ContainsGluten: true, NutAllergy: true, HighFat: true}
	assert.True(t, ItemSafeFor(&item, nil))
}

func TestItemSafeForRestrictionPairs(t *testing.T) {
	cases := []struct {
		name    string
		profile models.DietaryProfile
		item    models.FoodItem
	}{
		{"gluten_free excludes gluten", models.DietaryProfile{GlutenFree: true}, models.FoodItem{ContainsGluten: true}},
		{"lactose_free excludes lactose", models.DietaryProfile{LactoseFree: true}, models.FoodItem{ContainsLactose: true}},
		{"nut_allergy excludes nuts", models.DietaryProfile{NutAllergy: true}, models.FoodItem{NutAllergy: true}},
		{"cholesterol excludes cholesterol risk", models.DietaryProfile{Cholesterol: true}, models.FoodItem{CholesterolRisk: true}},
		{"diabetes excludes diabetes risk", models.DietaryProfile{Diabetes: true}, models.FoodItem{DiabetesRisk: true}},
		{"hypertension excludes hypertension risk", models.DietaryProfile{Hypertension: true}, models.FoodItem{HypertensionRisk: true}},
		{"low_carb excludes high carb", models.DietaryProfile{LowCarb: true}, models.FoodItem{HighCarb: true}},
		{"low_fat excludes high fat", models.DietaryProfile{LowFat: true}, models.FoodItem{HighFat: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, ItemSafeFor(&tc.item, &tc.profile))

			// The same item passes once the restriction is lifted.
			assert.True(t, ItemSafeFor(&tc.item, &models.DietaryProfile{}))
		})
	}
}

func TestItemSafeForHighProteinNeverExcludes(t *testing.T) {
	profile := models.DietaryProfile{HighProtein: true}
	item := models.FoodItem{
		ContainsGluten: true, ContainsLactose: true, NutAllergy: true,
		CholesterolRisk: true, DiabetesRisk: true, HypertensionRisk: true,
		HighCarb: true, HighFat: true,
	}
	assert.True(t, ItemSafeFor(&item, &profile))
}

func TestItemSafeForCalorieCeiling(t *testing.T) {
	profile := models.DietaryProfile{MaxCalories: intPtr(600)}

	assert.False(t, ItemSafeFor(&models.FoodItem{Calories: intPtr(800)}, &profile))
	assert.True(t, ItemSafeFor(&models.FoodItem{Calories: intPtr(600)}, &profile))
	assert.True(t, ItemSafeFor(&models.FoodItem{Calories: intPtr(450)}, &profile))

	// Unknown calories are never excluded by the ceiling.
	assert.True(t, ItemSafeFor(&models.FoodItem{}, &profile))
}

func TestFilterMenu(t *testing.T) {
	items := []models.FoodItem{
		{Name: "Peanut Satay", NutAllergy: true, ContainsGluten: true},
		{Name: "Green Salad"},
		{Name: "Mac and Cheese", ContainsLactose: true, HighCarb: true},
	}

	t.Run("nil profile keeps everything", func(t *testing.T) {
		assert.Len(t, FilterMenu(items, nil, false), 3)
	})

	t.Run("show all bypasses the filter", func(t *testing.T) {
		profile := models.DietaryProfile{NutAllergy: true, LactoseFree: true}
		assert.Len(t, FilterMenu(items, &profile, true), 3)
	})

	t.Run("restrictions remove unsafe items in order", func(t *testing.T) {
		profile := models.DietaryProfile{NutAllergy: true}
		filtered := FilterMenu(items, &profile, false)
		require.Len(t, filtered, 2)
		assert.Equal(t, "Green Salad", filtered[0].Name)
		assert.Equal(t, "Mac and Cheese", filtered[1].Name)
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		profile := models.DietaryProfile{GlutenFree: true}
		assert.Empty(t, FilterMenu(nil, &profile, false))
	})
}

func TestComputeWarnings(t *testing.T) {
	t.Run("clean item has none", func(t *testing.T) {
		assert.Empty(t, ComputeWarnings(&models.FoodItem{}))
	})

	t.Run("labels follow the vocabulary order", func(t *testing.T) {
		item := models.FoodItem{
			ContainsGluten: true, ContainsLactose: true, NutAllergy: true,
			CholesterolRisk: true, DiabetesRisk: true, HypertensionRisk: true,
			HighCarb: true, HighFat: true,
		}
		assert.Equal(t, []string{
			"Gluten", "Lactose", "Nuts", "High Cholesterol",
			"High Sugar", "High Sodium", "Not Low Carb", "High Fat",
		}, ComputeWarnings(&item))
	})

	t.Run("subset of flags", func(t *testing.T) {
		item := models.FoodItem{NutAllergy: true, HighFat: true}
		assert.Equal(t, []string{"Nuts", "High Fat"}, ComputeWarnings(&item))
	})
}

func TestMenuServiceListRestaurants(t *testing.T) {
	db := testdb.Open(t)
	svc := NewMenuService(db)

	approved := testdb.CreateRestaurant(t, db)

	pending := testdb.CreateRestaurant(t, db)
	require.NoError(t, db.Model(pending).Update("approved", false).Error)

	restaurants, err := svc.ListRestaurants(context.Background())
	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, approved.ID, restaurants[0].ID)
}

func TestMenuServiceMenu(t *testing.T) {
	db := testdb.Open(t)
	svc := NewMenuService(db)
	restaurant := testdb.CreateRestaurant(t, db)

	testdb.CreateItem(t, db, restaurant.ID, func(i *models.FoodItem) {
		i.Name = "Peanut Satay"
		i.NutAllergy = true
	})
	testdb.CreateItem(t, db, restaurant.ID, func(i *models.FoodItem) {
		i.Name = "Green Salad"
	})
	testdb.CreateItem(t, db, restaurant.ID, func(i *models.FoodItem) {
		i.Name = "Off Menu"
		i.Allowed = false
	})

	t.Run("no profile shows visible items with warnings", func(t *testing.T) {
		entries, err := svc.Menu(context.Background(), restaurant.ID, nil, false)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, []string{"Nuts"}, entries[0].Warnings)
		assert.False(t, entries[0].Safe)
		assert.True(t, entries[1].Safe)
	})

	t.Run("profile filters unsafe items", func(t *testing.T) {
		profile := models.DietaryProfile{NutAllergy: true}
		entries, err := svc.Menu(context.Background(), restaurant.ID, &profile, false)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Green Salad", entries[0].Name)
	})

	t.Run("show all keeps unsafe items but never hidden ones", func(t *testing.T) {
		profile := models.DietaryProfile{NutAllergy: true}
		entries, err := svc.Menu(context.Background(), restaurant.ID, &profile, true)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestMenuServiceGetRestaurantNotFound(t *testing.T) {
	db := testdb.Open(t)
	svc := NewMenuService(db)

	_, err := svc.GetRestaurant(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestMenuServiceSetItemPhoto(t *testing.T) {
	db := testdb.Open(t)
	svc := NewMenuService(db)
	restaurant := testdb.CreateRestaurant(t, db)
	other := testdb.CreateRestaurant(t, db)
	item := testdb.CreateItem(t, db, restaurant.ID)

	t.Run("owner can set the photo", func(t *testing.T) {
		require.NoError(t, svc.SetItemPhoto(context.Background(), restaurant.ID, item.ID, "https://example.com/p.jpg"))

		got, err := svc.GetItem(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/p.jpg", got.PhotoURL)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		err := svc.SetItemPhoto(context.Background(), other.ID, item.ID, "https://example.com/x.jpg")
		assert.ErrorIs(t, err, ErrNotItemOwner)
	})

	t.Run("missing item is reported as such", func(t *testing.T) {
		err := svc.SetItemPhoto(context.Background(), restaurant.ID, uuid.New(), "https://example.com/x.jpg")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}
