package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebite/backend/internal/models"
	"github.com/safebite/backend/internal/testdb"
)

type orderEnv struct {
	*testEnv
	customerToken   string
	restaurantToken string
	restaurant      *models.Restaurant
	item            *models.FoodItem
}

func newOrderEnv(t *testing.T) *orderEnv {
	t.Helper()
	env := newTestEnv(t)

	_, customerToken := env.tokenFor(t, "customer")
	restaurant := testdb.CreateRestaurant(t, env.db)
	restaurantToken, _, err := env.auth.Login(context.Background(), restaurant.Email, "testpassword123")
	require.NoError(t, err)

	return &orderEnv{
		testEnv:         env,
		customerToken:   customerToken,
		restaurantToken: restaurantToken,
		restaurant:      restaurant,
		item: testdb.CreateItem(t, env.db, restaurant.ID, func(i *models.FoodItem) {
			i.Name = "Burger"
			i.Price = 4.5
		}),
	}
}

func (e *orderEnv) placeOrder(t *testing.T) string {
	t.Helper()
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/api/v1/cart/items", e.customerToken, map[string]interface{}{
		"item_id": e.item.ID.String(),
	}).Code)

	w := e.do(t, http.MethodPost, "/api/v1/orders", e.customerToken, map[string]interface{}{
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	order := decodeBody(t, w)["order"].(map[string]interface{})
	return order["id"].(string)
}

func TestPlaceOrderEndpoint(t *testing.T) {
	env := newOrderEnv(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/cart/items", env.customerToken, map[string]interface{}{
		"item_id": env.item.ID.String(),
	}).Code)

	w := env.do(t, http.MethodPost, "/api/v1/orders", env.customerToken, map[string]interface{}{
		"payment_method": "card",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	order := decodeBody(t, w)["order"].(map[string]interface{})
	assert.Equal(t, "new", order["status"])
	assert.InDelta(t, 4.5, order["total"].(float64), 1e-9)

	// The cart is spent.
	body := decodeBody(t, env.do(t, http.MethodGet, "/api/v1/cart", env.customerToken, nil))
	assert.Empty(t, body["items"])
}

func TestPlaceOrderEmptyCartEndpoint(t *testing.T) {
	env := newOrderEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/orders", env.customerToken, map[string]interface{}{
		"payment_method": "cash",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHistoryEndpoints(t *testing.T) {
	env := newOrderEnv(t)
	orderID := env.placeOrder(t)

	t.Run("history", func(t *testing.T) {
		body := decodeBody(t, env.do(t, http.MethodGet, "/api/v1/orders", env.customerToken, nil))
		orders := body["orders"].([]interface{})
		require.Len(t, orders, 1)
		assert.Equal(t, orderID, orders[0].(map[string]interface{})["id"])
	})

	t.Run("active includes new orders", func(t *testing.T) {
		body := decodeBody(t, env.do(t, http.MethodGet, "/api/v1/orders/active", env.customerToken, nil))
		assert.Len(t, body["orders"].([]interface{}), 1)
	})

	t.Run("another customer sees nothing", func(t *testing.T) {
		_, otherToken := env.tokenFor(t, "customer")
		body := decodeBody(t, env.do(t, http.MethodGet, "/api/v1/orders", otherToken, nil))
		assert.Empty(t, body["orders"])
	})
}

func TestAcceptAndCompleteEndpoints(t *testing.T) {
	env := newOrderEnv(t)
	orderID := env.placeOrder(t)
	acceptPath := "/api/v1/restaurant/orders/" + orderID + "/accept"
	completePath := "/api/v1/restaurant/orders/" + orderID + "/complete"

	t.Run("customer role cannot enter the dashboard", func(t *testing.T) {
		w := env.do(t, http.MethodPost, acceptPath, env.customerToken, map[string]interface{}{
			"prep_time_minutes": 20,
		})
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "/", decodeBody(t, w)["redirect_to"])
	})

	t.Run("complete before accept conflicts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, completePath, env.restaurantToken, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("accept records prep time and eta", func(t *testing.T) {
		w := env.do(t, http.MethodPost, acceptPath, env.restaurantToken, map[string]interface{}{
			"prep_time_minutes": 20,
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		order := body["order"].(map[string]interface{})
		assert.Equal(t, "accepted", order["status"])
		assert.EqualValues(t, 20, order["prep_time_minutes"])
		assert.NotEmpty(t, order["estimated_delivery"])
		assert.NotEmpty(t, body["estimated_delivery_display"])
	})

	t.Run("accept twice conflicts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, acceptPath, env.restaurantToken, map[string]interface{}{
			"prep_time_minutes": 20,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("complete finishes the order", func(t *testing.T) {
		w := env.do(t, http.MethodPost, completePath, env.restaurantToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		order := decodeBody(t, w)["order"].(map[string]interface{})
		assert.Equal(t, "completed", order["status"])

		body := decodeBody(t, env.do(t, http.MethodGet, "/api/v1/orders/active", env.customerToken, nil))
		assert.Empty(t, body["orders"])
	})
}

func TestAcceptValidationEndpoint(t *testing.T) {
	env := newOrderEnv(t)
	orderID := env.placeOrder(t)
	acceptPath := "/api/v1/restaurant/orders/" + orderID + "/accept"

	t.Run("missing prep time", func(t *testing.T) {
		w := env.do(t, http.MethodPost, acceptPath, env.restaurantToken, map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative prep time", func(t *testing.T) {
		w := env.do(t, http.MethodPost, acceptPath, env.restaurantToken, map[string]interface{}{
			"prep_time_minutes": -5,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/restaurant/orders/6a6e5a40-0000-0000-0000-000000000000/accept",
			env.restaurantToken, map[string]interface{}{"prep_time_minutes": 10})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("another restaurant's order", func(t *testing.T) {
		other := testdb.CreateRestaurant(t, env.db)
		otherToken, _, err := env.auth.Login(context.Background(), other.Email, "testpassword123")
		require.NoError(t, err)

		w := env.do(t, http.MethodPost, acceptPath, otherToken, map[string]interface{}{
			"prep_time_minutes": 10,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRestaurantOrderListEndpoint(t *testing.T) {
	env := newOrderEnv(t)
	env.placeOrder(t)

	t.Run("enriched listing", func(t *testing.T) {
		body := decodeBody(t, env.do(t, http.MethodGet, "/api/v1/restaurant/orders", env.restaurantToken, nil))
		orders := body["orders"].([]interface{})
		require.Len(t, orders, 1)

		order := orders[0].(map[string]interface{})
		assert.NotEmpty(t, order["customer_email"])
		assert.NotEmpty(t, order["customer_address"])
	})

	t.Run("status filter", func(t *testing.T) {
		body := decodeBody(t, env.do(t, http.MethodGet, "/api/v1/restaurant/orders?status=completed", env.restaurantToken, nil))
		assert.Empty(t, body["orders"])
	})

	t.Run("unknown status", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/restaurant/orders?status=bogus", env.restaurantToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
