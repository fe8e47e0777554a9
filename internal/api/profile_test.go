package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDietaryProfileEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.tokenFor(t, "customer")

	t.Run("empty profile before first save", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/profile/dietary", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["nut_allergy"])
		assert.Nil(t, body["max_calories"])
	})

	t.Run("save and read back", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/profile/dietary", token, map[string]interface{}{
			"nut_allergy":  true,
			"lactose_free": true,
			"max_calories": 700,
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodGet, "/api/v1/profile/dietary", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["nut_allergy"])
		assert.Equal(t, true, body["lactose_free"])
		assert.EqualValues(t, 700, body["max_calories"])
	})

	t.Run("replace clears unset flags", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/profile/dietary", token, map[string]interface{}{
			"gluten_free": true,
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, env.do(t, http.MethodGet, "/api/v1/profile/dietary", token, nil))
		assert.Equal(t, true, body["gluten_free"])
		assert.Equal(t, false, body["nut_allergy"])
		assert.Nil(t, body["max_calories"])
	})

	t.Run("invalid calorie ceiling", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/profile/dietary", token, map[string]interface{}{
			"max_calories": -10,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/profile/dietary", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
