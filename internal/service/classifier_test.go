package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebite/backend/config"
)

func classifierStub(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req classifierRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "json_object", req.ResponseFormat["type"])

		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"content": content}},
				},
			})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClassifyDescription(t *testing.T) {
	srv := classifierStub(t, `{
		"contains_gluten": true,
		"contains_lactose": false,
		"nut_allergy": true,
		"cholesterol_risk": false,
		"diabetes_risk": false,
		"hypertension_risk": true,
		"high_carb": true,
		"high_fat": false,
		"calories": 550
	}`, http.StatusOK)

	svc := &ClassifierService{apiKey: "test-key", apiURL: srv.URL, client: srv.Client()}

	cls, err := svc.ClassifyDescription(context.Background(), "gado-gado with peanut sauce")
	require.NoError(t, err)
	assert.True(t, cls.ContainsGluten)
	assert.True(t, cls.NutAllergy)
	assert.True(t, cls.HypertensionRisk)
	assert.False(t, cls.HighFat)
	require.NotNil(t, cls.Calories)
	assert.Equal(t, 550, *cls.Calories)
}

func TestClassifyDescriptionUpstreamFailure(t *testing.T) {
	srv := classifierStub(t, "", http.StatusInternalServerError)
	svc := &ClassifierService{apiKey: "test-key", apiURL: srv.URL, client: srv.Client()}

	_, err := svc.ClassifyDescription(context.Background(), "mystery meal")
	assert.Error(t, err)
}

func TestClassifyDescriptionMalformedContent(t *testing.T) {
	srv := classifierStub(t, "not json at all", http.StatusOK)
	svc := &ClassifierService{apiKey: "test-key", apiURL: srv.URL, client: srv.Client()}

	_, err := svc.ClassifyDescription(context.Background(), "mystery meal")
	assert.Error(t, err)
}

func TestNewClassifierServiceRequiresKey(t *testing.T) {
	_, err := NewClassifierService(&config.Config{})
	assert.Error(t, err)
}
