package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/safebite/backend/config"
)

// Classification is the model's structured guess at an item's hazard flags
// and calories. It only pre-populates the creation form; the stored item
// flags remain the source of truth for filtering.
type Classification struct {
	ContainsGluten   bool `json:"contains_gluten"`
	ContainsLactose  bool `json:"contains_lactose"`
	NutAllergy       bool `json:"nut_allergy"`
	CholesterolRisk  bool `json:"cholesterol_risk"`
	DiabetesRisk     bool `json:"diabetes_risk"`
	HypertensionRisk bool `json:"hypertension_risk"`
	HighCarb         bool `json:"high_carb"`
	HighFat          bool `json:"high_fat"`
	Calories         *int `json:"calories"`
}

const classifierSystemPrompt = `You are a food safety analyst. Given a food description, return a JSON object with:
{
    "contains_gluten": true/false,
    "contains_lactose": true/false,
    "nut_allergy": true/false,
    "cholesterol_risk": true/false,
    "diabetes_risk": true/false,
    "hypertension_risk": true/false,
    "high_carb": true/false,
    "high_fat": true/false,
    "calories": 0
}

contains_gluten means the dish contains gluten; contains_lactose means dairy; nut_allergy means peanuts, tree nuts, or traces; cholesterol_risk, diabetes_risk and hypertension_risk mean NOT safe for high cholesterol, diabetics, and high blood pressure respectively.

Be strict. Assume peanut sauce contains gluten and nuts unless stated otherwise. Estimate calories for the full meal, not per portion. All fields must be present and calories must be a number.`

// classifierMessage represents a message in the chat
type classifierMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// classifierRequest represents a request to the chat completions API
type classifierRequest struct {
	Model          string              `json:"model"`
	Messages       []classifierMessage `json:"messages"`
	ResponseFormat map[string]string   `json:"response_format"`
	Temperature    float64             `json:"temperature"`
}

// ClassifierService calls an external chat-completions API to suggest hazard
// flags from a free-text description. Best-effort only: callers treat every
// failure as "no suggestion".
type ClassifierService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewClassifierService creates a new ClassifierService instance
func NewClassifierService(cfg *config.Config) (*ClassifierService, error) {
	if cfg.ClassifierAPIKey == "" {
		return nil, errors.New("CLASSIFIER_API_KEY or classifier_api_key secret must be set")
	}

	return &ClassifierService{
		apiKey: cfg.ClassifierAPIKey,
		apiURL: cfg.ClassifierAPIURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// ClassifyDescription asks the model for hazard flags and a calorie estimate
// for the described dish.
func (s *ClassifierService) ClassifyDescription(ctx context.Context, description string) (*Classification, error) {
	reqBody := classifierRequest{
		Model: "gpt-3.5-turbo",
		Messages: []classifierMessage{
			{Role: "system", Content: classifierSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Analyze the following food description for health restrictions:\n\n%q", description)},
		},
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		Temperature: 0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("classifier request failed with status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("classifier request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, errors.New("no response from classifier")
	}

	var classification Classification
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &classification); err != nil {
		return nil, fmt.Errorf("failed to parse classification: %w", err)
	}
	return &classification, nil
}
