package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/logger"
)

// SuggestionService calls the hosted AI endpoint that proposes foods for
// a nutrient gap. Whatever goes wrong — transport, status, decode — the
// caller only ever sees ErrServiceUnavailable; details go to the log.
type SuggestionService struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewSuggestionService() *SuggestionService {
	return &SuggestionService{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: os.Getenv("SUGGESTION_API_URL"),
		token:   os.Getenv("SUGGESTION_API_TOKEN"),
	}
}

type NutrientSuggestion struct {
	Food     string `json:"food"`
	PrepTime string `json:"prep_time"`
	Why      string `json:"why"`
}

type NutrientGapSuggestions struct {
	Suggestions []NutrientSuggestion `json:"suggestions"`
	QuickTip    string               `json:"quick_tip"`
}

// GetNutrientGapSuggestions asks for foods covering the missing nutrient,
// given a text summary of the week's diet.
func (s *SuggestionService) GetNutrientGapSuggestions(nutrient, dietSummary string) (*NutrientGapSuggestions, error) {
	if s.baseURL == "" || s.token == "" {
		logger.L().Warnw("suggestion endpoint not configured")
		return nil, ErrServiceUnavailable
	}

	body, _ := json.Marshal(map[string]string{
		"nutrient":     nutrient,
		"diet_summary": dietSummary,
	})

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/v1/nutrient-gap", bytes.NewReader(body))
	if err != nil {
		return nil, ErrServiceUnavailable
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.L().Errorw("suggestion request failed", "err", err)
		return nil, ErrServiceUnavailable
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.L().Errorw("suggestion response read failed", "err", err)
		return nil, ErrServiceUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		preview := string(respBytes)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		logger.L().Errorw("suggestion api error", "status", resp.StatusCode, "body", preview)
		return nil, ErrServiceUnavailable
	}

	var out NutrientGapSuggestions
	if err := json.Unmarshal(respBytes, &out); err != nil {
		logger.L().Errorw("suggestion decode failed", "err", err)
		return nil, ErrServiceUnavailable
	}
	if len(out.Suggestions) == 0 {
		logger.L().Warnw("suggestion api returned no suggestions", "nutrient", nutrient)
		return nil, fmt.Errorf("%w: empty result", ErrServiceUnavailable)
	}
	return &out, nil
}
