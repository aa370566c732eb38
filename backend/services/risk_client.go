package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wellsync/backend/config"
	"wellsync/backend/models"
)

// Field names the scoring service has been observed to answer with. The
// upstream API renames these between versions, so extraction walks an ordered
// priority list instead of binding to a single name.
var (
	riskScoreKeys = []string{"risk_percentage", "risk_score", "risk", "predicted_risk", "burnout_risk"}
	insightKeys   = []string{"actionable_insight", "insight", "recommendation"}
)

// RiskRequest is the scoring payload. Field names are the upstream contract.
type RiskRequest struct {
	Age                int     `json:"age"`
	Gender             string  `json:"gender"`
	Occupation         string  `json:"occupation"`
	WorkMode           string  `json:"work_mode"`
	ScreenTimeHours    float64 `json:"screen_time_hours"`
	WorkScreenHours    float64 `json:"work_screen_hours"`
	LeisureScreenHours float64 `json:"leisure_screen_hours"`
	SleepHours         float64 `json:"sleep_hours"`
	SleepQuality       int     `json:"sleep_quality_1_5"`
	StressLevel        int     `json:"stress_level_0_10"`
	ExerciseMinutes    int     `json:"exercise_minutes_per_week"`
	SocialHours        float64 `json:"social_hours_per_week"`
	MentalWellness     int     `json:"mental_wellness_index_0_100"`
}

// RiskAPIError is a non-success answer from the scoring service, carrying the
// upstream status and its best-effort message.
type RiskAPIError struct {
	StatusCode int
	Message    string
}

func (e *RiskAPIError) Error() string {
	return fmt.Sprintf("risk API error (%d): %s", e.StatusCode, e.Message)
}

// ErrRiskAPIUnreachable wraps transport-level failures.
type ErrRiskAPIUnreachable struct {
	Err error
}

func (e *ErrRiskAPIUnreachable) Error() string {
	return "unable to connect to the risk scoring service: " + e.Err.Error()
}

func (e *ErrRiskAPIUnreachable) Unwrap() error { return e.Err }

// RiskClient talks to the external scoring endpoint. Single request, no retry.
type RiskClient struct {
	URL        string
	HTTPClient *http.Client
}

func NewRiskClient(cfg *config.Config) *RiskClient {
	return &RiskClient{
		URL: cfg.RiskAPIURL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.RiskAPITimeout) * time.Second,
		},
	}
}

// Predict posts the feature vector and extracts a RiskResult. A response with
// no recognizable score field is still a success: the score stays nil and the
// caller renders "N/A".
func (rc *RiskClient) Predict(ctx context.Context, payload RiskRequest) (*models.RiskResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := rc.HTTPClient.Do(req)
	if err != nil {
		return nil, &ErrRiskAPIUnreachable{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrRiskAPIUnreachable{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RiskAPIError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(raw, resp.Status),
		}
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &RiskAPIError{
			StatusCode: resp.StatusCode,
			Message:    "invalid JSON in scoring response",
		}
	}

	return &models.RiskResult{
		RiskScore:         extractNumber(data, riskScoreKeys),
		ActionableInsight: extractString(data, insightKeys),
	}, nil
}

// extractNumber returns the first numeric value found under the given keys,
// in priority order. A present zero wins over a later key.
func extractNumber(data map[string]interface{}, keys []string) *float64 {
	for _, key := range keys {
		v, ok := data[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			val := n
			return &val
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return &f
			}
		}
	}
	return nil
}

func extractString(data map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// extractErrorMessage digs a human-readable message out of an error body:
// JSON "error" or "message" fields first, then the raw text, then the HTTP
// status line.
func extractErrorMessage(raw []byte, status string) string {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg, ok := body["error"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := body["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return status
}
