package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"wellsync/backend/config"
)

func newTestRiskClient(url string) *RiskClient {
	return NewRiskClient(&config.Config{RiskAPIURL: url, RiskAPITimeout: 5})
}

func riskServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPredictScoreKeyPriority(t *testing.T) {
	srv := riskServer(t, 200, `{"risk_score": 10, "risk": 20}`)

	result, err := newTestRiskClient(srv.URL).Predict(context.Background(), RiskRequest{})
	assert.NoError(t, err)
	assert.NotNil(t, result.RiskScore)
	assert.Equal(t, 10.0, *result.RiskScore)
}

func TestPredictPresentZeroWins(t *testing.T) {
	// A present zero is a valid score, not a missing field.
	srv := riskServer(t, 200, `{"risk_percentage": 0, "risk_score": 55}`)

	result, err := newTestRiskClient(srv.URL).Predict(context.Background(), RiskRequest{})
	assert.NoError(t, err)
	assert.NotNil(t, result.RiskScore)
	assert.Equal(t, 0.0, *result.RiskScore)
}

func TestPredictNoScoreIsStillSuccess(t *testing.T) {
	srv := riskServer(t, 200, `{"status": "ok"}`)

	result, err := newTestRiskClient(srv.URL).Predict(context.Background(), RiskRequest{})
	assert.NoError(t, err)
	assert.Nil(t, result.RiskScore)
	assert.Empty(t, result.ActionableInsight)
}

func TestPredictInsightKeyPriority(t *testing.T) {
	srv := riskServer(t, 200, `{"risk_score": 40, "recommendation": "walk more", "insight": "sleep more"}`)

	result, err := newTestRiskClient(srv.URL).Predict(context.Background(), RiskRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "sleep more", result.ActionableInsight)
}

func TestPredictUpstreamErrorJSONBody(t *testing.T) {
	srv := riskServer(t, 500, `{"error":"model unavailable"}`)

	_, err := newTestRiskClient(srv.URL).Predict(context.Background(), RiskRequest{})
	assert.Error(t, err)

	var apiErr *RiskAPIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "model unavailable")
}

func TestPredictUpstreamErrorRawBody(t *testing.T) {
	// Error body that is not JSON falls back to the raw response text.
	srv := riskServer(t, 400, `bad feature vector`)

	_, err := newTestRiskClient(srv.URL).Predict(context.Background(), RiskRequest{})

	var apiErr *RiskAPIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad feature vector", apiErr.Message)
}

func TestPredictTransportFailure(t *testing.T) {
	srv := riskServer(t, 200, `{}`)
	url := srv.URL
	srv.Close()

	_, err := newTestRiskClient(url).Predict(context.Background(), RiskRequest{})

	var unreachable *ErrRiskAPIUnreachable
	assert.ErrorAs(t, err, &unreachable)
	assert.Contains(t, err.Error(), "unable to connect")
}
