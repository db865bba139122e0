package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexis-platform/trust-cli/internal/explain"
)

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRulesEndpoint(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/rules")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Rules []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		} `json:"rules"`
		Categories []string `json:"categories"`
		MaxPoints  int      `json:"max_points"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Rules, 12)
	assert.Len(t, body.Categories, 4)
	assert.Equal(t, 340, body.MaxPoints)
}

func TestRuleByID(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	t.Run("known rule", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/rules/A1")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var rule struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			MaxPoints int    `json:"max_points"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rule))
		assert.Equal(t, "Utility Payment Consistency", rule.Name)
		assert.Equal(t, 40, rule.MaxPoints)
	})

	t.Run("unknown rule", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/rules/Z9")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestClassifyEndpoint(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	tests := []struct {
		score    string
		wantCode int
		wantBand string
	}{
		{score: "745", wantCode: http.StatusOK, wantBand: string(explain.BandStrong)},
		{score: "480", wantCode: http.StatusOK, wantBand: string(explain.BandBuilding)},
		{score: "abc", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/v1/classify/" + tt.score)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantBand == "" {
				return
			}
			var c struct {
				Band string `json:"band"`
				Risk string `json:"risk_level"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&c))
			assert.Equal(t, tt.wantBand, c.Band)
			assert.NotEmpty(t, c.Risk)
		})
	}
}

func TestExplainEndpoint(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	body := `{
		"trust_score": 745,
		"factors": [
			{
				"id": "f1",
				"title": "Utility Payment Consistency",
				"description": "Rule A1: Utility Payment Consistency\nYour Value: 18 months\nRequired Threshold: 12+ months\nStatus: ✓ Satisfied",
				"type": "positive",
				"impact": "High",
				"icon": "Zap"
			}
		]
	}`

	resp, err := http.Post(srv.URL+"/v1/explain", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var display struct {
		Score   int `json:"score"`
		Summary struct {
			TotalRules int `json:"total_rules"`
			Satisfied  int `json:"satisfied"`
		} `json:"summary"`
		Rules []struct {
			Satisfaction    string `json:"satisfaction"`
			ProgressPercent int    `json:"progress_percent"`
		} `json:"rules"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&display))
	assert.Equal(t, 745, display.Score)
	assert.Equal(t, 12, display.Summary.TotalRules)
	assert.Equal(t, 1, display.Summary.Satisfied)
	require.Len(t, display.Rules, 12)
}

func TestExplainRejectsInvalidBody(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/explain", "application/json", bytes.NewBufferString("{nope"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
