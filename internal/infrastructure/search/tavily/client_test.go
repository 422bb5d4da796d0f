package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/pkg/errors"
)

func testConfig(baseURL string) config.SearchConfig {
	return config.SearchConfig{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		MaxQueries: 2,
		MaxResults: 2,
		Timeout:    5 * time.Second,
	}
}

func TestClientSearch(t *testing.T) {
	var captured searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(searchResponse{
			Results: []searchResult{
				{Title: "Cooking tips", Content: "Rest the meat", URL: "https://example.com/tips"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zaptest.NewLogger(t))

	hits, err := client.Search(context.Background(), "chicken tips", 2)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Cooking tips", hits[0].Title)
	assert.Equal(t, "Rest the meat", hits[0].Content)
	assert.Equal(t, "test-key", captured.APIKey)
	assert.Equal(t, "chicken tips", captured.Query)
	assert.Equal(t, 2, captured.MaxResults)
}

func TestClientSearchErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode errors.ErrorCode
	}{
		{"401 is auth", http.StatusUnauthorized, "", errors.CodeSearchAuthFailure},
		{"403 is auth", http.StatusForbidden, "", errors.CodeSearchAuthFailure},
		{"400 with api key body is auth", http.StatusBadRequest, `{"detail": "Invalid API key"}`, errors.CodeSearchAuthFailure},
		{"400 mentioning unauthorized is auth", http.StatusBadRequest, "Unauthorized access", errors.CodeSearchAuthFailure},
		{"plain 400 is transient", http.StatusBadRequest, "bad query", errors.CodeSearchFailure},
		{"500 is transient", http.StatusInternalServerError, "", errors.CodeSearchFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(testConfig(server.URL), zaptest.NewLogger(t))

			_, err := client.Search(context.Background(), "q", 2)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantCode))
		})
	}
}
