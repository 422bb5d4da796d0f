// Package tavily provides the web-search adapter backed by the Tavily API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/errors"
)

// Client implements the SearchService interface using the Tavily search API.
type Client struct {
	cfg        config.SearchConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Tavily client.
func NewClient(cfg config.SearchConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("tavily"),
	}
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Search issues one query and returns at most maxResults hits.
// Authentication-class failures carry the SearchAuthFailure code so the
// caller can stop issuing queries for the rest of the run.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]outbound.SearchHit, error) {
	reqBody := searchRequest{
		APIKey:     c.cfg.APIKey,
		Query:      query,
		MaxResults: maxResults,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.NewSearchFailure(query, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/search", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, errors.NewSearchFailure(query, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewSearchFailure(query, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewSearchFailure(query, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := fmt.Errorf("search API error %d: %s", resp.StatusCode, string(body))
		if isAuthError(resp.StatusCode, string(body)) {
			return nil, errors.NewSearchAuthFailure(apiErr)
		}
		return nil, errors.NewSearchFailure(query, apiErr)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, errors.NewSearchFailure(query, err)
	}

	hits := make([]outbound.SearchHit, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		hits = append(hits, outbound.SearchHit{
			Title:   r.Title,
			Content: r.Content,
			URL:     r.URL,
		})
	}

	c.logger.Debug("Search completed",
		zap.String("query", query),
		zap.Int("results", len(hits)))

	return hits, nil
}

// isAuthError classifies credential problems. Tavily reports them as 401/403,
// but some proxies collapse everything to 400 with a descriptive body.
func isAuthError(status int, body string) bool {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return true
	}
	lower := strings.ToLower(body)
	return strings.Contains(lower, "unauthorized") || strings.Contains(lower, "api key")
}
