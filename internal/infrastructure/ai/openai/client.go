// Package openai provides the model-call gateway over an OpenAI-compatible
// chat-completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/errors"
)

// Client implements the ModelGateway interface against an OpenAI-compatible
// endpoint. One client serves both sampling profiles; profile parameters are
// fixed at construction and the underlying http.Client holds no cross-run
// mutable state, so a Client is safe to share across runs.
type Client struct {
	cfg        config.AIConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new gateway client.
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("model-gateway"),
	}
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Complete returns the raw text completion for the prompt.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, profile outbound.Profile) (string, error) {
	text, err := c.callWithRetry(ctx, systemPrompt, userPrompt, profile)
	if err != nil {
		return "", errors.NewGenerationFailure("text completion", err)
	}
	return text, nil
}

// CompleteStructured completes the prompt and decodes the response into out.
// The raw text is reduced to its outermost JSON value first because models
// routinely wrap JSON in prose or markdown fences.
func (c *Client) CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, profile outbound.Profile, out interface{}) error {
	text, err := c.callWithRetry(ctx, systemPrompt, userPrompt, profile)
	if err != nil {
		return errors.NewGenerationFailure("structured completion", err)
	}

	jsonStr, err := extractJSON(text)
	if err != nil {
		return errors.NewParseFailure("structured completion", err)
	}

	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		c.logger.Warn("Structured response did not decode",
			zap.Error(err),
			zap.Int("response_bytes", len(jsonStr)))
		return errors.NewParseFailure("structured completion", err)
	}

	return nil
}

// callWithRetry issues the chat completion with bounded transport retries.
// HTTP 4xx responses other than 429 are not retried; the request will not get
// better.
func (c *Client) callWithRetry(ctx context.Context, systemPrompt, userPrompt string, profile outbound.Profile) (string, error) {
	attempts := c.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, retryable, err := c.call(ctx, systemPrompt, userPrompt, profile)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !retryable || attempt == attempts {
			break
		}

		c.logger.Warn("Model call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}

	return "", lastErr
}

func (c *Client) call(ctx context.Context, systemPrompt, userPrompt string, profile outbound.Profile) (text string, retryable bool, err error) {
	reqBody := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.temperature(profile),
		MaxTokens:   c.cfg.MaxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return "", retryable, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", false, fmt.Errorf("no response choices returned")
	}

	c.logger.Debug("Model call successful",
		zap.String("profile", string(profile)),
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
	)

	return chatResp.Choices[0].Message.Content, true, nil
}

func (c *Client) temperature(profile outbound.Profile) float64 {
	if profile == outbound.ProfileCreative {
		return c.cfg.CreativeTemperature
	}
	return c.cfg.PreciseTemperature
}

// extractJSON reduces a model response to its outermost JSON object or array.
func extractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)

	start := strings.IndexAny(response, "{[")
	if start == -1 {
		return "", fmt.Errorf("no JSON found in response")
	}

	var end int
	if response[start] == '{' {
		end = strings.LastIndex(response, "}")
	} else {
		end = strings.LastIndex(response, "]")
	}
	if end <= start {
		return "", fmt.Errorf("unterminated JSON in response")
	}

	return response[start : end+1], nil
}
