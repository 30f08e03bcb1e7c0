// Package groq implements the reasoning adapter against Groq's
// OpenAI-compatible chat-completions API, using the provider's native
// JSON-output mode to reduce malformed responses.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/talklens-backend/internal/config"
	"github.com/heartmarshall/talklens-backend/internal/domain"
)

// Client calls the chat-completions endpoint.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	log         *slog.Logger
}

// NewClient creates a Client from InferenceConfig.
func NewClient(cfg config.InferenceConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		log:         logger.With("adapter", "groq"),
	}
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL, apiKey, model string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: 0.2,
		maxTokens:   4096,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         logger.With("adapter", "groq"),
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *formatSpec   `json:"response_format,omitempty"`
	Messages       []chatMessage `json:"messages"`
}

type formatSpec struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Infer sends one system+user prompt pair and returns the raw assistant
// content plus the model identifier the provider reports. The content is
// NOT validated here — schema validation is the caller's responsibility.
// Transport failures and non-2xx statuses wrap domain.ErrAnalysis.
func (c *Client) Infer(ctx context.Context, system, user string) ([]byte, string, error) {
	payload := chatRequest{
		Model:          c.model,
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: &formatSpec{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("groq: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "groq request failed", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("groq: request failed: %v: %w", err, domain.ErrAnalysis)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("groq: read body: %v: %w", err, domain.ErrAnalysis)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.ErrorContext(ctx, "groq non-200 response", slog.Int("status", resp.StatusCode))
		return nil, "", fmt.Errorf("groq: unexpected status %d: %w", resp.StatusCode, domain.ErrAnalysis)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, "", fmt.Errorf("groq: decode response: %v: %w", err, domain.ErrAnalysis)
	}
	if len(parsed.Choices) == 0 {
		return nil, "", fmt.Errorf("groq: response has no choices: %w", domain.ErrAnalysis)
	}

	model := parsed.Model
	if model == "" {
		model = c.model
	}

	c.log.DebugContext(ctx, "groq response",
		slog.String("model", model),
		slog.Int("content_len", len(parsed.Choices[0].Message.Content)),
	)

	return []byte(parsed.Choices[0].Message.Content), model, nil
}
