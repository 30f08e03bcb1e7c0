// Package anthropic implements the reasoning adapter on top of the
// Anthropic Messages API. The API has no native JSON output mode, so the
// first complete JSON object is extracted from the response text.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/talklens-backend/internal/config"
	"github.com/heartmarshall/talklens-backend/internal/domain"
)

// Client calls the Anthropic Messages API.
type Client struct {
	client      sdk.Client
	model       string
	temperature float64
	maxTokens   int
	log         *slog.Logger
}

// NewClient creates a Client from InferenceConfig.
func NewClient(cfg config.InferenceConfig, logger *slog.Logger) *Client {
	return &Client{
		client:      sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		log:         logger.With("adapter", "anthropic"),
	}
}

// Infer sends one system+user prompt pair and returns the JSON object
// extracted from the assistant text plus the model identifier used.
// Provider failures and responses without a JSON object wrap
// domain.ErrAnalysis.
func (c *Client) Infer(ctx context.Context, system, user string) ([]byte, string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   int64(c.maxTokens),
		Temperature: sdk.Float(c.temperature),
		System: []sdk.TextBlockParam{
			{Text: system},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(user)),
		},
	})
	if err != nil {
		c.log.ErrorContext(ctx, "anthropic request failed", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("anthropic: request failed: %v: %w", err, domain.ErrAnalysis)
	}

	if len(msg.Content) == 0 {
		return nil, "", fmt.Errorf("anthropic: empty response: %w", domain.ErrAnalysis)
	}

	jsonStr, err := extractJSON(msg.Content[0].Text)
	if err != nil {
		return nil, "", fmt.Errorf("anthropic: %v: %w", err, domain.ErrAnalysis)
	}

	model := string(msg.Model)
	if model == "" {
		model = c.model
	}

	c.log.DebugContext(ctx, "anthropic response",
		slog.String("model", model),
		slog.Int("content_len", len(jsonStr)),
	)

	return []byte(jsonStr), model, nil
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
