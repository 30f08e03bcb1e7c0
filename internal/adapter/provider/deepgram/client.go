// Package deepgram implements the speech-to-text adapter against the
// Deepgram prerecorded-audio API.
package deepgram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/talklens-backend/internal/config"
	"github.com/heartmarshall/talklens-backend/internal/domain"
)

// Client calls the Deepgram prerecorded transcription endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from DeepgramConfig.
func NewClient(cfg config.DeepgramConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "deepgram"),
	}
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL, apiKey, model string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "deepgram"),
	}
}

// Transcribe sends raw audio bytes for transcription with punctuation and
// smart formatting enabled. A provider-side empty result (no channels or
// alternatives) yields a TranscriptResult with empty Text, not an error;
// transport failures and non-2xx statuses wrap domain.ErrTranscription.
// The caller is responsible for size limits — none are enforced here.
func (c *Client) Transcribe(ctx context.Context, audio []byte, contentType string) (*domain.TranscriptResult, error) {
	q := url.Values{}
	q.Set("model", c.model)
	q.Set("smart_format", "true")
	q.Set("punctuate", "true")
	reqURL := c.baseURL + "/v1/listen?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("deepgram: create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "deepgram request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("deepgram: request failed: %v: %w", err, domain.ErrTranscription)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("deepgram: read body: %v: %w", err, domain.ErrTranscription)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.ErrorContext(ctx, "deepgram non-2xx response",
			slog.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("deepgram: unexpected status %d: %w", resp.StatusCode, domain.ErrTranscription)
	}

	result, err := mapAPIResponse(body)
	if err != nil {
		return nil, fmt.Errorf("deepgram: decode response: %v: %w", err, domain.ErrTranscription)
	}

	c.log.DebugContext(ctx, "deepgram response",
		slog.Int("status", resp.StatusCode),
		slog.Int("words", len(result.Words)),
		slog.Int("text_len", len(result.Text)),
	)

	return result, nil
}
