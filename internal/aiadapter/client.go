package aiadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
	"github.com/prabhnoor12/cleardeal-ai/internal/retry"
)

const defaultTimeout = 30 * time.Second

// Client is an HTTP-based implementation of domain.AIAdapter. On any
// failure (timeout, non-2xx, network error) it returns a response with a
// populated Error field rather than a Go error, per spec §4.E: the
// orchestrator must be able to proceed with empty signals.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
	attempts   int
}

// NewClient constructs an AI adapter HTTP client. apiKey is sent as a
// bearer token; attempts controls retry.Do's retry count for transient
// failures (0 or 1 disables retrying).
func NewClient(baseURL, apiKey string, attempts int, log zerolog.Logger) *Client {
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log.With().Str("component", "aiadapter").Logger(),
		attempts:   attempts,
	}
}

type providerRequest struct {
	Prompt      string  `json:"prompt"`
	Provider    string  `json:"provider,omitempty"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	Stream      bool    `json:"stream,omitempty"`
}

type providerResponse struct {
	Raw   string          `json:"raw"`
	Usage *domain.AIUsage `json:"usage,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Call issues req to the configured provider endpoint. It never returns a
// non-nil error for ordinary provider failures; those surface via
// AIResponse.Error so the orchestrator can degrade gracefully.
func (c *Client) Call(ctx context.Context, req domain.AIRequest) (domain.AIResponse, error) {
	var out domain.AIResponse
	body, err := json.Marshal(providerRequest{
		Prompt:      req.Prompt,
		Provider:    req.Provider,
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      req.Stream,
	})
	if err != nil {
		return domain.AIResponse{Error: fmt.Sprintf("encode request: %v", err)}, nil
	}

	attemptErr := retry.Do(ctx, c.log, c.attempts, func(ctx context.Context) error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/complete", bytes.NewReader(body))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("ai provider returned status %d: %s", resp.StatusCode, string(respBody))
		}

		var pr providerResponse
		if err := json.Unmarshal(respBody, &pr); err != nil {
			return fmt.Errorf("decode ai provider response: %w", err)
		}
		out = domain.AIResponse{Raw: pr.Raw, Usage: pr.Usage, Error: pr.Error}
		return nil
	})

	if attemptErr != nil {
		c.log.Warn().Err(attemptErr).Msg("ai adapter call failed after retries")
		return domain.AIResponse{Error: attemptErr.Error()}, nil
	}
	return out, nil
}
