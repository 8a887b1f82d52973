// Package embeddings calls the remote embedding provider. Requests are spaced
// by a rate limiter and responses are cached by payload hash.
package embeddings

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

const maxErrorBody = 512

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embeddings []float64 `json:"embeddings"`
}

// Client is an embedding provider speaking POST {base_url}/embeddings.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	cache   Cache
	logger  *slog.Logger
}

// New creates a Client. A nil cache disables caching.
func New(cfg *Config, cache Cache, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base_url required")
	}

	limit := rate.Inf
	if d := cfg.MinIntervalDuration(); d > 0 {
		limit = rate.Every(d)
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(limit, 1),
		cache:   cache,
		logger:  logger.With("system", "embeddings"),
	}, nil
}

// Embed returns the vector for text, served from cache when possible.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	payload, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	key := cacheKey(payload)

	if c.cache != nil {
		if vec, ok := c.cache.Get(ctx, key); ok {
			c.logger.Debug("embedding cache hit", "text_length", len(text))
			return vec, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	vec, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, vec)
	}
	return vec, nil
}

func (c *Client) post(ctx context.Context, payload []byte) ([]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Embeddings) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return out.Embeddings, nil
}

func cacheKey(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
