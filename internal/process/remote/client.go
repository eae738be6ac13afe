// Package remote talks to an external NLP inference service over HTTP.
// The service exposes POST /analyze and POST /classify_category plus a
// GET /health probe; the Fallback wrapper keeps the pipeline running when
// the service is down.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	coreerrors "github.com/reliefwatch/relief-pulse/internal/core/errors"
)

const (
	defaultTimeout   = 30 * time.Second
	rateLimiterBurst = 5

	analyzePath  = "/analyze"
	classifyPath = "/classify_category"
	healthPath   = "/health"
)

// Client calls the remote inference service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *zerolog.Logger
}

// NewClient builds a Client for the given base URL. rps bounds outgoing
// requests per second; timeout <= 0 falls back to 30s.
func NewClient(baseURL string, rps int, timeout time.Duration, logger *zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
		logger:      logger,
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

type classifyResponse struct {
	Category     string  `json:"category"`
	Confidence   float64 `json:"confidence"`
	Model        string  `json:"model"`
	CategoryName string  `json:"category_name"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Score implements nlp.Analyzer by calling POST /analyze.
func (c *Client) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Sentiment{Type: domain.SentimentNeutral, Confidence: 0, RawText: ""}, nil
	}

	var resp analyzeResponse
	if err := c.post(ctx, analyzePath, analyzeRequest{Text: text}, &resp); err != nil {
		return domain.Sentiment{}, err
	}

	polarity, err := domain.ParseSentimentType(strings.ToUpper(resp.Sentiment))
	if err != nil {
		return domain.Sentiment{}, err
	}

	return domain.NewSentiment(polarity, resp.Confidence, text)
}

// Classify implements nlp.Analyzer by calling POST /classify_category.
// A response naming no known category reports ok=false without error.
func (c *Client) Classify(ctx context.Context, text string) (domain.Category, bool, error) {
	if strings.TrimSpace(text) == "" {
		return "", false, nil
	}

	var resp classifyResponse
	if err := c.post(ctx, classifyPath, analyzeRequest{Text: text}, &resp); err != nil {
		return "", false, err
	}

	category, err := domain.ParseCategory(strings.ToUpper(resp.Category))
	if err != nil {
		c.logger.Warn().
			Str("category", resp.Category).
			Str("model", resp.Model).
			Msg("remote classifier returned unknown category")

		return "", false, nil
	}

	return category, true, nil
}

// ModelName identifies the analyzer for logging and reports.
func (c *Client) ModelName() string {
	return "remote:" + c.baseURL
}

// Healthy probes GET /health. It returns nil only when the service reports
// an "ok" or "healthy" status.
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", coreerrors.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %d", coreerrors.ErrRemoteStatus, resp.StatusCode)
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}

	status := strings.ToLower(health.Status)
	if status != "ok" && status != "healthy" {
		return fmt.Errorf("%w: health status %q", coreerrors.ErrRemoteStatus, health.Status)
	}

	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", coreerrors.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return fmt.Errorf("%w: %s returned %d: %s", coreerrors.ErrRemoteStatus, path, resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
